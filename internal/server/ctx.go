package server

import (
	"github.com/rs/zerolog/log"
	"github.com/stefan-korn/csv2geojson"
	"github.com/stefan-korn/csv2geojson/internal/config"
)

// defaultMaxBody caps request bodies when the configuration does not.
const defaultMaxBody = 10 << 20 // 10 MiB

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	DefaultGeoColumns []string
	MaxBodyBytes      int64
}

// NewServerContext initializes the context from the configuration,
// falling back to the built-in candidate list and body limit.
func NewServerContext(cfg *config.Config) *ServerContext {
	columns := cfg.DefaultGeoColumns
	if len(columns) == 0 {
		columns = csv2geojson.DefaultGeoColumns
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}

	log.Info().
		Strs("default_geo_columns", columns).
		Int64("max_body_bytes", maxBody).
		Msg("Server context initialized")

	return &ServerContext{
		DefaultGeoColumns: columns,
		MaxBodyBytes:      maxBody,
	}
}
