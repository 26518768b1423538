// Package config handles configuration loading and shared data structures.
package config

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/stefan-korn/csv2geojson"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// DefaultGeoColumns replaces the built-in candidate list used for
	// geo column auto-detection.
	DefaultGeoColumns []string `yaml:"default_geo_columns,omitempty"`
	// MaxBodyBytes caps the CSV body size accepted by the server.
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
	// Conversions lists the jobs processed by the loader.
	Conversions []Job `yaml:"conversions"`
}

// Job represents a single CSV to GeoJSON conversion.
type Job struct {
	Name         string   `yaml:"name,omitempty"`
	Input        string   `yaml:"input"`
	Output       string   `yaml:"output,omitempty"`
	GeoColumns   []string `yaml:"geo_columns,omitempty"`
	Delimiter    string   `yaml:"delimiter,omitempty"`
	HeaderOffset int      `yaml:"header_offset,omitempty"`
	LatLonOrder  bool     `yaml:"lat_lon_order,omitempty"`
	BBox         bool     `yaml:"bbox,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Options materializes the conversion options for this job. The
// candidate list falls back to defaults when the job names no geo
// columns itself.
func (j Job) Options(defaults []string) csv2geojson.Options {
	opts := csv2geojson.Options{
		Name:              j.Name,
		GeoColumns:        j.GeoColumns,
		HeaderOffset:      j.HeaderOffset,
		LatLonOrder:       j.LatLonOrder,
		DefaultGeoColumns: defaults,
	}

	if j.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(j.Delimiter)
		opts.Delimiter = r
	}

	return opts
}

// IsRemote reports whether the job input is fetched over HTTP.
func (j Job) IsRemote() bool {
	return strings.HasPrefix(j.Input, "http://") || strings.HasPrefix(j.Input, "https://")
}

// OutputPath returns the configured output file, defaulting to the
// input path with its extension replaced by .geojson. Remote inputs
// derive the name from the URL path basename; an empty string means no
// name could be derived and an explicit output is required.
func (j Job) OutputPath() string {
	if j.Output != "" {
		return j.Output
	}

	name := j.Input
	if j.IsRemote() {
		u, err := url.Parse(j.Input)
		if err != nil {
			return ""
		}
		name = path.Base(u.Path)
		if name == "." || name == "/" {
			return ""
		}
	}

	return strings.TrimSuffix(name, filepath.Ext(name)) + ".geojson"
}

// DisplayName identifies the job in logs and --limit filters: the
// configured name or the input file stem.
func (j Job) DisplayName() string {
	if j.Name != "" {
		return j.Name
	}
	base := filepath.Base(j.Input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
