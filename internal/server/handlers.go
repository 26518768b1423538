// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stefan-korn/csv2geojson"
)

// HandleConvert converts the CSV request body into a GeoJSON response.
// Conversion options are passed as query parameters: name, geo
// (comma-separated column names), delimiter, header-offset,
// latlon-order and bbox.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "use POST with a CSV body")
		return
	}

	opts, bbox, err := s.optionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	defer func() { _ = body.Close() }()

	fc, err := csv2geojson.Convert(body, opts)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, csv2geojson.ErrNoGeoColumns):
			writeError(w, http.StatusBadRequest, "no geo columns found in header")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if bbox {
		fc.ComputeBBox()
	}

	w.Header().Set("Content-Type", "application/geo+json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(fc)
}

// HandleDefaults serves the active geo column candidate list.
func (s *ServerContext) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(map[string][]string{
		"default_geo_columns": s.DefaultGeoColumns,
	})
}

// HandleHealth reports service liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// optionsFromQuery builds the conversion options and the bbox switch
// from the request query parameters.
func (s *ServerContext) optionsFromQuery(r *http.Request) (csv2geojson.Options, bool, error) {
	q := r.URL.Query()

	opts := csv2geojson.Options{
		Name:              q.Get("name"),
		DefaultGeoColumns: s.DefaultGeoColumns,
	}

	if geo := q.Get("geo"); geo != "" {
		opts.GeoColumns = strings.Split(geo, ",")
	}

	if delim := q.Get("delimiter"); delim != "" {
		c, _ := utf8.DecodeRuneInString(delim)
		opts.Delimiter = c
	}

	if offset := q.Get("header-offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return csv2geojson.Options{}, false, fmt.Errorf("invalid header-offset %q", offset)
		}
		opts.HeaderOffset = n
	}

	if latlon := q.Get("latlon-order"); latlon != "" {
		v, err := strconv.ParseBool(latlon)
		if err != nil {
			return csv2geojson.Options{}, false, fmt.Errorf("invalid latlon-order %q", latlon)
		}
		opts.LatLonOrder = v
	}

	bbox := false
	if v := q.Get("bbox"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return csv2geojson.Options{}, false, fmt.Errorf("invalid bbox %q", v)
		}
		bbox = b
	}

	return opts, bbox, nil
}

// writeError sends a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
