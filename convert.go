package csv2geojson

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrNoGeoColumns is returned when neither the explicit column list
	// nor the candidate defaults match any header column.
	ErrNoGeoColumns = errors.New("no geo columns found")

	// ErrNoHeader is wrapped in a *ParseError when the input ends before
	// the configured header row.
	ErrNoHeader = errors.New("missing header row")
)

// ParseError reports malformed CSV input. It wraps the underlying
// reader error so callers can inspect it with errors.Is or errors.As.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return "csv parse error"
	}
	return "csv parse error: " + e.Err.Error()
}

// Unwrap returns the underlying reader error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Options configures a single conversion. The zero value reads
// comma-separated input, treats the first row as the header and
// auto-detects geo columns from DefaultGeoColumns.
type Options struct {
	// Name is set as the FeatureCollection name when non-empty.
	Name string

	// GeoColumns names the coordinate columns explicitly, longitude
	// first, or a single combined "x,y" column. Matching is
	// case-insensitive; names without a matching header column are
	// skipped. When empty the columns are auto-detected instead.
	GeoColumns []string

	// Delimiter overrides the CSV field separator. Zero means comma.
	Delimiter rune

	// HeaderOffset is the zero-based index of the header row. Rows
	// before it are discarded unparsed. Negative values mean zero.
	HeaderOffset int

	// LatLonOrder marks a single combined column as latitude-first;
	// the parsed values are reversed so the output stays in GeoJSON
	// [lon, lat] order. It has no effect with two geo columns.
	LatLonOrder bool

	// DefaultGeoColumns replaces the package-level candidate list used
	// for auto-detection. Nil means DefaultGeoColumns.
	DefaultGeoColumns []string
}

// utf8BOM is stripped from the start of the input before parsing.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Convert reads CSV data from r and builds a FeatureCollection with
// one Point feature per data row. Geo columns are resolved from
// opts.GeoColumns or detected from the candidate list; every other
// column becomes a feature property with its raw string value, in
// header order.
//
// Convert returns ErrNoGeoColumns when no coordinate column resolves
// and a *ParseError when the CSV reader rejects the input. Coordinate
// values that do not parse as numbers become 0 instead of failing.
func Convert(r io.Reader, opts Options) (FeatureCollection, error) {
	header, records, err := readRecords(r, opts)
	if err != nil {
		return FeatureCollection{}, err
	}

	candidates := opts.GeoColumns
	if len(candidates) == 0 {
		candidates = opts.DefaultGeoColumns
		if candidates == nil {
			candidates = DefaultGeoColumns
		}
	}

	geo := resolveColumns(headerLookup(header), candidates)
	if len(geo) == 0 {
		return FeatureCollection{}, ErrNoGeoColumns
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}
	isGeo := make(map[string]bool, len(geo))
	for _, col := range geo {
		isGeo[col] = true
	}

	features := make([]Feature, 0, len(records))
	for _, row := range records {
		features = append(features, Feature{
			Type:       "Feature",
			Properties: properties(header, row, isGeo),
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: coordinates(row, geo, colIndex, opts.LatLonOrder),
			},
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Name:     opts.Name,
		Features: features,
	}, nil
}

// readRecords parses the input into the header row and the data rows
// that follow it. Rows before the header may have any shape; strict
// field counting starts at the header row.
func readRecords(r io.Reader, opts Options) ([]string, [][]string, error) {
	br := bufio.NewReader(r)
	if peek, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	for skip := opts.HeaderOffset; skip > 0; skip-- {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil, &ParseError{Err: ErrNoHeader}
			}
			return nil, nil, &ParseError{Err: err}
		}
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, &ParseError{Err: ErrNoHeader}
		}
		return nil, nil, &ParseError{Err: err}
	}
	cr.FieldsPerRecord = len(header)

	var records [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, &ParseError{Err: err}
		}
		records = append(records, row)
	}

	return header, records, nil
}

// properties collects all non-geo columns of a row in header order.
func properties(header, row []string, isGeo map[string]bool) Properties {
	props := make(Properties, 0, len(header))
	for i, col := range header {
		if isGeo[col] {
			continue
		}
		props = append(props, Property{Key: col, Value: row[i]})
	}
	return props
}

// coordinates builds the point coordinates of a row. A single geo
// column holds a combined value that is split on commas and parsed
// piecewise; two geo columns are parsed in resolution order.
func coordinates(row []string, geo []string, colIndex map[string]int, latLonOrder bool) []float64 {
	switch len(geo) {
	case 1:
		pieces := strings.Split(row[colIndex[geo[0]]], ",")
		coords := make([]float64, len(pieces))
		for i, piece := range pieces {
			coords[i] = parseCoordinate(piece)
		}
		if latLonOrder {
			reverse(coords)
		}
		return coords
	case 2:
		return []float64{
			parseCoordinate(row[colIndex[geo[0]]]),
			parseCoordinate(row[colIndex[geo[1]]]),
		}
	default:
		return []float64{}
	}
}

// parseCoordinate converts one raw cell or cell piece to a float.
// Unparsable or empty input yields 0.
func parseCoordinate(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func reverse(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
