package csv2geojson

import "strings"

// DefaultGeoColumns is the candidate list scanned during geo column
// auto-detection. Longitude spellings come first so that a two-column
// match yields longitude before latitude; combined-column names come
// last so a lon/lat pair wins over them.
var DefaultGeoColumns = []string{
	"lon", "lng", "longitude",
	"lat", "latitude",
	"coordinates", "point",
}

// maxGeoColumns caps resolution: a point uses at most a longitude and
// latitude pair, or a single combined column.
const maxGeoColumns = 2

// normalizeColumn builds the form used for all case-insensitive column
// matching.
func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// headerLookup maps normalized column names to their original header
// spelling. Columns that collide after normalization resolve to the
// later occurrence.
func headerLookup(header []string) map[string]string {
	lookup := make(map[string]string, len(header))
	for _, col := range header {
		lookup[normalizeColumn(col)] = col
	}
	return lookup
}

// resolveColumns matches names against the header lookup in the given
// order and returns the original header spellings of the matches.
// Names without a matching column are skipped; resolution stops once
// maxGeoColumns are found.
func resolveColumns(lookup map[string]string, names []string) []string {
	geo := make([]string, 0, maxGeoColumns)
	for _, name := range names {
		if len(geo) == maxGeoColumns {
			break
		}
		if col, ok := lookup[normalizeColumn(name)]; ok {
			geo = append(geo, col)
		}
	}
	return geo
}
