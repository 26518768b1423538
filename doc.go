// Package csv2geojson converts tabular CSV data into a GeoJSON
// FeatureCollection of Point features.
//
// One or two CSV columns carry the coordinates: either a longitude and
// a latitude column, or a single combined "x,y" column. Geo columns are
// named explicitly or auto-detected case-insensitively from a
// replaceable candidate list. Every remaining column becomes a feature
// property with its raw string value, in header order.
//
// The conversion is a single pass over the input with no retained
// state:
//
//	fc, err := csv2geojson.Convert(file, csv2geojson.Options{
//		Name:       "stops",
//		Delimiter:  ';',
//		GeoColumns: []string{"lng", "lat"},
//	})
//	if err != nil {
//		// handle *ParseError / ErrNoGeoColumns
//	}
//	data, err := json.Marshal(fc)
//
// Malformed CSV input surfaces as a *ParseError. When no geo column can
// be resolved Convert returns ErrNoGeoColumns. Coordinate cells that do
// not parse as numbers are coerced to 0 rather than aborting the
// conversion.
package csv2geojson
