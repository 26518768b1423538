package csv2geojson

import "math"

// FeatureCollection is the root GeoJSON object produced by a
// conversion. Name and BBox are optional members and stay absent from
// the output when unset.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	BBox     []float64 `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature is a single GeoJSON feature built from one CSV data row.
type Feature struct {
	Properties Properties `json:"properties" yaml:"properties"`
	Type       string     `json:"type" yaml:"type"`
	Geometry   Geometry   `json:"geometry" yaml:"geometry"`
}

// Geometry holds the point geometry of a feature.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// ComputeBBox fills the bounding box member from the coordinates of
// all features as [west, south, east, north]. Features without at
// least two coordinate values are ignored; a collection without any
// usable coordinates keeps BBox nil.
func (fc *FeatureCollection) ComputeBBox() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	found := false
	for _, f := range fc.Features {
		c := f.Geometry.Coordinates
		if len(c) < 2 {
			continue
		}
		found = true

		minX = math.Min(minX, c[0])
		minY = math.Min(minY, c[1])
		maxX = math.Max(maxX, c[0])
		maxY = math.Max(maxY, c[1])
	}

	if !found {
		fc.BBox = nil
		return
	}
	fc.BBox = []float64{minX, minY, maxX, maxY}
}
