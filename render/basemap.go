package render

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadBoundaries reads coastline and administrative boundary lines
// from a GeoJSON file. Polygon rings and line strings are flattened
// to a single list of lines for overlay drawing.
func LoadBoundaries(filename string) ([]orb.LineString, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("boundary file %s: %w", filename, err)
	}

	var lines []orb.LineString
	for _, feat := range fc.Features {
		lines = append(lines, flattenGeometry(feat.Geometry)...)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("boundary file %s holds no line or polygon features", filename)
	}
	return lines, nil
}

func flattenGeometry(g orb.Geometry) []orb.LineString {
	switch geom := g.(type) {
	case orb.LineString:
		return []orb.LineString{geom}
	case orb.MultiLineString:
		lines := make([]orb.LineString, 0, len(geom))
		for _, ls := range geom {
			lines = append(lines, ls)
		}
		return lines
	case orb.Polygon:
		lines := make([]orb.LineString, 0, len(geom))
		for _, ring := range geom {
			lines = append(lines, orb.LineString(ring))
		}
		return lines
	case orb.MultiPolygon:
		var lines []orb.LineString
		for _, poly := range geom {
			for _, ring := range poly {
				lines = append(lines, orb.LineString(ring))
			}
		}
		return lines
	case orb.Collection:
		var lines []orb.LineString
		for _, sub := range geom {
			lines = append(lines, flattenGeometry(sub)...)
		}
		return lines
	}
	return nil
}
