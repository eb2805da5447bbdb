package mif

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/beetlebugorg/mif/internal/group"
	"github.com/beetlebugorg/mif/internal/region"
)

// Encode returns the Region block for a polygon or multi-polygon, and false
// for any other geometry kind.
func Encode(g geom.T) (string, bool) {
	return region.EncodeGeom(g)
}

// DeriveKey returns the grouping key of an attribute value: the text before
// the first "(", trimmed.
func DeriveKey(s string) string {
	return group.DeriveKey(s)
}

// EncodeWKT parses Well-Known Text and returns its Region block.
func EncodeWKT(text string) (string, bool, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(text))
	if err != nil {
		return "", false, fmt.Errorf("parse WKT: %w", err)
	}
	out, ok := region.EncodeGeom(g)
	return out, ok, nil
}

// EncodeGeoJSON parses a GeoJSON geometry or Feature and returns its Region
// block.
func EncodeGeoJSON(data []byte) (string, bool, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", false, fmt.Errorf("parse GeoJSON: %w", err)
	}

	var g geom.T
	switch probe.Type {
	case "Feature":
		var f geojson.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return "", false, fmt.Errorf("parse GeoJSON feature: %w", err)
		}
		g = f.Geometry
	default:
		if err := geojson.Unmarshal(data, &g); err != nil {
			return "", false, fmt.Errorf("parse GeoJSON: %w", err)
		}
	}

	out, ok := region.EncodeGeom(g)
	return out, ok, nil
}
