// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"fmt"
	"strings"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// Radius bounds accepted for circular searches, in meters.
const (
	MinRadiusMeters = 100
	MaxRadiusMeters = 50000
)

// SpatialQuery describes where to search: either a circle around a
// center point or a polygon. Polygon mode is active when Polygon is
// non-empty; otherwise radius mode applies. Exactly one mode is ever
// used for a given query.
type SpatialQuery struct {
	Center       types.Coordinate
	RadiusMeters int

	// Polygon is an ordered vertex sequence, at least three points.
	// No simplicity check is performed; a self-intersecting polygon is
	// passed to the source as-is.
	Polygon []types.Coordinate
}

// Validate rejects queries that activate neither mode correctly.
func (q SpatialQuery) Validate() error {
	if len(q.Polygon) > 0 {
		if len(q.Polygon) < 3 {
			return fmt.Errorf("polygon needs at least 3 vertices, got %d", len(q.Polygon))
		}
		return nil
	}
	if q.RadiusMeters < MinRadiusMeters || q.RadiusMeters > MaxRadiusMeters {
		return fmt.Errorf("radius %d m outside [%d, %d]", q.RadiusMeters, MinRadiusMeters, MaxRadiusMeters)
	}
	return nil
}

// AreaFilter is the rendered spatial predicate appended to each
// element selector in an Overpass query. Opaque to callers; only the
// query composer consumes it.
type AreaFilter struct {
	clause string
}

// BuildAreaFilter renders the spatial query into an Overpass area
// predicate: (around:R,LAT,LON) for radius mode, (poly:"…") for
// polygon mode.
func BuildAreaFilter(q SpatialQuery) (AreaFilter, error) {
	if err := q.Validate(); err != nil {
		return AreaFilter{}, err
	}

	if len(q.Polygon) > 0 {
		verts := make([]string, len(q.Polygon))
		for i, p := range q.Polygon {
			verts[i] = fmt.Sprintf("%g %g", p.Lat, p.Lon)
		}
		return AreaFilter{clause: fmt.Sprintf("(poly:%q)", strings.Join(verts, " "))}, nil
	}

	return AreaFilter{
		clause: fmt.Sprintf("(around:%d,%g,%g)", q.RadiusMeters, q.Center.Lat, q.Center.Lon),
	}, nil
}
