// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"fmt"
	"strings"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// Overpass API JSON structures.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// overpassElement is one raw element: a node carries lat/lon directly,
// a way carries a representative center coordinate when the query asks
// for one. Lat/Lon are pointers so an absent coordinate is
// distinguishable from zero.
type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// normalizeElement converts one raw element into a Business record.
// Elements without a resolvable coordinate or a non-empty name are
// rejected (ok = false); that is an exclusion, not an error. The
// category field carries the caller's text verbatim, not the matched
// tag, so stored records reflect what the user searched for.
func normalizeElement(el overpassElement, categoryText string) (types.Business, bool) {
	var lat, lon float64
	switch {
	case el.Type == "way" && el.Center != nil:
		lat, lon = el.Center.Lat, el.Center.Lon
	case el.Lat != nil && el.Lon != nil:
		lat, lon = *el.Lat, *el.Lon
	default:
		return types.Business{}, false
	}

	name := el.Tags["name"]
	if name == "" {
		name = el.Tags["name:tr"]
	}
	if name == "" {
		return types.Business{}, false
	}

	return types.Business{
		PlaceID:   fmt.Sprintf("osm_%s_%d", el.Type, el.ID),
		Name:      name,
		Address:   buildAddress(el.Tags),
		City:      el.Tags["addr:city"],
		District:  firstTag(el.Tags, "addr:district", "addr:suburb"),
		Phone:     firstTag(el.Tags, "phone", "contact:phone"),
		Website:   firstTag(el.Tags, "website", "contact:website"),
		Category:  categoryText,
		Latitude:  lat,
		Longitude: lon,
	}, true
}

// buildAddress assembles a display address from structured address
// tags in fixed order: street (with house number), district, city.
// When none are present the raw addr:full value is used instead.
func buildAddress(tags map[string]string) string {
	var parts []string
	if street := tags["addr:street"]; street != "" {
		if num := tags["addr:housenumber"]; num != "" {
			parts = append(parts, street+" No:"+num)
		} else {
			parts = append(parts, street)
		}
	}
	if district := tags["addr:district"]; district != "" {
		parts = append(parts, district)
	}
	if city := tags["addr:city"]; city != "" {
		parts = append(parts, city)
	}
	if len(parts) == 0 {
		return tags["addr:full"]
	}
	return strings.Join(parts, ", ")
}

// firstTag returns the first non-empty value among the given keys.
func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return ""
}
