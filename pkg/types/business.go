// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for Business-Finder.
package types

import "time"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Business is one normalized business record produced by a search.
// PlaceID is derived from the source element's kind and numeric id
// (e.g. "osm_node_123456") and is stable across queries, so it serves
// as the deduplication and storage key.
type Business struct {
	// PlaceID is the stable synthetic identity of the source element.
	PlaceID string `json:"place_id" yaml:"place_id"`

	// Name is the business name. Always non-empty; elements without a
	// name are discarded during normalization.
	Name string `json:"name" yaml:"name"`

	// Address is a human-readable address assembled from the element's
	// structured address attributes, or its raw full-address attribute.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	District string `json:"district,omitempty" yaml:"district,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`

	// Category is the caller-supplied category text verbatim, not the
	// matched tag vocabulary.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`

	// Notes and Tags are store-side annotations; the search core never
	// sets them.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Tags  string `json:"tags,omitempty" yaml:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}
