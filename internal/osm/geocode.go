// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// ErrLocationNotFound is returned when geocoding produces no usable
// coordinate, for any reason: no candidates, transport failure,
// timeout, or a malformed response. Callers that have no other way of
// establishing a search area treat this as fatal.
var ErrLocationNotFound = errors.New("location not found")

// nominatimPlace is one geocoding candidate. Nominatim reports
// coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text place name to a coordinate through a
// single Nominatim lookup scoped to the configured country context.
// Exactly one candidate is requested and its coordinate returned.
func (s *Service) Geocode(ctx context.Context, location string) (types.Coordinate, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return types.Coordinate{}, fmt.Errorf("location text is empty")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.geo.Timeout)
	defer cancel()

	params := url.Values{
		"q":            {location},
		"format":       {"json"},
		"limit":        {"1"},
		"countrycodes": {s.geo.CountryCodes},
	}
	reqURL := s.geo.NominatimURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.geo.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("%w: nominatim request: %v", ErrLocationNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Coordinate{}, fmt.Errorf("%w: nominatim returned HTTP %d", ErrLocationNotFound, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return types.Coordinate{}, fmt.Errorf("%w: parsing nominatim response: %v", ErrLocationNotFound, err)
	}
	if len(places) == 0 {
		return types.Coordinate{}, fmt.Errorf("%w: %q", ErrLocationNotFound, location)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("%w: bad latitude %q", ErrLocationNotFound, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("%w: bad longitude %q", ErrLocationNotFound, places[0].Lon)
	}

	return types.Coordinate{Lat: lat, Lon: lon}, nil
}
