// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufukk37/Business-Finder/internal/osm"
	"github.com/ufukk37/Business-Finder/internal/store"
	"github.com/ufukk37/Business-Finder/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for businesses near a place or inside a region",
	Long: `Search queries OpenStreetMap for businesses of a category around a
location. The area is a radius around a point — given directly with
--lat/--lon or resolved from a place name with --location — or a polygon
given as "lat,lon;lat,lon;..." vertices.

Category text is matched against a built-in Turkish/English vocabulary
(eczane, kuaför, restaurant, market, ...); unmatched categories fall back
to a generic business search plus a name match.`,
	Example: `  bizfinder search --category eczane --location "Kadıköy, İstanbul" --radius 3000
  bizfinder search --category kuaför --lat 41.0 --lon 29.0 --save
  bizfinder search --category market --polygon "41.0,29.0;41.1,29.0;41.1,29.1"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("category", "", "business category to search for (required)")
	searchCmd.Flags().String("location", "", "place name to search around (geocoded)")
	searchCmd.Flags().Float64("lat", 0, "center latitude")
	searchCmd.Flags().Float64("lon", 0, "center longitude")
	searchCmd.Flags().Int("radius", 5000, "search radius in meters (100-50000)")
	searchCmd.Flags().String("polygon", "", `polygon vertices as "lat,lon;lat,lon;..."`)
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default from config, 500)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("save", false, "save results to the local database")
	searchCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := appConfig()
	svc := osm.NewService(cfg.Search, cfg.Geocode, os.Stderr)

	query, err := spatialQueryFromFlags(cmd, svc)
	if err != nil {
		return err
	}

	results, err := svc.Search(cmd.Context(), category, query, maxResults)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err := store.New(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		summary, err := st.SaveAll(cmd.Context(), results)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved: %d new, %d already known\n", summary.New, summary.Duplicates)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return osm.FormatJSON(results, os.Stdout)
	}
	osm.FormatTable(results, os.Stdout)
	return nil
}

// spatialQueryFromFlags builds the search area from flags, geocoding
// the location text only when no coordinates or polygon were given.
func spatialQueryFromFlags(cmd *cobra.Command, svc *osm.Service) (osm.SpatialQuery, error) {
	radius, _ := cmd.Flags().GetInt("radius")
	polygonText, _ := cmd.Flags().GetString("polygon")
	location, _ := cmd.Flags().GetString("location")

	if polygonText != "" {
		polygon, err := parsePolygon(polygonText)
		if err != nil {
			return osm.SpatialQuery{}, err
		}
		return osm.SpatialQuery{Polygon: polygon}, nil
	}

	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		return osm.SpatialQuery{
			Center:       types.Coordinate{Lat: lat, Lon: lon},
			RadiusMeters: radius,
		}, nil
	}

	if location != "" {
		center, err := svc.Geocode(cmd.Context(), location)
		if err != nil {
			return osm.SpatialQuery{}, err
		}
		return osm.SpatialQuery{Center: center, RadiusMeters: radius}, nil
	}

	return osm.SpatialQuery{}, fmt.Errorf("no search area: provide --location, --lat/--lon, or --polygon")
}

// parsePolygon parses "lat,lon;lat,lon;..." into a vertex list.
func parsePolygon(text string) ([]types.Coordinate, error) {
	var polygon []types.Coordinate
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		latText, lonText, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("bad polygon vertex %q: want lat,lon", part)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
		if err != nil {
			return nil, fmt.Errorf("bad polygon latitude %q", latText)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
		if err != nil {
			return nil, fmt.Errorf("bad polygon longitude %q", lonText)
		}
		polygon = append(polygon, types.Coordinate{Lat: lat, Lon: lon})
	}
	if len(polygon) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(polygon))
	}
	return polygon, nil
}
