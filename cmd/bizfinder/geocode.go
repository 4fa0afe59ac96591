// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufukk37/Business-Finder/internal/osm"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <place name>",
	Short: "Resolve a place name to coordinates",
	Long: `Geocode resolves a free-text place name (city, district or address)
to a latitude/longitude pair through Nominatim, scoped to the configured
country.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig()
		svc := osm.NewService(cfg.Search, cfg.Geocode, os.Stderr)

		coord, err := svc.Geocode(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("%g %g\n", coord.Lat, coord.Lon)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
