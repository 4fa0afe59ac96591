// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// appConfig assembles the typed configuration from viper. Unset keys
// stay zero; each component fills in its own defaults.
func appConfig() types.AppConfig {
	return types.AppConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			OverpassURL:  viper.GetString("search.overpass_url"),
			MaxResults:   viper.GetInt("search.max_results"),
			PaceInterval: viper.GetDuration("search.pace_interval"),
			QueryTimeout: viper.GetInt("search.query_timeout"),
		},
		Geocode: types.GeocodeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("geocode.timeout"),
				UserAgent: viper.GetString("geocode.user_agent"),
			},
			NominatimURL: viper.GetString("geocode.nominatim_url"),
			CountryCodes: viper.GetString("geocode.country_codes"),
		},
		Store: types.StoreConfig{
			DatabasePath: viper.GetString("store.database_path"),
		},
	}
}
