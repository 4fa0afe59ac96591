// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bizfinder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bizfinder CLI.
var rootCmd = &cobra.Command{
	Use:   "bizfinder",
	Short: "Find real-world businesses through OpenStreetMap",
	Long: `bizfinder locates businesses near a place or inside a region using the
public OpenStreetMap APIs: Nominatim resolves place names to coordinates and
Overpass answers structured feature queries. Results are normalized,
deduplicated and can be saved to a local SQLite database for later listing,
annotation and export.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bizfinder.yaml or ~/.config/bizfinder/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bizfinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bizfinder"))
		}
	}

	viper.SetEnvPrefix("BIZFINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
