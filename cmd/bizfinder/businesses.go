// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufukk37/Business-Finder/internal/osm"
	"github.com/ufukk37/Business-Finder/internal/store"
)

var businessesCmd = &cobra.Command{
	Use:   "businesses",
	Short: "Manage saved businesses (list, annotate, stats, export)",
	Long: `Businesses manages the local SQLite database of saved search results.
Use subcommands to list and filter records, annotate them, delete them,
inspect aggregate statistics, or export them.`,
}

// --- list subcommand ---

var businessesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved businesses",
	RunE:  runBusinessesList,
}

func runBusinessesList(cmd *cobra.Command, args []string) error {
	st, err := store.New(appConfig().Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := listOptionsFromFlags(cmd)
	businesses, err := st.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return osm.FormatJSON(businesses, os.Stdout)
	}
	osm.FormatTable(businesses, os.Stdout)
	return nil
}

// --- annotate subcommand ---

var businessesAnnotateCmd = &cobra.Command{
	Use:   "annotate <place-id>",
	Short: "Set notes and tags on a saved business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		tags, _ := cmd.Flags().GetString("tags")

		st, err := store.New(appConfig().Store)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.UpdateAnnotations(cmd.Context(), args[0], notes, tags)
	},
}

// --- delete subcommand ---

var businessesDeleteCmd = &cobra.Command{
	Use:   "delete <place-id> [place-id ...]",
	Short: "Delete saved businesses by place ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(appConfig().Store)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Delete(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d business(es)\n", n)
		return nil
	},
}

// --- stats subcommand ---

var businessesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics for saved businesses",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(appConfig().Store)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Total businesses: %d\n", stats.Total)
		fmt.Printf("With phone:       %d\n", stats.WithPhone)
		fmt.Printf("With website:     %d\n", stats.WithWebsite)
		printGroup("By city", stats.ByCity)
		printGroup("By category", stats.ByCategory)
		return nil
	},
}

func printGroup(title string, group map[string]int) {
	if len(group) == 0 {
		return
	}
	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-30s %d\n", k, group[k])
	}
}

// --- export subcommand ---

var businessesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved businesses as CSV, JSON or YAML",
	RunE:  runBusinessesExport,
}

func runBusinessesExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	st, err := store.New(appConfig().Store)
	if err != nil {
		return err
	}
	defer st.Close()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	opts := listOptionsFromFlags(cmd)
	if err := st.Export(cmd.Context(), out, store.Format(strings.ToLower(format)), opts); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
	}
	return nil
}

func listOptionsFromFlags(cmd *cobra.Command) store.ListOptions {
	city, _ := cmd.Flags().GetString("city")
	category, _ := cmd.Flags().GetString("category")
	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	return store.ListOptions{
		City:      city,
		Category:  category,
		NameQuery: name,
		Limit:     limit,
		Offset:    offset,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("city", "", "filter by city")
	cmd.Flags().String("category", "", "filter by category")
	cmd.Flags().String("name", "", "filter by name substring")
	cmd.Flags().Int("limit", 0, "maximum records (default 100)")
	cmd.Flags().Int("offset", 0, "records to skip")
}

func init() {
	addFilterFlags(businessesListCmd)
	businessesListCmd.Flags().Bool("json", false, "output as JSON")

	businessesAnnotateCmd.Flags().String("notes", "", "free-text notes")
	businessesAnnotateCmd.Flags().String("tags", "", "comma-separated tags")

	businessesStatsCmd.Flags().Bool("json", false, "output as JSON")

	addFilterFlags(businessesExportCmd)
	businessesExportCmd.Flags().String("format", "csv", "export format: csv, json, or yaml")
	businessesExportCmd.Flags().String("out", "", "output file (default stdout)")

	businessesCmd.AddCommand(businessesListCmd)
	businessesCmd.AddCommand(businessesAnnotateCmd)
	businessesCmd.AddCommand(businessesDeleteCmd)
	businessesCmd.AddCommand(businessesStatsCmd)
	businessesCmd.AddCommand(businessesExportCmd)
	rootCmd.AddCommand(businessesCmd)
}
