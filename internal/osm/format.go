// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// FormatTable writes businesses as a human-readable table to w.
func FormatTable(businesses []types.Business, w io.Writer) {
	if len(businesses) == 0 {
		fmt.Fprintln(w, "No businesses found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-35s  %-40s  %-15s  %s\n",
		"#", "Name", "Address", "Phone", "Website")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, b := range businesses {
		fmt.Fprintf(w, "%-4d  %-35s  %-40s  %-15s  %s\n",
			i+1, truncate(b.Name, 35), truncate(b.Address, 40),
			truncate(b.Phone, 15), b.Website)
	}

	fmt.Fprintf(w, "\n%d businesses\n", len(businesses))
}

// FormatJSON writes businesses as indented JSON to w.
func FormatJSON(businesses []types.Business, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(businesses)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
