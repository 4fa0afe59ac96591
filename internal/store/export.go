// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// Format selects the export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const exportLimit = 100000

// Export writes stored businesses matching opts to w in the given
// format. The options' paging fields are ignored; an export covers
// everything that matches the filters.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format, opts ListOptions) error {
	opts.Limit = exportLimit
	opts.Offset = 0

	businesses, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	switch format {
	case FormatCSV:
		return exportCSV(w, businesses)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(businesses)
	case FormatYAML:
		data, err := yaml.Marshal(businesses)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

var csvHeader = []string{
	"place_id", "name", "address", "city", "district", "phone",
	"website", "category", "latitude", "longitude", "notes", "tags",
}

func exportCSV(w io.Writer, businesses []types.Business) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, b := range businesses {
		record := []string{
			b.PlaceID, b.Name, b.Address, b.City, b.District, b.Phone,
			b.Website, b.Category,
			strconv.FormatFloat(b.Latitude, 'f', -1, 64),
			strconv.FormatFloat(b.Longitude, 'f', -1, 64),
			b.Notes, b.Tags,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
