package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typetest/internal/model"
)

// Export formats for history output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists supported history formats.
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// WriteHistory writes records in the requested format. Table output lists
// newest first; structured formats keep storage order.
func WriteHistory(w io.Writer, records []model.Record, format string) error {
	if records == nil {
		records = []model.Record{}
	}
	switch strings.ToLower(format) {
	case "", FormatTable:
		if len(records) == 0 {
			_, err := fmt.Fprintln(w, "No results found.")
			return err
		}
		headers, rows := HistoryRows(records)
		for _, line := range formatTable(headers, rows, 2, 3, 4, 5, 6) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}
