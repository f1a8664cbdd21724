package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Metadata maps a card name to its extra attributes ("Yes/No", "+/-", ...).
type Metadata map[string]map[string]string

// For returns the attributes recorded for a card, or nil.
func (m Metadata) For(name string) map[string]string {
	if m == nil {
		return nil
	}
	return m[strings.ToUpper(name)]
}

func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

// LoadMetadataCSV reads a CSV whose header has a "name" column followed by
// any number of attribute columns.
func LoadMetadataCSV(path string) (Metadata, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	header := rows[0]
	nameCol := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "name") {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("csv %s has no name column", path)
	}

	out := Metadata{}
	for _, row := range rows[1:] {
		if nameCol >= len(row) {
			continue
		}
		name := strings.ToUpper(cleanCell(row[nameCol]))
		if name == "" {
			continue
		}
		attrs := map[string]string{}
		for i, h := range header {
			if i == nameCol || i >= len(row) {
				continue
			}
			if v := cleanCell(row[i]); v != "" {
				attrs[strings.TrimSpace(h)] = v
			}
		}
		out[name] = attrs
	}
	return out, nil
}
