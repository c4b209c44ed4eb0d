package i18n

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MissedMode controls how Export fills cells for keys a locale lacks.
type MissedMode int

const (
	// MissedDefault copies the default locale's value into the empty cell.
	MissedDefault MissedMode = iota
	// MissedEmpty leaves the cell empty.
	MissedEmpty
)

// Export merges every key of the selected locales into a single table sorted
// by key and locale and renders it in the requested format: "csv", "json",
// "yaml"/"yml", or "toml". An empty locales list selects all locales in the
// store. The output is fully deterministic for an unchanged store.
func Export(s *Store, locales []string, defaultLocale string, missed MissedMode, format string) ([]byte, error) {
	if len(locales) == 0 {
		locales = s.Locales()
	} else {
		locales = append([]string(nil), locales...)
		sort.Strings(locales)
	}

	keySet := make(map[string]struct{})
	for _, locale := range s.Locales() {
		for _, k := range s.Keys(locale) {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cell := func(locale, key string) string {
		if v, ok := s.Lookup(locale, key); ok {
			return v
		}
		if missed == MissedDefault {
			v, _ := s.Lookup(defaultLocale, key)
			return v
		}
		return ""
	}

	switch format {
	case "csv":
		return exportCSV(keys, locales, cell)
	case "json", "yaml", "yml", "toml":
		table := make(map[string]map[string]string, len(keys))
		for _, k := range keys {
			row := make(map[string]string, len(locales))
			for _, l := range locales {
				row[l] = cell(l, k)
			}
			table[k] = row
		}
		return marshalTable(table, format)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func exportCSV(keys, locales []string, cell func(locale, key string) string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(append([]string{"key"}, locales...)); err != nil {
		return nil, err
	}
	for _, k := range keys {
		row := make([]string, 0, len(locales)+1)
		row = append(row, k)
		for _, l := range locales {
			row = append(row, cell(l, k))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalTable relies on all three encoders rendering string maps in sorted
// key order, which keeps repeated exports byte-identical.
func marshalTable(table map[string]map[string]string, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(table, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(table)
	default:
		return toml.Marshal(table)
	}
}
