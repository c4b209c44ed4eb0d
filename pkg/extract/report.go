package extract

import (
	"sort"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

// MissingKey is a key referenced in source but absent from the base locale.
// Sites lists every call site referencing it, ordered by file then offset.
type MissingKey struct {
	Key   string
	Sites []Site
}

// UnusedKey is a key defined for the base locale but referenced by no
// scanned call site. Source is the defining document, for diagnostics.
type UnusedKey struct {
	Key    string
	Source string
}

// Report is the outcome of one extraction run. Missing keys are the
// actionable signal; unused keys are advisory. All slices are sorted so
// repeated runs over unchanged input produce identical reports.
type Report struct {
	Missing  []MissingKey
	Unused   []UnusedKey
	Warnings []Warning
	Minified []MinifiedKey

	// LoadDiagnostics joins the non-fatal per-document load failures and
	// merge conflict notes encountered while building the store.
	LoadDiagnostics error
	Conflicts       []i18n.Conflict
}

// MinifiedMap returns the key → code mapping as a plain map, suitable for
// marshalling into an additional locale document.
func (r *Report) MinifiedMap() map[string]string {
	if len(r.Minified) == 0 {
		return nil
	}
	m := make(map[string]string, len(r.Minified))
	for _, mk := range r.Minified {
		m[mk.Key] = mk.Code
	}
	return m
}

// Diff computes the symmetric difference between the extracted keys and the
// base locale's store keys. When codes is non-nil (minification enabled), an
// extracted key also counts as present when its short code resolves, since
// minified stores hold codes rather than full keys.
func Diff(extracted []Key, store *i18n.Store, baseLocale string, codes map[string]string) (missing []MissingKey, unused []UnusedKey) {
	sites := make(map[string][]Site)
	for _, k := range extracted {
		full := k.FullKey()
		sites[full] = append(sites[full], k.Site)
	}

	referenced := make(map[string]struct{}, len(sites))
	for full, ss := range sites {
		sort.Slice(ss, func(i, j int) bool {
			if ss[i].File != ss[j].File {
				return ss[i].File < ss[j].File
			}
			return ss[i].Offset < ss[j].Offset
		})

		present := false
		if _, ok := store.Lookup(baseLocale, full); ok {
			referenced[full] = struct{}{}
			present = true
		}
		if code, ok := codes[full]; ok {
			if _, hit := store.Lookup(baseLocale, code); hit {
				referenced[code] = struct{}{}
				present = true
			}
		}
		if !present {
			missing = append(missing, MissingKey{Key: full, Sites: ss})
		}
	}

	for _, key := range store.Keys(baseLocale) {
		if _, ok := referenced[key]; ok {
			continue
		}
		entry, _ := store.Entry(baseLocale, key)
		unused = append(unused, UnusedKey{Key: key, Source: entry.Source})
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i].Key < missing[j].Key })
	// Unused inherits the sorted order of store.Keys.

	return missing, unused
}
