package i18n

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Document is one locale translation tree queued for loading. SourceID is a
// human-readable origin (usually a file path) kept for conflict diagnostics
// only; it never participates in resolution.
type Document struct {
	Tree     any
	Locale   string
	SourceID string
}

// Entry is one effective translation held by the store.
type Entry struct {
	Locale string
	Key    string
	Value  string
	Source string
}

// Conflict records a translation that was overwritten during Load because a
// later document defined the same (locale, key) pair.
type Conflict struct {
	Locale    string
	Key       string
	OldValue  string
	OldSource string
	NewSource string
}

type storeKey struct {
	locale string
	key    string
}

// Store holds the merged translations of all loaded documents. It is
// immutable after Load and safe for unsynchronized concurrent reads.
type Store struct {
	entries   map[storeKey]Entry
	conflicts []Conflict
	locales   []string
}

// Load flattens the given documents and folds them into a store in the order
// supplied by the caller: a later entry for the same (locale, key) overwrites
// the earlier one, which is appended to Conflicts. Flattening runs in
// parallel, folding does not.
//
// Structural errors (duplicate keys, unsupported leaves, nesting conflicts)
// abort only the offending document; the remaining documents still load. The
// returned store is usable even when the error is non-nil, which is then the
// join of the per-document failures, each carrying its source context.
func Load(documents []Document) (*Store, error) {
	s := &Store{entries: make(map[storeKey]Entry)}

	flattened := make([][]Pair, len(documents))
	docErrs := make([]error, len(documents))

	var g errgroup.Group
	for i, doc := range documents {
		g.Go(func() error {
			if doc.Locale == "" {
				docErrs[i] = fmt.Errorf("%s: %w", doc.SourceID, ErrEmptyLocale)
				return nil
			}
			pairs, err := Flatten(doc.Tree)
			if err != nil {
				docErrs[i] = fmt.Errorf("%s (%s): %w", doc.SourceID, doc.Locale, err)
				return nil
			}
			flattened[i] = pairs
			return nil
		})
	}
	_ = g.Wait() // workers report through docErrs

	// Fold in original document order so "later wins" stays deterministic
	// regardless of flattening concurrency.
	leaves := make(map[storeKey]struct{})
	branches := make(map[storeKey]struct{})

	for i, doc := range documents {
		if docErrs[i] != nil {
			continue
		}
		if err := s.checkNesting(doc, flattened[i], leaves, branches); err != nil {
			docErrs[i] = err
			continue
		}
		for _, p := range flattened[i] {
			s.fold(doc, p, leaves, branches)
		}
	}

	s.locales = collectLocales(s.entries)

	return s, errors.Join(docErrs...)
}

// checkNesting rejects a document whose keys collide with a different
// nesting depth already present for the locale (one source defining a.b as a
// leaf while another defines a.b.c). Exact duplicates are legitimate
// overwrites and pass through.
func (s *Store) checkNesting(doc Document, pairs []Pair, leaves, branches map[storeKey]struct{}) error {
	for _, p := range pairs {
		if _, ok := branches[storeKey{doc.Locale, p.Key}]; ok {
			return fmt.Errorf("%s (%s): %w: %q", doc.SourceID, doc.Locale, ErrNestingConflict, p.Key)
		}
		for prefix := range ancestorPaths(p.Key) {
			if _, ok := leaves[storeKey{doc.Locale, prefix}]; ok {
				return fmt.Errorf("%s (%s): %w: %q", doc.SourceID, doc.Locale, ErrNestingConflict, prefix)
			}
		}
	}
	return nil
}

func (s *Store) fold(doc Document, p Pair, leaves, branches map[storeKey]struct{}) {
	k := storeKey{doc.Locale, p.Key}
	if old, ok := s.entries[k]; ok {
		s.conflicts = append(s.conflicts, Conflict{
			Locale:    old.Locale,
			Key:       old.Key,
			OldValue:  old.Value,
			OldSource: old.Source,
			NewSource: doc.SourceID,
		})
	}
	s.entries[k] = Entry{
		Locale: doc.Locale,
		Key:    p.Key,
		Value:  p.Value,
		Source: doc.SourceID,
	}

	leaves[k] = struct{}{}
	for prefix := range ancestorPaths(p.Key) {
		branches[storeKey{doc.Locale, prefix}] = struct{}{}
	}
}

// Lookup returns the translation for the exact locale, without fallback.
func (s *Store) Lookup(locale, key string) (string, bool) {
	e, ok := s.entries[storeKey{locale, key}]
	return e.Value, ok
}

// LookupWithFallback tries each locale of the chain in order and returns the
// first hit wholesale. It reports false only when every locale in the chain
// lacks the key.
func (s *Store) LookupWithFallback(key string, chain []string) (string, bool) {
	for _, locale := range chain {
		if v, ok := s.Lookup(locale, key); ok {
			return v, true
		}
	}
	return "", false
}

// Entry returns the full stored entry for diagnostics, including its source.
func (s *Store) Entry(locale, key string) (Entry, bool) {
	e, ok := s.entries[storeKey{locale, key}]
	return e, ok
}

// Conflicts returns the overwrites recorded during Load, in fold order.
func (s *Store) Conflicts() []Conflict {
	return s.conflicts
}

// Locales returns the sorted list of locales with at least one translation.
func (s *Store) Locales() []string {
	return s.locales
}

// Keys returns the sorted keys present for a locale.
func (s *Store) Keys(locale string) []string {
	var keys []string
	for k := range s.entries {
		if k.locale == locale {
			keys = append(keys, k.key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of effective entries across all locales.
func (s *Store) Len() int {
	return len(s.entries)
}

func collectLocales(entries map[storeKey]Entry) []string {
	seen := make(map[string]struct{})
	for k := range entries {
		seen[k.locale] = struct{}{}
	}
	locales := make([]string, 0, len(seen))
	for l := range seen {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}
