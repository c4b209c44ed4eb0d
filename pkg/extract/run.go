package extract

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

// Options configures one extraction run. Zero values fall back to the
// corresponding i18n.DefaultConfig settings where one exists.
type Options struct {
	// SourceRoots are directories scanned recursively for call sites.
	SourceRoots []string
	// LocaleRoots are directories loaded into the translation store, in
	// order; later roots win on conflicting keys.
	LocaleRoots []string
	// CallMarkers are the literal invocation names to scan for.
	CallMarkers []string
	// Namespace is an optional compile-time prefix applied to every
	// extracted key.
	Namespace string
	// BaseLocale is the locale the extracted keys are diffed against.
	BaseLocale string
	// SourceExtensions filters scanned files, e.g. [".go"].
	SourceExtensions []string

	Minify       bool
	MinifyLen    int
	MinifyPrefix string
	MinifyThresh int
}

// FromConfig builds run options from a project configuration.
func FromConfig(cfg i18n.Config) Options {
	return Options{
		LocaleRoots:      []string{cfg.LoadPath},
		CallMarkers:      cfg.CallMarkers,
		BaseLocale:       cfg.DefaultLocale,
		SourceExtensions: cfg.SourceExtensions,
		Minify:           cfg.MinifyKey,
		MinifyLen:        cfg.MinifyKeyLen,
		MinifyPrefix:     cfg.MinifyKeyPrefix,
		MinifyThresh:     cfg.MinifyKeyThresh,
	}
}

// Run scans the source roots for translation call sites, loads the locale
// roots into a store, and reports the missing/unused diff plus the minified
// key mapping when enabled.
//
// Files are scanned in parallel; determinism is restored afterwards by
// sorting every merged result by file path and byte offset before codes are
// assigned or the diff is emitted.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.BaseLocale == "" {
		opts.BaseLocale = i18n.DefaultConfig().DefaultLocale
	}
	if len(opts.SourceExtensions) == 0 {
		opts.SourceExtensions = i18n.DefaultConfig().SourceExtensions
	}

	scanner, err := NewScanner(opts.CallMarkers, opts.Namespace)
	if err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(opts.SourceRoots, opts.SourceExtensions)
	if err != nil {
		return nil, err
	}

	keys, warnings, err := scanFiles(ctx, scanner, files)
	if err != nil {
		return nil, err
	}

	report := &Report{Warnings: warnings}

	var codes map[string]string
	if opts.Minify {
		minifier, err := NewMinifier(opts.MinifyLen, opts.MinifyPrefix, opts.MinifyThresh)
		if err != nil {
			return nil, err
		}
		report.Minified, err = minifier.Assign(firstSeenKeys(keys))
		if err != nil {
			return nil, err
		}
		codes = report.MinifiedMap()
	}

	for _, root := range opts.LocaleRoots {
		if _, err := os.Stat(root); err != nil {
			return nil, err
		}
	}
	store, loadDiag := loadStore(opts.LocaleRoots)
	report.LoadDiagnostics = loadDiag
	report.Conflicts = store.Conflicts()

	report.Missing, report.Unused = Diff(keys, store, opts.BaseLocale, codes)

	return report, nil
}

// collectSourceFiles walks each root in order and returns matching file
// paths. Walk order is lexical per root, so the combined list is
// deterministic for a fixed root order.
func collectSourceFiles(roots, exts []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			for _, want := range exts {
				if ext == strings.ToLower(want) {
					if _, dup := seen[path]; !dup {
						seen[path] = struct{}{}
						files = append(files, filepath.ToSlash(path))
					}
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func scanFiles(ctx context.Context, scanner *Scanner, files []string) ([]Key, []Warning, error) {
	perFileKeys := make([][]Key, len(files))
	perFileWarnings := make([][]Warning, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.FromSlash(path))
			if err != nil {
				return err
			}
			perFileKeys[i], perFileWarnings[i] = scanner.Scan(path, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var keys []Key
	var warnings []Warning
	for i := range files {
		keys = append(keys, perFileKeys[i]...)
		warnings = append(warnings, perFileWarnings[i]...)
	}

	sortBySite := func(a, b Site) bool {
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Offset < b.Offset
	}
	sort.Slice(keys, func(i, j int) bool { return sortBySite(keys[i].Site, keys[j].Site) })
	sort.Slice(warnings, func(i, j int) bool { return sortBySite(warnings[i].Site, warnings[j].Site) })

	return keys, warnings, nil
}

// firstSeenKeys returns each distinct full key once, in the order keys were
// first seen over the already-sorted site list. This is the stable global
// order minification numbering depends on.
func firstSeenKeys(keys []Key) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		full := k.FullKey()
		if _, ok := seen[full]; ok {
			continue
		}
		seen[full] = struct{}{}
		out = append(out, full)
	}
	return out
}

// loadStore builds the translation store from every locale root in order.
// Per-document structural failures are non-fatal and come back joined as
// diagnostics; the store always holds whatever loaded cleanly.
func loadStore(roots []string) (*i18n.Store, error) {
	var docs []i18n.Document
	var diags []error

	for _, root := range roots {
		loaded, err := i18n.LoadDir(os.DirFS(root))
		if err != nil {
			diags = append(diags, err)
		}
		docs = append(docs, loaded...)
	}

	store, err := i18n.Load(docs)
	if err != nil {
		diags = append(diags, err)
	}

	return store, errors.Join(diags...)
}
