package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// LoadDir collects locale documents from an fs.FS. Two layouts are
// recognized, and may be mixed:
//
//	en.yml            top-level file, locale taken from the file stem
//	en/common.yaml    language directory, locale taken from the directory
//
// Supported extensions are .yml, .yaml, .json, and .toml. YAML and JSON are
// decoded through the yaml.v3 node API so flattening sees declaration order;
// TOML decodes into maps and is flattened in sorted key order.
//
// Documents are returned in lexical path order, which is the merge order
// contract for Load: later paths win on conflicting keys. Files that fail to
// parse are skipped and reported through the joined error; the remaining
// documents are still returned.
func LoadDir(fsys fs.FS) ([]Document, error) {
	type pending struct {
		path   string
		locale string
	}

	var files []pending
	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(filePath))
		switch ext {
		case ".yml", ".yaml", ".json", ".toml":
		default:
			return nil
		}

		locale := localeForPath(filePath)
		if locale == "" {
			return fmt.Errorf("%w: cannot derive locale from %q", ErrInvalidFile, filePath)
		}
		files = append(files, pending{path: filePath, locale: locale})
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(files))
	fileErrs := make([]error, len(files))

	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			data, err := fs.ReadFile(fsys, f.path)
			if err != nil {
				fileErrs[i] = fmt.Errorf("reading %q: %w", f.path, err)
				return nil
			}
			tree, err := parseDocument(f.path, data)
			if err != nil {
				fileErrs[i] = err
				return nil
			}
			docs[i] = Document{Locale: f.locale, SourceID: f.path, Tree: tree}
			return nil
		})
	}
	_ = g.Wait() // workers report through fileErrs

	out := docs[:0]
	for i := range docs {
		if fileErrs[i] == nil {
			out = append(out, docs[i])
		}
	}

	return out, errors.Join(fileErrs...)
}

func parseDocument(filePath string, data []byte) (any, error) {
	if strings.EqualFold(path.Ext(filePath), ".toml") {
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, filePath, err)
		}
		return tree, nil
	}

	// yaml.v3 accepts JSON input as well, keeping one order-preserving
	// decode path for both formats.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidFile, filePath, err)
	}
	return &root, nil
}

// localeForPath derives the locale id: the first directory for nested files,
// the file stem for top-level ones.
func localeForPath(filePath string) string {
	if dir, _, ok := strings.Cut(filePath, "/"); ok {
		return dir
	}
	base := path.Base(filePath)
	return strings.TrimSuffix(base, path.Ext(base))
}
