package i18n

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is one flattened translation: a dot-joined key path and its text value.
type Pair struct {
	Key   string
	Value string
}

// Flatten walks a nested document tree depth-first and returns one Pair per
// scalar leaf, with mapping field names and zero-based sequence indices joined
// by dots. The tree is either a *yaml.Node (YAML or JSON, traversed in
// declaration order) or a map produced by a decoder that does not preserve
// order (TOML), which is traversed in sorted key order so repeated runs emit
// identical sequences.
//
// A path emitted twice within one tree, or a leaf colliding with a deeper
// path, fails with ErrDuplicateKey. Null leaves fail with
// ErrUnsupportedLeafType. Empty key segments fail with ErrEmptyKey.
func Flatten(tree any) ([]Pair, error) {
	f := &flattener{
		leaves:   make(map[string]struct{}),
		branches: make(map[string]struct{}),
	}
	if err := f.walk(tree, ""); err != nil {
		return nil, err
	}
	return f.pairs, nil
}

type flattener struct {
	pairs    []Pair
	leaves   map[string]struct{}
	branches map[string]struct{}
}

func (f *flattener) walk(tree any, prefix string) error {
	switch v := tree.(type) {
	case *yaml.Node:
		return f.walkNode(v, prefix)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := f.walk(v[k], joinPath(prefix, k)); err != nil {
				return err
			}
		}
		return nil
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := f.emit(joinPath(prefix, k), v[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range v {
			if err := f.walk(item, joinPath(prefix, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil
	default:
		text, err := coerceScalar(tree)
		if err != nil {
			return fmt.Errorf("%w at %q", err, prefix)
		}
		return f.emit(prefix, text)
	}
}

func (f *flattener) walkNode(n *yaml.Node, prefix string) error {
	if n == nil {
		return fmt.Errorf("%w at %q: null", ErrUnsupportedLeafType, prefix)
	}

	// An empty document decodes into a zero node.
	if n.Kind == 0 && len(n.Content) == 0 && n.Value == "" {
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return f.walkNode(n.Content[0], prefix)
	case yaml.AliasNode:
		return f.walkNode(n.Alias, prefix)
	case yaml.MappingNode:
		// Content holds alternating key/value nodes in declaration order.
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("%w at %q: non-scalar mapping key", ErrUnsupportedLeafType, prefix)
			}
			if err := f.walkNode(n.Content[i+1], joinPath(prefix, key.Value)); err != nil {
				return err
			}
		}
		return nil
	case yaml.SequenceNode:
		for i, item := range n.Content {
			if err := f.walkNode(item, joinPath(prefix, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return fmt.Errorf("%w at %q: null", ErrUnsupportedLeafType, prefix)
		}
		// The scalar's source text is already the canonical rendering for
		// strings, numbers, and booleans alike.
		return f.emit(prefix, n.Value)
	default:
		return fmt.Errorf("%w at %q", ErrUnsupportedLeafType, prefix)
	}
}

// emit records one flattened pair, rejecting empty segments and paths that
// were already used as a leaf or as a branch of a deeper leaf.
func (f *flattener) emit(path, value string) error {
	if path == "" {
		return fmt.Errorf("%w: empty key path", ErrEmptyKey)
	}
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" {
			return fmt.Errorf("%w in %q", ErrEmptyKey, path)
		}
	}

	if _, ok := f.leaves[path]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, path)
	}
	if _, ok := f.branches[path]; ok {
		return fmt.Errorf("%w: %q is both a value and a parent", ErrDuplicateKey, path)
	}
	for prefix := range ancestorPaths(path) {
		if _, ok := f.leaves[prefix]; ok {
			return fmt.Errorf("%w: %q is both a value and a parent", ErrDuplicateKey, prefix)
		}
		f.branches[prefix] = struct{}{}
	}

	f.leaves[path] = struct{}{}
	f.pairs = append(f.pairs, Pair{Key: path, Value: value})
	return nil
}

func coerceScalar(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), nil
	case nil:
		return "", ErrUnsupportedLeafType
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedLeafType, v)
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// ancestorPaths yields every strict prefix of a dotted path, shortest first.
func ancestorPaths(path string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for i := 0; i < len(path); i++ {
			if path[i] == '.' {
				if !yield(path[:i]) {
					return
				}
			}
		}
	}
}
