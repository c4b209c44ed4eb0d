package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func parseYAML(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	return &root
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("emits pairs in declaration order", func(t *testing.T) {
		t.Parallel()
		tree := parseYAML(t, `
zulu: "last letter first"
alpha:
  nested: "deep"
  more:
    leaf: "deeper"
beta: "top"
`)
		pairs, err := i18n.Flatten(tree)
		require.NoError(t, err)
		require.Equal(t, []i18n.Pair{
			{Key: "zulu", Value: "last letter first"},
			{Key: "alpha.nested", Value: "deep"},
			{Key: "alpha.more.leaf", Value: "deeper"},
			{Key: "beta", Value: "top"},
		}, pairs)
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		t.Parallel()
		src := `
a:
  b: "1"
  c: "2"
d: "3"
`
		first, err := i18n.Flatten(parseYAML(t, src))
		require.NoError(t, err)
		second, err := i18n.Flatten(parseYAML(t, src))
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("addresses sequence elements by index", func(t *testing.T) {
		t.Parallel()
		tree := parseYAML(t, `
greetings:
  - "Hi"
  - "Hello"
  - formal: "Good day"
`)
		pairs, err := i18n.Flatten(tree)
		require.NoError(t, err)
		require.Equal(t, []i18n.Pair{
			{Key: "greetings.0", Value: "Hi"},
			{Key: "greetings.1", Value: "Hello"},
			{Key: "greetings.2.formal", Value: "Good day"},
		}, pairs)
	})

	t.Run("coerces numbers and booleans to text", func(t *testing.T) {
		t.Parallel()
		tree := parseYAML(t, `
count: 42
ratio: 0.5
enabled: true
`)
		pairs, err := i18n.Flatten(tree)
		require.NoError(t, err)
		require.Equal(t, []i18n.Pair{
			{Key: "count", Value: "42"},
			{Key: "ratio", Value: "0.5"},
			{Key: "enabled", Value: "true"},
		}, pairs)
	})

	t.Run("rejects null leaves", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.Flatten(parseYAML(t, `broken: null`))
		require.Error(t, err)
		require.ErrorIs(t, err, i18n.ErrUnsupportedLeafType)
	})

	t.Run("rejects duplicate paths within one document", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.Flatten(parseYAML(t, `
a:
  b: "first"
a:
  b: "second"
`))
		require.Error(t, err)
		require.ErrorIs(t, err, i18n.ErrDuplicateKey)
	})

	t.Run("rejects leaf shadowed by deeper path", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.Flatten(parseYAML(t, `
a:
  b: "leaf"
a:
  b:
    c: "deeper"
`))
		require.Error(t, err)
		require.ErrorIs(t, err, i18n.ErrDuplicateKey)
	})

	t.Run("rejects empty key segments", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.Flatten(parseYAML(t, `"": "no segments"`))
		require.Error(t, err)
		require.ErrorIs(t, err, i18n.ErrEmptyKey)
	})

	t.Run("flattens plain maps in sorted key order", func(t *testing.T) {
		t.Parallel()
		tree := map[string]any{
			"zeta": "z",
			"app": map[string]any{
				"title": "My App",
				"items": []any{"one", "two"},
			},
			"count": int64(7),
		}
		pairs, err := i18n.Flatten(tree)
		require.NoError(t, err)
		require.Equal(t, []i18n.Pair{
			{Key: "app.items.0", Value: "one"},
			{Key: "app.items.1", Value: "two"},
			{Key: "app.title", Value: "My App"},
			{Key: "count", Value: "7"},
			{Key: "zeta", Value: "z"},
		}, pairs)
	})

	t.Run("empty document yields no pairs", func(t *testing.T) {
		t.Parallel()
		pairs, err := i18n.Flatten(parseYAML(t, ``))
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})
}
