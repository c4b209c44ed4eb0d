package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/polyglot/pkg/extract"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func storeFromYAML(t *testing.T, locale, src string) *i18n.Store {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	store, err := i18n.Load([]i18n.Document{
		{Locale: locale, SourceID: locale + ".yml", Tree: &node},
	})
	require.NoError(t, err)
	return store
}

func TestDiff(t *testing.T) {
	t.Parallel()

	t.Run("reports missing and unused keys", func(t *testing.T) {
		t.Parallel()
		store := storeFromYAML(t, "en", "messages:\n  bye: \"Bye\"\n")
		extracted := []extract.Key{
			{Key: "messages.hello", Site: extract.Site{File: "a.go", Line: 3, Offset: 40}},
		}

		missing, unused := extract.Diff(extracted, store, "en", nil)
		require.Len(t, missing, 1)
		assert.Equal(t, "messages.hello", missing[0].Key)
		require.Len(t, unused, 1)
		assert.Equal(t, "messages.bye", unused[0].Key)
		assert.Equal(t, "en.yml", unused[0].Source)
	})

	t.Run("present keys appear in neither list", func(t *testing.T) {
		t.Parallel()
		store := storeFromYAML(t, "en", "messages:\n  hello: \"Hello\"\n")
		extracted := []extract.Key{
			{Key: "messages.hello", Site: extract.Site{File: "a.go", Line: 1, Offset: 0}},
		}

		missing, unused := extract.Diff(extracted, store, "en", nil)
		assert.Empty(t, missing)
		assert.Empty(t, unused)
	})

	t.Run("missing keys sort and carry ordered sites", func(t *testing.T) {
		t.Parallel()
		store := storeFromYAML(t, "en", "unrelated: \"x\"\n")
		extracted := []extract.Key{
			{Key: "zed.key", Site: extract.Site{File: "b.go", Line: 1, Offset: 5}},
			{Key: "alpha.key", Site: extract.Site{File: "b.go", Line: 2, Offset: 30}},
			{Key: "alpha.key", Site: extract.Site{File: "a.go", Line: 9, Offset: 120}},
		}

		missing, _ := extract.Diff(extracted, store, "en", nil)
		require.Len(t, missing, 2)
		assert.Equal(t, "alpha.key", missing[0].Key)
		assert.Equal(t, "zed.key", missing[1].Key)

		require.Len(t, missing[0].Sites, 2)
		assert.Equal(t, "a.go", missing[0].Sites[0].File)
		assert.Equal(t, "b.go", missing[0].Sites[1].File)
	})

	t.Run("minified code counts as present", func(t *testing.T) {
		t.Parallel()
		store := storeFromYAML(t, "en", "t_abc: \"Hello\"\n")
		extracted := []extract.Key{
			{Key: "messages.hello", Site: extract.Site{File: "a.go", Line: 1, Offset: 0}},
		}
		codes := map[string]string{"messages.hello": "t_abc"}

		missing, unused := extract.Diff(extracted, store, "en", codes)
		assert.Empty(t, missing)
		assert.Empty(t, unused)
	})

	t.Run("namespace applies to the diff", func(t *testing.T) {
		t.Parallel()
		store := storeFromYAML(t, "en", "admin:\n  title: \"Admin\"\n")
		extracted := []extract.Key{
			{Key: "title", Namespace: "admin", Site: extract.Site{File: "a.go", Line: 1, Offset: 0}},
		}

		missing, unused := extract.Diff(extracted, store, "en", nil)
		assert.Empty(t, missing)
		assert.Empty(t, unused)
	})
}
