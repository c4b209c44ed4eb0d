package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	t.Run("loads mixed layouts and formats in lexical order", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"de.yml":        {Data: []byte("hello: \"Hallo\"\n")},
			"en.json":       {Data: []byte(`{"hello": "Hello", "bye": "Bye"}`)},
			"fr.toml":       {Data: []byte("hello = \"Bonjour\"\n")},
			"pl/common.yml": {Data: []byte("hello: \"Cześć\"\n")},
			"README.md":     {Data: []byte("not a locale file")},
		}

		docs, err := i18n.LoadDir(fsys)
		require.NoError(t, err)
		require.Len(t, docs, 4)
		require.Equal(t, "de", docs[0].Locale)
		require.Equal(t, "en", docs[1].Locale)
		require.Equal(t, "fr", docs[2].Locale)
		require.Equal(t, "pl", docs[3].Locale)
		require.Equal(t, "pl/common.yml", docs[3].SourceID)

		store, err := i18n.Load(docs)
		require.NoError(t, err)

		for locale, want := range map[string]string{
			"de": "Hallo",
			"en": "Hello",
			"fr": "Bonjour",
			"pl": "Cześć",
		} {
			v, ok := store.Lookup(locale, "hello")
			require.True(t, ok, locale)
			require.Equal(t, want, v)
		}
	})

	t.Run("later paths win within one locale", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en/01_base.yml":     {Data: []byte("title: \"Base\"\n")},
			"en/02_override.yml": {Data: []byte("title: \"Override\"\n")},
		}

		docs, err := i18n.LoadDir(fsys)
		require.NoError(t, err)

		store, err := i18n.Load(docs)
		require.NoError(t, err)

		v, ok := store.Lookup("en", "title")
		require.True(t, ok)
		require.Equal(t, "Override", v)
		require.Len(t, store.Conflicts(), 1)
		assert.Equal(t, "en/01_base.yml", store.Conflicts()[0].OldSource)
	})

	t.Run("unparsable file is skipped and reported", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en.yml":  {Data: []byte("ok: \"fine\"\n")},
			"de.toml": {Data: []byte("= not toml at all")},
		}

		docs, err := i18n.LoadDir(fsys)
		require.Error(t, err)
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
		require.ErrorContains(t, err, "de.toml")
		require.Len(t, docs, 1)
		require.Equal(t, "en", docs[0].Locale)
	})

	t.Run("empty fs yields no documents", func(t *testing.T) {
		t.Parallel()
		docs, err := i18n.LoadDir(fstest.MapFS{})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}
