package i18n_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func exportStore(t *testing.T) *i18n.Store {
	t.Helper()
	store, err := i18n.Load([]i18n.Document{
		{Locale: "en", SourceID: "en.yml", Tree: parseYAML(t, "hello: \"Hello\"\nbye: \"Bye\"")},
		{Locale: "es", SourceID: "es.yml", Tree: parseYAML(t, "hello: \"Hola\"")},
	})
	require.NoError(t, err)
	return store
}

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("csv sorts keys and locales", func(t *testing.T) {
		t.Parallel()
		out, err := i18n.Export(exportStore(t), nil, "en", i18n.MissedEmpty, "csv")
		require.NoError(t, err)
		require.Equal(t, "key,en,es\nbye,Bye,\nhello,Hello,Hola\n", string(out))
	})

	t.Run("missed default fills from the default locale", func(t *testing.T) {
		t.Parallel()
		out, err := i18n.Export(exportStore(t), nil, "en", i18n.MissedDefault, "csv")
		require.NoError(t, err)
		require.Equal(t, "key,en,es\nbye,Bye,Bye\nhello,Hello,Hola\n", string(out))
	})

	t.Run("json is valid and complete", func(t *testing.T) {
		t.Parallel()
		out, err := i18n.Export(exportStore(t), nil, "en", i18n.MissedEmpty, "json")
		require.NoError(t, err)

		var table map[string]map[string]string
		require.NoError(t, json.Unmarshal(out, &table))
		require.Equal(t, "Hola", table["hello"]["es"])
		require.Empty(t, table["bye"]["es"])
	})

	t.Run("explicit locale selection", func(t *testing.T) {
		t.Parallel()
		out, err := i18n.Export(exportStore(t), []string{"es"}, "en", i18n.MissedEmpty, "csv")
		require.NoError(t, err)
		require.Equal(t, "key,es\nbye,\nhello,Hola\n", string(out))
	})

	t.Run("repeated exports are byte identical", func(t *testing.T) {
		t.Parallel()
		store := exportStore(t)
		for _, format := range []string{"csv", "json", "yaml", "toml"} {
			first, err := i18n.Export(store, nil, "en", i18n.MissedDefault, format)
			require.NoError(t, err, format)
			second, err := i18n.Export(store, nil, "en", i18n.MissedDefault, format)
			require.NoError(t, err, format)
			require.Equal(t, first, second, format)
		}
	})

	t.Run("unknown format fails", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.Export(exportStore(t), nil, "en", i18n.MissedEmpty, "xml")
		require.Error(t, err)
		require.ErrorIs(t, err, i18n.ErrUnknownFormat)
	})
}
