package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func TestFallbackChain(t *testing.T) {
	t.Parallel()

	t.Run("shortens regional tags step by step", func(t *testing.T) {
		t.Parallel()
		chain := i18n.FallbackChain("zh-Hant-CN", nil, "en")
		require.Equal(t, []string{"zh-Hant-CN", "zh-Hant", "zh", "en"}, chain)
	})

	t.Run("trims private-use remainders", func(t *testing.T) {
		t.Parallel()
		chain := i18n.FallbackChain("zh-Hant-CN-x-private", nil, "en")
		require.Equal(t, []string{"zh-Hant-CN-x-private", "zh-Hant-CN", "zh-Hant", "zh", "en"}, chain)
	})

	t.Run("appends configured fallbacks before the default", func(t *testing.T) {
		t.Parallel()
		chain := i18n.FallbackChain("fr-CA", []string{"es", "pt"}, "en")
		require.Equal(t, []string{"fr-CA", "fr", "es", "pt", "en"}, chain)
	})

	t.Run("deduplicates keeping first occurrence", func(t *testing.T) {
		t.Parallel()
		chain := i18n.FallbackChain("en-US", []string{"en", "en-US"}, "en")
		require.Equal(t, []string{"en-US", "en"}, chain)
	})

	t.Run("default locale alone", func(t *testing.T) {
		t.Parallel()
		chain := i18n.FallbackChain("en", nil, "en")
		require.Equal(t, []string{"en"}, chain)
	})

	t.Run("drops empty entries", func(t *testing.T) {
		t.Parallel()
		chain := i18n.FallbackChain("", []string{"", "de"}, "en")
		require.Equal(t, []string{"de", "en"}, chain)
	})
}
