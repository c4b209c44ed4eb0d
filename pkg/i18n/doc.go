// Package i18n resolves translations by locale and dotted key, loaded from
// nested YAML, JSON, or TOML locale documents.
//
// Nested documents are flattened into a single queryable mapping, lookups
// walk a locale fallback chain, and placeholders in the resolved text are
// interpolated at call time. The store is built once and immutable after,
// making it safe for concurrent use without synchronization.
//
// # Basic Usage
//
// Create an instance from in-memory documents or a locales directory and
// resolve keys:
//
//	inst, err := i18n.New(
//		i18n.WithDefaultLocale("en"),
//		i18n.WithDir(os.DirFS("locales")),
//	)
//
//	msg, err := inst.T("de", "messages.hello")
//
// File convention inside the locales root: either a top-level {locale}.yml
// (or .yaml/.json/.toml), or a {locale}/ directory with any number of
// documents. Documents merge in lexical path order and later paths win on
// conflicting keys; every overwrite is kept as a diagnostic:
//
//	for _, c := range inst.Conflicts() {
//		log.Printf("%s:%s redefined by %s", c.Locale, c.Key, c.NewSource)
//	}
//
// # Flattening
//
// Nested trees flatten to dot-joined keys in declaration order. Sequence
// elements are addressed by zero-based index:
//
//	messages:
//	  greetings:
//	    - "Hi"
//	    - "Hello"
//
// defines messages.greetings.0 and messages.greetings.1.
//
// # Interpolation
//
// Translation texts may contain %{name} placeholders, replaced from the
// arguments passed to T. A doubled % renders a literal %. Missing arguments
// and unterminated placeholders are errors; substituted values are never
// re-scanned for placeholders.
//
//	welcome: "Hello, %{name}!"
//
//	msg, err := inst.T("en", "welcome", i18n.M{"name": "World"})
//	// "Hello, World!"
//
// # Fallback
//
// A lookup for "zh-Hant-CN" tries zh-Hant-CN, zh-Hant, zh, then any
// configured fallback locales, then the default locale. When every locale in
// the chain misses, T returns "locale.key" so the gap stays visible, and the
// optional missing-key handler fires.
//
// # Export
//
// Export merges all locales into one table sorted by key and locale and
// renders CSV, JSON, YAML, or TOML, for handing translations to external
// tooling in a single file.
package i18n
