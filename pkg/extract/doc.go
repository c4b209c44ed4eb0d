// Package extract statically discovers the translation keys a codebase
// references and diffs them against the loaded translation store.
//
// Scanning is text based, not syntax-tree based, on purpose: only literal
// key arguments are discoverable, and computed keys are skipped with a
// warning. This intentionally lossy contract is what downstream tooling
// depends on: a key the scanner cannot find is also a key it cannot verify
// or minify.
//
// # Running an extraction
//
//	report, err := extract.Run(ctx, extract.Options{
//		SourceRoots: []string{"."},
//		LocaleRoots: []string{"locales"},
//		CallMarkers: []string{"T"},
//		BaseLocale:  "en",
//	})
//
// The report lists keys referenced in source but missing from the base
// locale (the actionable, build-breaking signal) and keys defined but never
// referenced (advisory). Both lists are sorted, and scanning parallelism is
// hidden behind a file-then-offset sort, so identical input always yields an
// identical report.
//
// # Minification
//
// With minification enabled each distinct key receives a short, stable code
// (a prefixed, truncated base62 digest; short keys stay verbatim). Codes are
// assigned in first-seen order over the sorted site list and are expected to
// be persisted as an additional locale document, so stability across runs is
// part of the contract.
package extract
