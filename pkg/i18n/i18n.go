package i18n

import (
	"fmt"
	"io/fs"
	"maps"
)

// I18n resolves translations by locale and key with fallback and
// interpolation. It is immutable after creation, making it safe for
// concurrent use.
type I18n struct {
	store             *Store
	interp            *Interpolator
	missingKeyHandler func(locale, key string)
	defaultLocale     string
	fallbackLocales   []string
	documents         []Document
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options. All configuration
// happens during construction; documents are merged in option order.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{defaultLocale: "en"}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLocale == "" {
		return nil, ErrEmptyLocale
	}

	if i.interp == nil {
		interp, err := NewInterpolator(DefaultOpenMarker, DefaultCloseMarker)
		if err != nil {
			return nil, err
		}
		i.interp = interp
	}

	store, err := Load(i.documents)
	if err != nil {
		return nil, err
	}
	i.store = store
	i.documents = nil

	return i, nil
}

// WithDefaultLocale sets the locale that terminates every fallback chain.
func WithDefaultLocale(locale string) Option {
	return func(i *I18n) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		i.defaultLocale = locale
		return nil
	}
}

// WithFallbackLocales sets the configured fallbacks tried between the
// requested locale and the default one.
func WithFallbackLocales(locales ...string) Option {
	return func(i *I18n) error {
		i.fallbackLocales = append(i.fallbackLocales, locales...)
		return nil
	}
}

// WithMarkers sets the placeholder marker pair, default %{name}.
func WithMarkers(open, close string) Option {
	return func(i *I18n) error {
		interp, err := NewInterpolator(open, close)
		if err != nil {
			return err
		}
		i.interp = interp
		return nil
	}
}

// WithDocuments queues locale documents for loading, in the given order.
func WithDocuments(docs ...Document) Option {
	return func(i *I18n) error {
		i.documents = append(i.documents, docs...)
		return nil
	}
}

// WithDir queues every locale document found in an fs.FS, in lexical path
// order. See LoadDir for the recognized layouts.
func WithDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		docs, err := LoadDir(fsys)
		if err != nil {
			return err
		}
		i.documents = append(i.documents, docs...)
		return nil
	}
}

// WithConfig applies default locale, fallbacks, and markers from a Config.
func WithConfig(cfg Config) Option {
	return func(i *I18n) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		i.defaultLocale = cfg.DefaultLocale
		i.fallbackLocales = append(i.fallbackLocales, cfg.FallbackLocales...)
		interp, err := NewInterpolator(cfg.PlaceholderOpen, cfg.PlaceholderClose)
		if err != nil {
			return err
		}
		i.interp = interp
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is not found in any
// locale of the fallback chain. Useful for monitoring translation gaps.
func WithMissingKeyHandler(handler func(locale, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T resolves a key for a locale through the fallback chain and interpolates
// the placeholders. A full miss is not an error: the returned text echoes
// "locale.key" so it stays distinguishable from a genuinely blank
// translation. Interpolation failures are returned to the caller, never
// papered over with the raw template.
func (i *I18n) T(locale, key string, args ...M) (string, error) {
	chain := FallbackChain(locale, i.fallbackLocales, i.defaultLocale)
	template, ok := i.store.LookupWithFallback(key, chain)
	if !ok {
		if i.missingKeyHandler != nil {
			i.missingKeyHandler(locale, key)
		}
		if locale == "" {
			return key, nil
		}
		return locale + "." + key, nil
	}
	return i.interp.Render(template, mergeArgs(args))
}

// Store exposes the underlying immutable store.
func (i *I18n) Store() *Store {
	return i.store
}

// DefaultLocale returns the locale that terminates every fallback chain.
func (i *I18n) DefaultLocale() string {
	return i.defaultLocale
}

// Conflicts returns the merge overwrites recorded while loading.
func (i *I18n) Conflicts() []Conflict {
	return i.store.Conflicts()
}

func mergeArgs(args []M) M {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	}
	merged := make(M)
	for _, a := range args {
		maps.Copy(merged, a)
	}
	return merged
}
