package i18n

import "strings"

// FallbackChain builds the ordered locale list tried on lookup: the
// requested locale, its progressively shortened tags per the RFC 4647 lookup
// scheme (zh-Hant-CN → zh-Hant → zh, trimming dangling -x private-use
// markers), the configured fallbacks, and finally the default locale.
// Duplicates and empty entries are dropped, first occurrence wins.
func FallbackChain(locale string, fallbacks []string, defaultLocale string) []string {
	chain := make([]string, 0, len(fallbacks)+4)
	seen := make(map[string]struct{}, len(fallbacks)+4)

	push := func(l string) {
		if l == "" {
			return
		}
		if _, ok := seen[l]; ok {
			return
		}
		seen[l] = struct{}{}
		chain = append(chain, l)
	}

	push(locale)
	for cur := locale; ; {
		i := strings.LastIndexByte(cur, '-')
		if i <= 0 {
			break
		}
		cur = strings.TrimSuffix(cur[:i], "-x")
		push(cur)
	}

	for _, l := range fallbacks {
		push(l)
	}
	push(defaultLocale)

	return chain
}
