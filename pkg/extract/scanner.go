package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Site identifies a call site within the scanned sources. Offset is the byte
// offset of the key literal, used as the deterministic tiebreaker when sites
// from parallel scans are merged.
type Site struct {
	File   string
	Line   int
	Offset int
}

func (s Site) String() string {
	return s.File + ":" + strconv.Itoa(s.Line)
}

// Key is a translation key literal found at a call site. FullKey joins the
// compile-time namespace prefix, when one was configured, with the literal.
type Key struct {
	Key       string
	Namespace string
	Site      Site
}

// FullKey returns the key as it appears in the translation store.
func (k Key) FullKey() string {
	if k.Namespace == "" {
		return k.Key
	}
	return k.Namespace + "." + k.Key
}

// Warning is a non-fatal finding, e.g. a computed key argument that cannot
// be resolved statically.
type Warning struct {
	Site   Site
	Reason string
}

// Scanner finds translation-request call sites in source text. Matching is
// token based, not syntax-tree based: only literal key arguments are
// discoverable, which is the contract downstream tooling depends on. A
// marker matches when it appears at an identifier boundary and is
// immediately followed by an opening parenthesis.
type Scanner struct {
	markers   []string
	namespace string
}

// NewScanner creates a scanner for the given call markers (the literal names
// of the translation-request invocations, e.g. "T") and an optional
// compile-time namespace recorded on every extracted key.
func NewScanner(markers []string, namespace string) (*Scanner, error) {
	if len(markers) == 0 {
		return nil, ErrNoCallMarkers
	}
	for _, m := range markers {
		if m == "" {
			return nil, fmt.Errorf("%w: empty", ErrInvalidMarker)
		}
	}
	return &Scanner{
		markers:   append([]string(nil), markers...),
		namespace: namespace,
	}, nil
}

// Scan extracts the key literals of every marker call site in src. Call
// sites whose first argument is not a string literal are skipped with a
// DynamicKeyIgnored warning. Results are ordered by byte offset.
func (s *Scanner) Scan(path, src string) ([]Key, []Warning) {
	var keys []Key
	var warnings []Warning

	lines := newLineIndex(src)

	for _, marker := range s.markers {
		for offset := 0; ; {
			rel := strings.Index(src[offset:], marker)
			if rel < 0 {
				break
			}
			at := offset + rel
			offset = at + len(marker)

			argPos, ok := matchCallSite(src, at, marker)
			if !ok {
				continue
			}

			site := Site{File: path, Line: lines.lineAt(argPos), Offset: argPos}

			key, ok := readStringLiteral(src, argPos)
			if !ok {
				warnings = append(warnings, Warning{
					Site:   site,
					Reason: fmt.Sprintf("DynamicKeyIgnored: non-literal key argument to %s", marker),
				})
				continue
			}

			keys = append(keys, Key{Key: key, Namespace: s.namespace, Site: site})
		}
	}

	// Per-marker passes find sites out of document order; restore it.
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Site.Offset < keys[j].Site.Offset
	})
	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Site.Offset < warnings[j].Site.Offset
	})

	return keys, warnings
}

// matchCallSite verifies an identifier-boundary marker match followed by an
// opening parenthesis and returns the position of the first argument.
func matchCallSite(src string, at int, marker string) (int, bool) {
	if at > 0 && isIdentByte(src[at-1]) {
		return 0, false
	}
	i := at + len(marker)
	if i >= len(src) || src[i] != '(' {
		return 0, false
	}
	i++
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	if i >= len(src) {
		return 0, false
	}
	return i, true
}

// readStringLiteral reads a double-quoted or backtick-quoted literal
// starting at pos. Double-quoted literals interpret the common backslash
// escapes (\n, \t, \r, \", \\); any other escaped byte passes through
// verbatim. The returned key is the unescaped text.
func readStringLiteral(src string, pos int) (string, bool) {
	if pos >= len(src) {
		return "", false
	}

	switch src[pos] {
	case '"':
		var b strings.Builder
		for i := pos + 1; i < len(src); i++ {
			switch src[i] {
			case '\\':
				if i+1 < len(src) {
					b.WriteByte(unescapeByte(src[i+1]))
					i++
				}
			case '"':
				return b.String(), true
			case '\n':
				return "", false
			default:
				b.WriteByte(src[i])
			}
		}
		return "", false
	case '`':
		end := strings.IndexByte(src[pos+1:], '`')
		if end < 0 {
			return "", false
		}
		return src[pos+1 : pos+1+end], true
	default:
		return "", false
	}
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (l lineIndex) lineAt(offset int) int {
	return sort.Search(len(l), func(i int) bool { return l[i] > offset })
}
