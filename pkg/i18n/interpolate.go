package i18n

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default placeholder markers: %{name}.
const (
	DefaultOpenMarker  = "%{"
	DefaultCloseMarker = "}"
)

// M is a placeholder arguments map. Values are rendered with fmt's %v verb.
type M map[string]any

// Interpolator substitutes named placeholders in translation templates.
// The zero value is not usable; construct with NewInterpolator.
type Interpolator struct {
	open  string
	close string
	// escape is the open marker's lead rune doubled; it emits one literal
	// lead rune without starting a placeholder ("100%%" renders "100%").
	escape string
	lead   string
}

// NewInterpolator creates an interpolator for the given marker pair.
// Empty markers are passed as "" to keep the defaults.
func NewInterpolator(open, close string) (*Interpolator, error) {
	if open == "" {
		open = DefaultOpenMarker
	}
	if close == "" {
		close = DefaultCloseMarker
	}
	lead, size := utf8.DecodeRuneInString(open)
	if lead == utf8.RuneError && size <= 1 {
		return nil, ErrInvalidMarkers
	}
	return &Interpolator{
		open:   open,
		close:  close,
		escape: string(lead) + string(lead),
		lead:   string(lead),
	}, nil
}

// Render scans the template once left to right, replacing each
// open-marker…close-marker span with the argument named between the markers.
// A missing argument fails with ErrMissingArg, an open marker without a
// close fails with ErrUnterminated. Substituted text is inserted verbatim
// and never re-scanned, so argument values cannot inject placeholders.
func (in *Interpolator) Render(template string, args M) (string, error) {
	if !strings.Contains(template, in.lead) {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		rest := template[i:]

		switch {
		case strings.HasPrefix(rest, in.open):
			end := strings.Index(rest[len(in.open):], in.close)
			if end < 0 {
				return "", fmt.Errorf("%w at offset %d", ErrUnterminated, i)
			}
			name := rest[len(in.open) : len(in.open)+end]
			val, ok := args[name]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingArg, name)
			}
			fmt.Fprintf(&b, "%v", val)
			i += len(in.open) + end + len(in.close)
		case strings.HasPrefix(rest, in.escape):
			b.WriteString(in.lead)
			i += len(in.escape)
		default:
			b.WriteByte(template[i])
			i++
		}
	}

	return b.String(), nil
}

// Markers returns the configured open and close markers.
func (in *Interpolator) Markers() (open, close string) {
	return in.open, in.close
}
