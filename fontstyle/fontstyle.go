// Package fontstyle defines the font style bitmask consumed by the layout
// engine's font lookups. It is the Go counterpart of
// _examples/original_source/src/fonts.rs's bitflags!-derived Font type: a
// plain bitmask (rather than a bitset value or an enum-of-variants) so
// that "is this bit already set" and "toggle this bit on entry, off on
// exit" — the nested style-wrapper idiom in flow.Controller — stay a
// single AND/OR/AND-NOT instead of a type switch. Three independent bits is
// too small a domain to reach for a general bitset library (e.g.
// kofi-q-scribe-go's github.com/bits-and-blooms/bitset); see DESIGN.md.
package fontstyle

// Style is a bitmask of independent style flags. The zero value is Roman.
type Style uint8

const (
	Roman     Style = 0
	Bold      Style = 1 << 0
	Italic    Style = 1 << 1
	Smallcaps Style = 1 << 2
)

// Has reports whether all bits of flag are set in s.
func (s Style) Has(flag Style) bool { return s&flag == flag }

// With returns s with flag set.
func (s Style) With(flag Style) Style { return s | flag }

// Without returns s with flag cleared.
func (s Style) Without(flag Style) Style { return s &^ flag }

// FontNum returns the low 16 bits used as the font-map lookup key's style
// component, per spec.md §6.
func (s Style) FontNum() uint16 { return uint16(s) }

// Name returns the canonical lowercase, underscore-joined name for s, used
// as the font-map configuration key (fontmap.rs's string-keyed Fonts
// struct fields).
func (s Style) Name() string {
	switch {
	case s.Has(Bold) && s.Has(Italic) && s.Has(Smallcaps):
		return "bold_italic_smallcaps"
	case s.Has(Bold) && s.Has(Smallcaps):
		return "bold_smallcaps"
	case s.Has(Italic) && s.Has(Smallcaps):
		return "italic_smallcaps"
	case s.Has(Bold) && s.Has(Italic):
		return "bold_italic"
	case s.Has(Bold):
		return "bold"
	case s.Has(Italic):
		return "italic"
	case s.Has(Smallcaps):
		return "smallcaps"
	default:
		return "roman"
	}
}

// FromName parses a font-map style key back into a Style, defaulting to
// Roman for an unrecognized name (matching fonts.rs's From<&str> impl,
// which falls back to ROMAN rather than erroring).
func FromName(name string) Style {
	switch name {
	case "bold":
		return Bold
	case "italic":
		return Italic
	case "smallcaps":
		return Smallcaps
	case "bold_italic":
		return Bold | Italic
	case "bold_smallcaps":
		return Bold | Smallcaps
	case "italic_smallcaps":
		return Italic | Smallcaps
	case "bold_italic_smallcaps":
		return Bold | Italic | Smallcaps
	default:
		return Roman
	}
}
