// Package layout is the batch layout engine: it walks a parsed ast.Document
// and a font/shaper/hyphenation collaborator set and produces an ordered
// Layout of absolutely-positioned glyph and rule boxes (spec.md §2-§5).
// It is grounded throughout on
// _examples/original_source/src/layout.rs's LayoutBuilder, generalized to
// the spec's larger command set (tabs, columns, ligatures, letter
// spacing) the way gio/caire generalize a single-face layout loop to a
// multi-run one.
package layout

// Position is a point in PDF coordinate space: origin lower-left, units
// in points (spec.md §6).
type Position struct {
	X, Y float64
}

// BurroBox is one positioned output primitive. Exactly one of Glyph or
// Rule fields is meaningful, selected by Kind.
type BurroBox struct {
	Kind BoxKind

	// Glyph fields.
	Pos     Position
	GlyphID uint32
	FontID  uint32
	Pts     float64

	// Rule fields.
	StartPos Position
	EndPos   Position
	Weight   float64
}

// BoxKind distinguishes the two BurroBox variants.
type BoxKind int

const (
	BoxGlyph BoxKind = iota
	BoxRule
)

// Page is one paginated sheet: its own width/height (pages may differ in
// size if PageWidth/PageHeight changed mid-document) and its boxes in
// emission order.
type Page struct {
	Width, Height float64
	Boxes         []BurroBox
}

// Layout is the complete output of a build: pages in document order.
type Layout struct {
	Pages []Page
}
