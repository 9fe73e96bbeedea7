// Package shaping defines the OpenType shaper interface the layout
// engine's Word Shaper consumes (spec.md §6 "Consumed shaper interface"),
// plus a default implementation backed by github.com/go-text/typesetting,
// the harfbuzz-compatible shaper already used by gioui.org/text and
// esimov/caire (_examples/gioui-gio/text/gotext.go,
// _examples/esimov-caire's vendored copy of the same library).
package shaping

import (
	"bytes"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Position is one glyph's shaped x/y advance, in font units.
type Position struct {
	XAdvance int32
	YAdvance int32
}

// GlyphInfo identifies the shaped glyph.
type GlyphInfo struct {
	GlyphID uint32
}

// Face is a parsed font face, opaque to the layout engine beyond its
// units-per-em.
type Face interface {
	UnitsPerEm() int32
}

// Features selects which OpenType substitution features the shaper
// should apply. Ligatures=false requests the standard/discretionary/
// contextual ligature tags be disabled while leaving required ligatures
// (rlig) untouched (spec.md §4.2).
type Features struct {
	Ligatures bool
}

// Shaper turns a UTF-8 string into per-glyph shaped positions and infos.
// The same face may be shaped repeatedly within one text block; results
// need not be cached, but face parsing (ParseFace) should be.
type Shaper interface {
	Shape(face Face, features Features, text string) (positions []Position, infos []GlyphInfo, err error)
}

// ParseFace parses raw font file bytes into a Face usable by the default
// Shaper and by wordshaper.go for units-per-em lookups. Grounded on
// _examples/gioui-gio/font/opentype/opentype.go's Parse, which wraps
// font.ParseTTF the same way.
func ParseFace(data []byte) (Face, error) {
	f, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font face: %w", err)
	}
	return goTextFace{f}, nil
}

type goTextFace struct{ face gotext.Face }

func (f goTextFace) UnitsPerEm() int32 { return int32(f.face.Upem()) }

// HarfbuzzShaper shapes text with go-text/typesetting's harfbuzz port.
// Scripts/languages other than Latin/English are untested; the spec
// excludes RTL and vertical scripts (§1 Non-goals), so direction is
// always left-to-right.
type HarfbuzzShaper struct {
	shaper shaping.HarfbuzzShaper
}

// disabledLigatureTags are the OpenType feature tags turned off when a
// Word is shaped with ligatures disabled (spec.md §4.2): standard,
// discretionary and contextual ligatures. Required ligatures (rlig) are
// left enabled, matching the spec's explicit carve-out.
var disabledLigatureTags = []string{"liga", "dlig", "clig"}

func tag(s string) shaping.Tag {
	var b [4]byte
	copy(b[:], s)
	return shaping.Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (h *HarfbuzzShaper) Shape(face Face, features Features, text string) ([]Position, []GlyphInfo, error) {
	gf, ok := face.(goTextFace)
	if !ok {
		return nil, nil, fmt.Errorf("shaping: face not produced by ParseFace")
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:     runes,
		RunStart: 0,
		RunEnd:   len(runes),
		Face:     gf.face,
		// Shaping at a size equal to the face's own units-per-em makes the
		// shaper's scale factor 1, so the returned fixed-point advances are
		// numerically the raw font units font_units_to_points (spec.md
		// §4.2) expects to scale by pt_size/upem itself.
		Size:     fixed.I(int(gf.face.Upem())),
		Script:   language.Latin,
		Language: language.NewLanguage("en"),
	}

	if !features.Ligatures {
		var feats []shaping.FontFeature
		for _, t := range disabledLigatureTags {
			feats = append(feats, shaping.FontFeature{Tag: tag(t), Value: 0})
		}
		input.FontFeatures = feats
	}

	out := h.shaper.Shape(input)

	positions := make([]Position, len(out.Glyphs))
	infos := make([]GlyphInfo, len(out.Glyphs))
	for i, g := range out.Glyphs {
		positions[i] = Position{
			XAdvance: int32(g.XAdvance.Round()),
			YAdvance: int32(g.YAdvance.Round()),
		}
		infos[i] = GlyphInfo{GlyphID: uint32(g.GlyphID)}
	}

	return positions, infos, nil
}
