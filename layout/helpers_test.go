package layout

import (
	"github.com/typeset/burro/fontstyle"
	"github.com/typeset/burro/shaping"
)

// fakeFontMap is a minimal fontmap.FontMap for tests that never need a real
// font file on disk: every (family, style) pair maps to a stable id and
// Resolve reports no data unless bytes were registered for that id in data,
// so callers that exercise face parsing must register bytes explicitly.
type fakeFontMap struct {
	data map[uint32][]byte
}

func newFakeFontMap() *fakeFontMap { return &fakeFontMap{data: map[uint32][]byte{}} }

func (f *fakeFontMap) FontID(family string, style fontstyle.Style) uint32 {
	return uint32(len(family))<<16 | uint32(style.FontNum())
}

func (f *fakeFontMap) Resolve(fontID uint32) ([]byte, bool) {
	data, ok := f.data[fontID]
	return data, ok
}

// fakeShaper is never exercised by the tests below (they build Chunks by
// hand rather than going through the Word Shaper), but New requires one.
type fakeShaper struct{}

func (fakeShaper) Shape(face shaping.Face, features shaping.Features, text string) ([]shaping.Position, []shaping.GlyphInfo, error) {
	return nil, nil, nil
}

func newTestController() *Controller {
	return New(newFakeFontMap(), fakeShaper{}, nil)
}

// word builds a ChunkWord with a single synthetic glyph of the given width,
// for line-builder/emitter tests that care about widths, not real glyphs.
func word(source string, width, ptSize float64) Chunk {
	return Chunk{
		Kind:   ChunkWord,
		PtSize: ptSize,
		Source: source,
		Glyphs: []ShapedGlyph{{WidthPts: width, DeltaX: 0, PtSize: ptSize}},
	}
}

func space(width, ptSize float64) Chunk {
	return Chunk{Kind: ChunkSpace, PtSize: ptSize, WidthPts: width}
}

func nbsp(width, ptSize float64) Chunk {
	return Chunk{Kind: ChunkNonBreakingSpace, PtSize: ptSize, WidthPts: width}
}
