package layout

import (
	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/common"
	"github.com/typeset/burro/fontmap"
	"github.com/typeset/burro/shaping"
)

// ChunkKind distinguishes a shaped Word from a Space/NonBreakingSpace
// chunk (spec.md §3 "Chunk").
type ChunkKind int

const (
	ChunkWord ChunkKind = iota
	ChunkSpace
	ChunkNonBreakingSpace
)

// ShapedGlyph is one glyph of a shaped Word chunk.
type ShapedGlyph struct {
	GlyphID uint32
	FontID  uint32
	PtSize  float64
	// WidthPts is this glyph's own advance width, in points, including
	// letter_space (spec.md §9 open question (e): letter_space is added
	// unconditionally, including to the chunk's last glyph).
	WidthPts float64
	// DeltaX is the cumulative x offset of this glyph from the start of
	// the chunk (sum of the widths of the glyphs before this one).
	DeltaX float64
	DeltaY float64
}

// Chunk is one measured, shaped text-unit (spec.md §3, §4.2).
type Chunk struct {
	Kind   ChunkKind
	PtSize float64

	// Word fields.
	Glyphs []ShapedGlyph
	Source string

	// Space/NonBreakingSpace field.
	WidthPts float64
}

// IsSpace reports whether c is a Space or NonBreakingSpace chunk.
func (c Chunk) IsSpace() bool { return c.Kind != ChunkWord }

// Width is the chunk's total advance: for a Word, the last glyph's
// DeltaX+WidthPts (spec.md §4.2); for a space, WidthPts.
func (c Chunk) Width() float64 {
	if c.Kind != ChunkWord {
		return c.WidthPts
	}
	if len(c.Glyphs) == 0 {
		return 0
	}
	last := c.Glyphs[len(c.Glyphs)-1]
	return last.DeltaX + last.WidthPts
}

func fontUnitsToPoints(units int32, upem int32, ptSize float64) float64 {
	return float64(units) * ptSize / float64(upem)
}

// wordShaper turns TextUnits into Chunks, consulting a fontmap.FontMap
// for face bytes and a shaping.Shaper for glyph positions (spec.md §4.2
// "Word Shaper"). Parsed faces are cached per font id within a build;
// the underlying shaping.Shaper may be invoked repeatedly without its
// own cache.
type wordShaper struct {
	fonts  fontmap.FontMap
	shaper shaping.Shaper
	faces  map[uint32]shaping.Face
}

func newWordShaper(fonts fontmap.FontMap, shaper shaping.Shaper) *wordShaper {
	return &wordShaper{fonts: fonts, shaper: shaper, faces: make(map[uint32]shaping.Face)}
}

func (w *wordShaper) face(fontID uint32) (shaping.Face, error) {
	if f, ok := w.faces[fontID]; ok {
		return f, nil
	}
	data, ok := w.fonts.Resolve(fontID)
	if !ok {
		return nil, Sentinel(ErrUnmappedFont)
	}
	face, err := shaping.ParseFace(data)
	if err != nil {
		return nil, wrapErr(ErrFaceParsing, err)
	}
	common.Log.Debug("word shaper: parsed and cached face for font id %d", fontID)
	w.faces[fontID] = face
	return face, nil
}

// shapeUnit builds one Chunk from a TextUnit (spec.md §4.2).
func (w *wordShaper) shapeUnit(unit ast.TextUnit, fontID uint32, ptSize, letterSpace, spaceWidth float64, ligatures bool) (Chunk, error) {
	switch u := unit.(type) {
	case ast.Str:
		return w.shapeStr(u.Value, fontID, ptSize, letterSpace, ligatures)
	case ast.Space:
		return Chunk{Kind: ChunkSpace, PtSize: ptSize, WidthPts: spaceWidth}, nil
	case ast.NonBreakingSpace:
		return Chunk{Kind: ChunkNonBreakingSpace, PtSize: ptSize, WidthPts: spaceWidth}, nil
	default:
		return Chunk{}, newErr(ErrUnmappedFont, "unrecognized text unit")
	}
}

func (w *wordShaper) shapeStr(s string, fontID uint32, ptSize, letterSpace float64, ligatures bool) (Chunk, error) {
	face, err := w.face(fontID)
	if err != nil {
		return Chunk{}, err
	}

	positions, infos, err := w.shaper.Shape(face, shaping.Features{Ligatures: ligatures}, s)
	if err != nil {
		return Chunk{}, wrapErr(ErrFaceParsing, err)
	}

	upem := face.UnitsPerEm()
	glyphs := make([]ShapedGlyph, len(positions))
	var cursor float64
	for i := range positions {
		width := fontUnitsToPoints(positions[i].XAdvance, upem, ptSize) + letterSpace
		deltaY := fontUnitsToPoints(positions[i].YAdvance, upem, ptSize)
		glyphs[i] = ShapedGlyph{
			GlyphID:  infos[i].GlyphID,
			FontID:   fontID,
			PtSize:   ptSize,
			WidthPts: width,
			DeltaX:   cursor,
			DeltaY:   deltaY,
		}
		cursor += width
	}

	return Chunk{Kind: ChunkWord, PtSize: ptSize, Glyphs: glyphs, Source: s}, nil
}
