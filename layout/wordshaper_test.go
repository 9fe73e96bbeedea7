package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeset/burro/ast"
)

func TestFontUnitsToPoints(t *testing.T) {
	// 1000 units at 1000 upem, 12pt size -> 1:1 scale.
	assert.Equal(t, 12.0, fontUnitsToPoints(1000, 1000, 12.0))
	assert.Equal(t, 6.0, fontUnitsToPoints(500, 1000, 12.0))
	assert.Equal(t, 0.0, fontUnitsToPoints(0, 1000, 12.0))
}

func TestChunkIsSpace(t *testing.T) {
	assert.False(t, word("hi", 10, 12).IsSpace())
	assert.True(t, space(3, 12).IsSpace())
	assert.True(t, nbsp(3, 12).IsSpace())
}

func TestChunkWidthWordSumsGlyphs(t *testing.T) {
	w := Chunk{
		Kind: ChunkWord,
		Glyphs: []ShapedGlyph{
			{WidthPts: 5, DeltaX: 0},
			{WidthPts: 7, DeltaX: 5},
		},
	}
	assert.Equal(t, 12.0, w.Width())

	assert.Equal(t, 0.0, Chunk{Kind: ChunkWord}.Width())
	assert.Equal(t, 4.0, space(4, 12).Width())
}

func TestShapeUnitSpaceAndNonBreakingSpaceSkipFaceLookup(t *testing.T) {
	w := newWordShaper(newFakeFontMap(), fakeShaper{})

	chunk, err := w.shapeUnit(ast.Space{}, 1, 12, 0, 3, true)
	require.NoError(t, err)
	assert.Equal(t, ChunkSpace, chunk.Kind)
	assert.Equal(t, 3.0, chunk.WidthPts)

	chunk, err = w.shapeUnit(ast.NonBreakingSpace{}, 1, 12, 0, 3, true)
	require.NoError(t, err)
	assert.Equal(t, ChunkNonBreakingSpace, chunk.Kind)
}

func TestFaceUnmappedFontErrors(t *testing.T) {
	w := newWordShaper(newFakeFontMap(), fakeShaper{})

	_, err := w.face(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, Sentinel(ErrUnmappedFont)))
}

func TestFaceParseFailureWrapsError(t *testing.T) {
	fonts := newFakeFontMap()
	fonts.data[7] = []byte("not a real font file")
	w := newWordShaper(fonts, fakeShaper{})

	_, err := w.face(7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, Sentinel(ErrFaceParsing)))
}
