package pdfwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeset/burro/fontstyle"
	"github.com/typeset/burro/layout"
)

type stubFontMap struct {
	data map[uint32][]byte
}

func (s stubFontMap) FontID(family string, style fontstyle.Style) uint32 {
	return uint32(len(family))<<16 | uint32(style.FontNum())
}

func (s stubFontMap) Resolve(fontID uint32) ([]byte, bool) {
	data, ok := s.data[fontID]
	return data, ok
}

func onePageLayout() *layout.Layout {
	return &layout.Layout{
		Pages: []layout.Page{
			{
				Width:  612,
				Height: 792,
				Boxes: []layout.BurroBox{
					{Kind: layout.BoxGlyph, Pos: layout.Position{X: 72, Y: 700}, GlyphID: 5, FontID: 1, Pts: 12},
					{Kind: layout.BoxRule, StartPos: layout.Position{X: 72, Y: 650}, EndPos: layout.Position{X: 300, Y: 650}, Weight: 1},
				},
			},
		},
	}
}

func TestWriteProducesWellFormedPDFHeaderAndTrailer(t *testing.T) {
	l := onePageLayout()
	fonts := stubFontMap{data: map[uint32][]byte{1: []byte("fake-opentype-bytes")}}

	var buf bytes.Buffer
	require.NoError(t, (DefaultWriter{}).Write(&buf, l, fonts))

	out := buf.String()
	assert.Contains(t, out, "%PDF-1.4")
	assert.Contains(t, out, "%%EOF")
	assert.Contains(t, out, "/Type /Catalog")
	assert.Contains(t, out, "/Type /Pages")
	assert.Contains(t, out, "trailer")
	assert.Contains(t, out, "xref")
}

func TestWriteErrorsOnUnresolvedFont(t *testing.T) {
	l := onePageLayout()
	fonts := stubFontMap{data: map[uint32][]byte{}}

	var buf bytes.Buffer
	err := (DefaultWriter{}).Write(&buf, l, fonts)
	assert.Error(t, err)
}

func TestUsedFontIDsIsSortedAndDistinct(t *testing.T) {
	l := &layout.Layout{Pages: []layout.Page{{Boxes: []layout.BurroBox{
		{Kind: layout.BoxGlyph, FontID: 3},
		{Kind: layout.BoxGlyph, FontID: 1},
		{Kind: layout.BoxGlyph, FontID: 3},
		{Kind: layout.BoxRule, FontID: 99},
	}}}}

	assert.Equal(t, []uint32{1, 3}, usedFontIDs(l))
}

func TestEmbedFontChainsFontFileDescriptorAndType0(t *testing.T) {
	d := newDocument()
	type0Num, err := d.embedFont(1, []byte("fake-opentype-bytes"))
	require.NoError(t, err)

	assert.Len(t, d.objects, 4, "FontFile3 + FontDescriptor + CIDFontType2 + Type0")
	assert.Equal(t, 4, type0Num)
	assert.Contains(t, string(d.objects[3].body), "/Subtype /Type0")
	assert.Contains(t, string(d.objects[2].body), "/Subtype /CIDFontType2")
	assert.Contains(t, string(d.objects[1].body), "/Type /FontDescriptor")
	assert.Contains(t, string(d.objects[0].body), "/Subtype /OpenType")
}
