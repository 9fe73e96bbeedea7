package shaping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFaceRejectsGarbage(t *testing.T) {
	_, err := ParseFace([]byte("not a font file"))
	require.Error(t, err)
}

func TestTagPacksFourBytesBigEndian(t *testing.T) {
	got := tag("liga")
	want := uint32('l')<<24 | uint32('i')<<16 | uint32('g')<<8 | uint32('a')
	assert.Equal(t, want, uint32(got))
}

func TestDisabledLigatureTagsExcludesRequiredLigatures(t *testing.T) {
	for _, tg := range disabledLigatureTags {
		assert.NotEqual(t, "rlig", tg, "required ligatures must stay enabled")
	}
	assert.Contains(t, disabledLigatureTags, "liga")
	assert.Contains(t, disabledLigatureTags, "dlig")
	assert.Contains(t, disabledLigatureTags, "clig")
}

func TestHarfbuzzShaperRejectsForeignFace(t *testing.T) {
	h := &HarfbuzzShaper{}
	_, _, err := h.Shape(stubFace{}, Features{Ligatures: true}, "hi")
	assert.Error(t, err)
}

type stubFace struct{}

func (stubFace) UnitsPerEm() int32 { return 1000 }
