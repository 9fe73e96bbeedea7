package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetArgKinds(t *testing.T) {
	explicit := Explicit(12.0)
	assert.Equal(t, "explicit", explicit.Kind())
	assert.False(t, explicit.IsReset())
	assert.False(t, explicit.IsRelative())
	assert.Equal(t, 12.0, explicit.Value())

	relative := Relative(2.0)
	assert.Equal(t, "relative", relative.Kind())
	assert.True(t, relative.IsRelative())
	assert.Equal(t, 2.0, relative.Value())

	reset := Reset[float64]()
	assert.Equal(t, "reset", reset.Kind())
	assert.True(t, reset.IsReset())
	assert.Equal(t, 0.0, reset.Value())
}

func TestTextUnitIsSpace(t *testing.T) {
	assert.False(t, Str{Value: "hi"}.IsSpace())
	assert.True(t, Space{}.IsSpace())
	assert.True(t, NonBreakingSpace{}.IsSpace())
}

func TestNodeAndStyleBlockMarkers(t *testing.T) {
	var n Node = Paragraph{Blocks: []StyleBlock{Text{Units: []TextUnit{Str{Value: "a"}}}}}
	p, ok := n.(Paragraph)
	require.True(t, ok)
	require.Len(t, p.Blocks, 1)

	var b StyleBlock = Bold{Blocks: []StyleBlock{Text{Units: nil}}}
	_, ok = b.(Bold)
	assert.True(t, ok)
}

func TestCommandValueVariants(t *testing.T) {
	var cv CommandValue = Columns{Count: 2, Gutter: 18}
	cols, ok := cv.(Columns)
	require.True(t, ok)
	assert.Equal(t, 2, cols.Count)
	assert.Equal(t, 18.0, cols.Gutter)
}
