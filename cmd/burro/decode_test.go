package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/fontstyle"
)

func TestDecodeDocumentParsesConfigAndNodes(t *testing.T) {
	raw := []byte(`{
		"config": {
			"margins": 36,
			"pt_size": 10,
			"alignment": "right",
			"font": "bold",
			"tabs": {"label": {"name": "label", "indent_pts": 0, "direction": "left"}},
			"tab_lists": {"invoice": ["label"]}
		},
		"nodes": [
			{"type": "paragraph", "blocks": [
				{"type": "text", "units": [{"type": "str", "value": "Hello"}, {"type": "space"}, {"type": "str", "value": "world"}]}
			]},
			{"type": "page_break"}
		]
	}`)

	doc, err := decodeDocument(raw)
	require.NoError(t, err)

	require.NotNil(t, doc.Config.Margins)
	assert.Equal(t, 36.0, *doc.Config.Margins)
	require.NotNil(t, doc.Config.Font)
	assert.Equal(t, fontstyle.Bold, *doc.Config.Font)
	require.NotNil(t, doc.Config.Alignment)
	assert.Equal(t, ast.Right, *doc.Config.Alignment)
	assert.Contains(t, doc.Config.Tabs, "label")
	assert.Equal(t, []string{"label"}, doc.Config.TabLists["invoice"])

	require.Len(t, doc.Nodes, 2)
	p, ok := doc.Nodes[0].(ast.Paragraph)
	require.True(t, ok)
	require.Len(t, p.Blocks, 1)
	text, ok := p.Blocks[0].(ast.Text)
	require.True(t, ok)
	require.Len(t, text.Units, 3)
	assert.Equal(t, ast.Str{Value: "Hello"}, text.Units[0])
	assert.Equal(t, ast.Space{}, text.Units[1])

	_, ok = doc.Nodes[1].(ast.Command)
	assert.True(t, ok)
}

func TestDecodeStyleBlockNestedStyles(t *testing.T) {
	raw := []byte(`{"type": "bold", "blocks": [
		{"type": "italic", "blocks": [
			{"type": "text", "units": [{"type": "str", "value": "x"}]}
		]}
	]}`)

	b, err := decodeStyleBlock(raw)
	require.NoError(t, err)

	bold, ok := b.(ast.Bold)
	require.True(t, ok)
	require.Len(t, bold.Blocks, 1)
	italic, ok := bold.Blocks[0].(ast.Italic)
	require.True(t, ok)
	require.Len(t, italic.Blocks, 1)
}

func TestDecodeStyleBlockQuoteVariants(t *testing.T) {
	for _, typ := range []string{"quote", "open_quote"} {
		raw := []byte(`{"type": "` + typ + `", "blocks": []}`)
		b, err := decodeStyleBlock(raw)
		require.NoError(t, err)
		switch typ {
		case "quote":
			_, ok := b.(ast.Quote)
			assert.True(t, ok)
		case "open_quote":
			_, ok := b.(ast.OpenQuote)
			assert.True(t, ok)
		}
	}
}

func TestDecodeStyleBlockFallsBackToCommand(t *testing.T) {
	raw := []byte(`{"type": "vspace", "pts": 12}`)
	b, err := decodeStyleBlock(raw)
	require.NoError(t, err)

	cb, ok := b.(ast.CommandBlock)
	require.True(t, ok)
	vs, ok := cb.Value.(ast.VSpace)
	require.True(t, ok)
	assert.Equal(t, 12.0, vs.Pts)
}

func TestDecodeTextUnitVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want ast.TextUnit
	}{
		{`{"type": "space"}`, ast.Space{}},
		{`{"type": "nbsp"}`, ast.NonBreakingSpace{}},
		{`{"type": "str", "value": "hi"}`, ast.Str{Value: "hi"}},
	}
	for _, c := range cases {
		got, err := decodeTextUnit([]byte(c.raw))
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestDecodeAlignmentAndTabDirection(t *testing.T) {
	assert.Equal(t, ast.Right, decodeAlignment("right"))
	assert.Equal(t, ast.Center, decodeAlignment("center"))
	assert.Equal(t, ast.Left, decodeAlignment("left"))
	assert.Equal(t, ast.Justify, decodeAlignment("justify"))
	assert.Equal(t, ast.Justify, decodeAlignment("anything-else"))

	assert.Equal(t, ast.TabRight, decodeTabDirection("right"))
	assert.Equal(t, ast.TabCenter, decodeTabDirection("center"))
	assert.Equal(t, ast.TabLeft, decodeTabDirection("left"))
}
