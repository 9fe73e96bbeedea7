package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/fontstyle"
)

func TestDecodeResetArgKinds(t *testing.T) {
	explicit, err := decodeResetArg[float64](json.RawMessage(`{"kind": "explicit", "value": 12}`))
	require.NoError(t, err)
	assert.Equal(t, 12.0, explicit.Value())

	relative, err := decodeResetArg[float64](json.RawMessage(`{"kind": "relative", "value": 2}`))
	require.NoError(t, err)
	assert.True(t, relative.IsRelative())
	assert.Equal(t, 2.0, relative.Value())

	reset, err := decodeResetArg[float64](json.RawMessage(`{"kind": "reset"}`))
	require.NoError(t, err)
	assert.True(t, reset.IsReset())

	defaulted, err := decodeResetArg[float64](nil)
	require.NoError(t, err)
	assert.Equal(t, "explicit", defaulted.Kind())
}

func TestDecodeResetArgUnknownKindErrors(t *testing.T) {
	_, err := decodeResetArg[float64](json.RawMessage(`{"kind": "bogus", "value": 1}`))
	assert.Error(t, err)
}

func TestDecodeAlignmentArgRejectsRelative(t *testing.T) {
	_, err := decodeAlignmentArg(json.RawMessage(`{"kind": "relative", "value": "left"}`))
	assert.Error(t, err)

	arg, err := decodeAlignmentArg(json.RawMessage(`{"kind": "explicit", "value": "center"}`))
	require.NoError(t, err)
	assert.Equal(t, ast.Center, arg.Value())
}

func TestDecodeFontArgRejectsRelative(t *testing.T) {
	_, err := decodeFontArg(json.RawMessage(`{"kind": "relative", "value": "bold"}`))
	assert.Error(t, err)

	arg, err := decodeFontArg(json.RawMessage(`{"kind": "explicit", "value": "italic"}`))
	require.NoError(t, err)
	assert.Equal(t, fontstyle.Italic, arg.Value())
}

func TestDecodeCommandValueCoversEveryNonResetArgCommand(t *testing.T) {
	cases := []struct {
		raw  string
		want ast.CommandValue
	}{
		{`{"type": "page_break"}`, ast.PageBreak{}},
		{`{"type": "break"}`, ast.Break{}},
		{`{"type": "spread"}`, ast.Spread{}},
		{`{"type": "vspace", "pts": 5}`, ast.VSpace{Pts: 5}},
		{`{"type": "columns", "count": 3, "gutter": 12}`, ast.Columns{Count: 3, Gutter: 12}},
		{`{"type": "column_break"}`, ast.ColumnBreak{}},
		{`{"type": "next_tab"}`, ast.NextTab{}},
		{`{"type": "previous_tab"}`, ast.PreviousTab{}},
		{`{"type": "quit_tabs"}`, ast.QuitTabs{}},
		{`{"type": "load_tabs", "name": "invoice"}`, ast.LoadTabs{Name: "invoice"}},
		{`{"type": "tab", "name": "price"}`, ast.TabCmd{Name: "price"}},
		{`{"type": "tab_list", "name": "invoice", "names": ["a", "b"]}`, ast.TabList{Name: "invoice", Names: []string{"a", "b"}}},
		{
			`{"type": "rule", "rule": {"width": 0.5, "indent": 2, "weight": 1}}`,
			ast.Rule{Opts: ast.RuleOpts{Width: 0.5, Indent: 2, Weight: 1}},
		},
		{
			`{"type": "define_tab", "tab": {"name": "price", "indent_pts": 200, "direction": "right", "quad_fill": false, "length_pts": 0}}`,
			ast.DefineTab{Tab: ast.Tab{Name: "price", IndentPts: 200, Direction: ast.TabRight}},
		},
	}

	for _, c := range cases {
		got, err := decodeCommandValue(json.RawMessage(c.raw))
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}
}

func TestDecodeCommandValueResetArgCommands(t *testing.T) {
	got, err := decodeCommandValue(json.RawMessage(`{"type": "margins", "arg": {"kind": "explicit", "value": 36}}`))
	require.NoError(t, err)
	margins, ok := got.(ast.Margins)
	require.True(t, ok)
	assert.Equal(t, 36.0, margins.Arg.Value())

	got, err = decodeCommandValue(json.RawMessage(`{"type": "align", "arg": {"kind": "explicit", "value": "right"}}`))
	require.NoError(t, err)
	align, ok := got.(ast.Align)
	require.True(t, ok)
	assert.Equal(t, ast.Right, align.Arg.Value())

	got, err = decodeCommandValue(json.RawMessage(`{"type": "ligatures", "arg": {"kind": "explicit", "value": false}}`))
	require.NoError(t, err)
	lig, ok := got.(ast.Ligatures)
	require.True(t, ok)
	assert.False(t, lig.Arg.Value())
}

func TestDecodeCommandValueUnknownTypeErrors(t *testing.T) {
	_, err := decodeCommandValue(json.RawMessage(`{"type": "nonexistent"}`))
	assert.Error(t, err)
}
