package main

import (
	"encoding/json"
	"fmt"

	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/fontstyle"
)

// resetArgJSON is the wire shape for a ResetArg[T]: {"kind": "explicit" |
// "relative" | "reset", "value": T}. "value" is omitted for "reset".
type resetArgJSON[T any] struct {
	Kind  string `json:"kind"`
	Value T      `json:"value"`
}

func decodeResetArg[T any](raw json.RawMessage) (ast.ResetArg[T], error) {
	var r resetArgJSON[T]
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &r); err != nil {
			return ast.ResetArg[T]{}, fmt.Errorf("decode reset arg: %w", err)
		}
	}
	switch r.Kind {
	case "explicit", "":
		return ast.Explicit(r.Value), nil
	case "relative":
		return ast.Relative(r.Value), nil
	case "reset":
		return ast.Reset[T](), nil
	default:
		return ast.ResetArg[T]{}, fmt.Errorf("decode reset arg: unknown kind %q", r.Kind)
	}
}

// alignmentArgJSON lets an Align command carry a string alignment name in
// its "value" field instead of ast.Alignment's raw int encoding.
type alignmentArgJSON struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func decodeAlignmentArg(raw json.RawMessage) (ast.ResetArg[ast.Alignment], error) {
	var r alignmentArgJSON
	if err := json.Unmarshal(raw, &r); err != nil {
		return ast.ResetArg[ast.Alignment]{}, fmt.Errorf("decode align arg: %w", err)
	}
	switch r.Kind {
	case "reset":
		return ast.Reset[ast.Alignment](), nil
	case "relative":
		return ast.ResetArg[ast.Alignment]{}, fmt.Errorf("decode align arg: alignment is not relative")
	default:
		return ast.Explicit(decodeAlignment(r.Value)), nil
	}
}

type fontArgJSON struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func decodeFontArg(raw json.RawMessage) (ast.ResetArg[fontstyle.Style], error) {
	var r fontArgJSON
	if err := json.Unmarshal(raw, &r); err != nil {
		return ast.ResetArg[fontstyle.Style]{}, fmt.Errorf("decode font arg: %w", err)
	}
	switch r.Kind {
	case "reset":
		return ast.Reset[fontstyle.Style](), nil
	case "relative":
		return ast.ResetArg[fontstyle.Style]{}, fmt.Errorf("decode font arg: font is not relative")
	default:
		return ast.Explicit(fontstyle.FromName(r.Value)), nil
	}
}

// commandJSON is the tagged wire shape for every CommandValue variant.
// Fields irrelevant to a given "type" are simply left unused.
type commandJSON struct {
	Type   string          `json:"type"`
	Arg    json.RawMessage `json:"arg"`
	Pts    float64         `json:"pts"`
	Name   string          `json:"name"`
	Names  []string        `json:"names"`
	Count  int             `json:"count"`
	Gutter float64         `json:"gutter"`
	Tab    tabJSON         `json:"tab"`
	Rule   struct {
		Width  float64 `json:"width"`
		Indent float64 `json:"indent"`
		Weight float64 `json:"weight"`
	} `json:"rule"`
}

func decodeCommandValue(raw json.RawMessage) (ast.CommandValue, error) {
	var c commandJSON
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}

	switch c.Type {
	case "align":
		arg, err := decodeAlignmentArg(c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Align{Arg: arg}, nil
	case "margins":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Margins{Arg: arg}, nil
	case "page_width":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.PageWidth{Arg: arg}, nil
	case "page_height":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.PageHeight{Arg: arg}, nil
	case "page_break":
		return ast.PageBreak{}, nil
	case "leading":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Leading{Arg: arg}, nil
	case "par_space":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.ParSpace{Arg: arg}, nil
	case "space_width":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.SpaceWidth{Arg: arg}, nil
	case "par_indent":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.ParIndent{Arg: arg}, nil
	case "family":
		arg, err := decodeResetArg[string](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Family{Arg: arg}, nil
	case "font":
		arg, err := decodeFontArg(c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Font{Arg: arg}, nil
	case "consecutive_hyphens":
		arg, err := decodeResetArg[uint64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.ConsecutiveHyphens{Arg: arg}, nil
	case "letter_space":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.LetterSpace{Arg: arg}, nil
	case "pt_size":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.PtSize{Arg: arg}, nil
	case "break":
		return ast.Break{}, nil
	case "spread":
		return ast.Spread{}, nil
	case "vspace":
		return ast.VSpace{Pts: c.Pts}, nil
	case "hspace":
		arg, err := decodeResetArg[float64](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.HSpace{Arg: arg}, nil
	case "rule":
		return ast.Rule{Opts: ast.RuleOpts{Width: c.Rule.Width, Indent: c.Rule.Indent, Weight: c.Rule.Weight}}, nil
	case "columns":
		return ast.Columns{Count: c.Count, Gutter: c.Gutter}, nil
	case "column_break":
		return ast.ColumnBreak{}, nil
	case "define_tab":
		return ast.DefineTab{Tab: ast.Tab{
			Name:      c.Tab.Name,
			IndentPts: c.Tab.IndentPts,
			Direction: decodeTabDirection(c.Tab.Direction),
			QuadFill:  c.Tab.QuadFill,
			LengthPts: c.Tab.LengthPts,
		}}, nil
	case "tab_list":
		return ast.TabList{Name: c.Name, Names: c.Names}, nil
	case "load_tabs":
		return ast.LoadTabs{Name: c.Name}, nil
	case "tab":
		return ast.TabCmd{Name: c.Name}, nil
	case "next_tab":
		return ast.NextTab{}, nil
	case "previous_tab":
		return ast.PreviousTab{}, nil
	case "quit_tabs":
		return ast.QuitTabs{}, nil
	case "ligatures":
		arg, err := decodeResetArg[bool](c.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Ligatures{Arg: arg}, nil
	default:
		return nil, fmt.Errorf("decode command: unknown type %q", c.Type)
	}
}
