package main

import (
	"encoding/json"
	"fmt"

	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/fontstyle"
)

// Decoding the JSON document below is the thin CLI's own responsibility,
// not the layout engine's: spec.md §1 declares the lexer/parser (and, by
// extension, any concrete document serialization) out of scope for the
// engine, which consumes only an already-built ast.Document. JSON is
// used here only because it is the simplest concrete wire format that
// lets this command run end to end without writing the dot-macro parser
// the spec explicitly excludes.

type documentJSON struct {
	Config configJSON        `json:"config"`
	Nodes  []json.RawMessage `json:"nodes"`
}

type tabJSON struct {
	Name      string  `json:"name"`
	IndentPts float64 `json:"indent_pts"`
	Direction string  `json:"direction"`
	QuadFill  bool    `json:"quad_fill"`
	LengthPts float64 `json:"length_pts"`
}

type configJSON struct {
	Margins            *float64            `json:"margins"`
	PageMarginLeft     *float64            `json:"page_margin_left"`
	PageMarginRight    *float64            `json:"page_margin_right"`
	PtSize             *float64            `json:"pt_size"`
	PageWidth          *float64            `json:"page_width"`
	PageHeight         *float64            `json:"page_height"`
	Leading            *float64            `json:"leading"`
	ParSpace           *float64            `json:"par_space"`
	ParIndent          *float64            `json:"par_indent"`
	SpaceWidth         *float64            `json:"space_width"`
	Family             *string             `json:"family"`
	Font               *string             `json:"font"`
	Alignment          *string             `json:"alignment"`
	IndentFirst        bool                `json:"indent_first"`
	ConsecutiveHyphens *uint64             `json:"consecutive_hyphens"`
	LetterSpace        *float64            `json:"letter_space"`
	Ligatures          *bool               `json:"ligatures"`
	Tabs               map[string]tabJSON  `json:"tabs"`
	TabLists           map[string][]string `json:"tab_lists"`
}

func decodeDocument(raw []byte) (*ast.Document, error) {
	var dj documentJSON
	if err := json.Unmarshal(raw, &dj); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	cfg := ast.Config{
		Margins:            dj.Config.Margins,
		PageMarginLeft:     dj.Config.PageMarginLeft,
		PageMarginRight:    dj.Config.PageMarginRight,
		PtSize:             dj.Config.PtSize,
		PageWidth:          dj.Config.PageWidth,
		PageHeight:         dj.Config.PageHeight,
		Leading:            dj.Config.Leading,
		ParSpace:           dj.Config.ParSpace,
		ParIndent:          dj.Config.ParIndent,
		SpaceWidth:         dj.Config.SpaceWidth,
		Family:             dj.Config.Family,
		IndentFirst:        dj.Config.IndentFirst,
		ConsecutiveHyphens: dj.Config.ConsecutiveHyphens,
		LetterSpace:        dj.Config.LetterSpace,
		Ligatures:          dj.Config.Ligatures,
		Tabs:               make(map[string]ast.Tab, len(dj.Config.Tabs)),
		TabLists:           dj.Config.TabLists,
	}
	if dj.Config.Font != nil {
		f := fontstyle.FromName(*dj.Config.Font)
		cfg.Font = &f
	}
	if dj.Config.Alignment != nil {
		a := decodeAlignment(*dj.Config.Alignment)
		cfg.Alignment = &a
	}
	for name, t := range dj.Config.Tabs {
		cfg.Tabs[name] = ast.Tab{
			Name:      name,
			IndentPts: t.IndentPts,
			Direction: decodeTabDirection(t.Direction),
			QuadFill:  t.QuadFill,
			LengthPts: t.LengthPts,
		}
	}

	nodes := make([]ast.Node, 0, len(dj.Nodes))
	for _, raw := range dj.Nodes {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return &ast.Document{Config: cfg, Nodes: nodes}, nil
}

func decodeAlignment(s string) ast.Alignment {
	switch s {
	case "right":
		return ast.Right
	case "center":
		return ast.Center
	case "left":
		return ast.Left
	default:
		return ast.Justify
	}
}

func decodeTabDirection(s string) ast.TabDirection {
	switch s {
	case "right":
		return ast.TabRight
	case "center":
		return ast.TabCenter
	default:
		return ast.TabLeft
	}
}

type typed struct {
	Type string `json:"type"`
}

func decodeNode(raw json.RawMessage) (ast.Node, error) {
	var t typed
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	if t.Type == "paragraph" {
		var p struct {
			Blocks []json.RawMessage `json:"blocks"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		blocks, err := decodeStyleBlocks(p.Blocks)
		if err != nil {
			return nil, err
		}
		return ast.Paragraph{Blocks: blocks}, nil
	}

	value, err := decodeCommandValue(raw)
	if err != nil {
		return nil, err
	}
	return ast.Command{Value: value}, nil
}

func decodeStyleBlocks(raws []json.RawMessage) ([]ast.StyleBlock, error) {
	blocks := make([]ast.StyleBlock, 0, len(raws))
	for _, raw := range raws {
		b, err := decodeStyleBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func decodeStyleBlock(raw json.RawMessage) (ast.StyleBlock, error) {
	var t typed
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}

	var nested struct {
		Blocks []json.RawMessage `json:"blocks"`
	}

	switch t.Type {
	case "text":
		var tb struct {
			Units []json.RawMessage `json:"units"`
		}
		if err := json.Unmarshal(raw, &tb); err != nil {
			return nil, err
		}
		units := make([]ast.TextUnit, 0, len(tb.Units))
		for _, u := range tb.Units {
			unit, err := decodeTextUnit(u)
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
		}
		return ast.Text{Units: units}, nil
	case "bold", "italic", "smallcaps", "quote", "open_quote":
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, err
		}
		blocks, err := decodeStyleBlocks(nested.Blocks)
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case "bold":
			return ast.Bold{Blocks: blocks}, nil
		case "italic":
			return ast.Italic{Blocks: blocks}, nil
		case "smallcaps":
			return ast.Smallcaps{Blocks: blocks}, nil
		case "quote":
			return ast.Quote{Blocks: blocks}, nil
		default:
			return ast.OpenQuote{Blocks: blocks}, nil
		}
	default:
		value, err := decodeCommandValue(raw)
		if err != nil {
			return nil, err
		}
		return ast.CommandBlock{Value: value}, nil
	}
}

func decodeTextUnit(raw json.RawMessage) (ast.TextUnit, error) {
	var t typed
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	switch t.Type {
	case "space":
		return ast.Space{}, nil
	case "nbsp":
		return ast.NonBreakingSpace{}, nil
	default:
		var s struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return ast.Str{Value: s.Value}, nil
	}
}
