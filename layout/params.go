package layout

import (
	"golang.org/x/exp/constraints"

	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/fontstyle"
)

// Numeric is the set of parameter value types that support Relative
// mutation (spec.md §4.1, §9 "additive parameters"). Applying Relative to
// any other parameter type is an InvalidRelative error, enforced at each
// dispatch site below rather than at the type level, since Go generics
// cannot express "every ResetArg[T] where T is numeric" as a single
// constraint spanning both float64 and uint64 call sites cleanly with the
// non-numeric ones in the same switch.
type Numeric interface {
	constraints.Float | constraints.Integer
}

// stack is a per-parameter LIFO save-stack (spec.md §3 invariants: "The
// parameter save-stack for each parameter is LIFO").
type stack[T any] struct{ values []T }

func (s *stack[T]) push(v T) { s.values = append(s.values, v) }

func (s *stack[T]) pop() (T, bool) {
	if len(s.values) == 0 {
		var zero T
		return zero, false
	}
	last := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return last, true
}

// applyNumeric implements apply(param, ResetArg<T>) for an additive
// parameter: Explicit assigns, Relative offsets, Reset pops.
func applyNumeric[T Numeric](current *T, save *stack[T], arg ast.ResetArg[T]) error {
	switch {
	case arg.IsReset():
		v, ok := save.pop()
		if !ok {
			return Sentinel(ErrEmptyReset)
		}
		*current = v
	case arg.IsRelative():
		save.push(*current)
		*current += arg.Value()
	default:
		save.push(*current)
		*current = arg.Value()
	}
	return nil
}

// applyNonNumeric implements apply(param, ResetArg<T>) for a
// non-additive parameter (font, family, alignment, hspace): Relative is
// rejected outright.
func applyNonNumeric[T any](current *T, save *stack[T], arg ast.ResetArg[T]) error {
	if arg.IsRelative() {
		return Sentinel(ErrInvalidRelative)
	}
	if arg.IsReset() {
		v, ok := save.pop()
		if !ok {
			return Sentinel(ErrEmptyReset)
		}
		*current = v
		return nil
	}
	save.push(*current)
	*current = arg.Value()
	return nil
}

// Params holds every scoped layout parameter (spec.md §3 "Parameter
// state"), all lengths in points unless noted. Margins are a single
// scoped value (spec.md §4.1: one Margins command sets top, bottom and
// both page margins together), while colMarginLeft/colMarginRight are
// transient working values derived from it by columns and tabs and are
// not independently save-stacked.
type Params struct {
	margin             float64
	marginStack        stack[float64]
	pageMarginLeft     float64
	pageMarginRight    float64
	colMarginLeft      float64
	colMarginRight     float64
	columnWidth        float64
	alignment          ast.Alignment
	alignmentStack     stack[ast.Alignment]
	leading            float64
	leadingStack       stack[float64]
	ptSize             float64
	ptSizeStack        stack[float64]
	pageWidth          float64
	pageWidthStack     stack[float64]
	pageHeight         float64
	pageHeightStack    stack[float64]
	pendingWidth       *float64
	pendingHeight      *float64
	spaceWidth         float64
	spaceWidthStack    stack[float64]
	spaceWidthExplicit bool
	minSpaceWidth      float64
	parSpace           float64
	parSpaceStack      stack[float64]
	parIndent          float64
	parIndentStack     stack[float64]
	fontFamily         string
	familyStack        stack[string]
	font               fontstyle.Style
	fontStack          stack[fontstyle.Style]
	hyphenate          bool
	consecHyphens      uint64
	consecHyphensStack stack[uint64]
	letterSpace        float64
	letterSpaceStack   stack[float64]
	ligatures          bool
	ligaturesStack     stack[bool]
}

// defaultParams matches _examples/original_source/src/layout.rs
// LayoutBuilder::new's defaults, extended with the spec's tab/column and
// ligature fields.
func defaultParams() Params {
	const inch = 72.0
	p := Params{
		margin:          inch,
		pageMarginLeft:  inch,
		pageMarginRight: inch,
		colMarginLeft:   inch,
		colMarginRight:  inch,
		alignment:       ast.Justify,
		leading:         2.0,
		ptSize:          12.0,
		pageWidth:       inch * 8.5,
		pageHeight:      inch * 11.0,
		parSpace:        1.25 * 12.0,
		parIndent:       2.0 * 12.0,
		fontFamily:      "default",
		hyphenate:       true,
		consecHyphens:   3,
		ligatures:       true,
	}
	p.spaceWidth = p.ptSize / 4.0
	p.minSpaceWidth = p.ptSize / 8.0
	p.columnWidth = p.pageWidth - p.pageMarginLeft - p.pageMarginRight
	return p
}

// ApplyAlign applies a Align command.
func (p *Params) ApplyAlign(arg ast.ResetArg[ast.Alignment]) error {
	return applyNonNumeric(&p.alignment, &p.alignmentStack, arg)
}

// ApplyLeading applies a Leading command.
func (p *Params) ApplyLeading(arg ast.ResetArg[float64]) error {
	return applyNumeric(&p.leading, &p.leadingStack, arg)
}

// ApplyParSpace applies a ParSpace command.
func (p *Params) ApplyParSpace(arg ast.ResetArg[float64]) error {
	return applyNumeric(&p.parSpace, &p.parSpaceStack, arg)
}

// ApplyParIndent applies a ParIndent command.
func (p *Params) ApplyParIndent(arg ast.ResetArg[float64]) error {
	return applyNumeric(&p.parIndent, &p.parIndentStack, arg)
}

// ApplyFamily applies a Family command.
func (p *Params) ApplyFamily(arg ast.ResetArg[string]) error {
	return applyNonNumeric(&p.fontFamily, &p.familyStack, arg)
}

// ApplyFont applies a Font command.
func (p *Params) ApplyFont(arg ast.ResetArg[fontstyle.Style]) error {
	return applyNonNumeric(&p.font, &p.fontStack, arg)
}

// ApplyConsecutiveHyphens applies a ConsecutiveHyphens command.
func (p *Params) ApplyConsecutiveHyphens(arg ast.ResetArg[uint64]) error {
	return applyNumeric(&p.consecHyphens, &p.consecHyphensStack, arg)
}

// ApplyLetterSpace applies a LetterSpace command.
func (p *Params) ApplyLetterSpace(arg ast.ResetArg[float64]) error {
	return applyNumeric(&p.letterSpace, &p.letterSpaceStack, arg)
}

// ApplyLigatures applies a Ligatures command (non-additive: on/off).
func (p *Params) ApplyLigatures(arg ast.ResetArg[bool]) error {
	return applyNonNumeric(&p.ligatures, &p.ligaturesStack, arg)
}

// ApplySpaceWidth applies a SpaceWidth command, remembering that the user
// has taken explicit control of space_width so a later PtSize change does
// not clobber it (spec.md §4.1 PtSize side effect caveat).
func (p *Params) ApplySpaceWidth(arg ast.ResetArg[float64]) error {
	if err := applyNumeric(&p.spaceWidth, &p.spaceWidthStack, arg); err != nil {
		return err
	}
	p.spaceWidthExplicit = true
	return nil
}

// ApplyPtSize applies a PtSize command, including the space_width and
// min_space_width side effect (spec.md §4.1), applied atomically with the
// size assignment.
func (p *Params) ApplyPtSize(arg ast.ResetArg[float64]) error {
	if err := applyNumeric(&p.ptSize, &p.ptSizeStack, arg); err != nil {
		return err
	}
	if !p.spaceWidthExplicit {
		p.spaceWidth = p.ptSize / 4.0
	}
	p.minSpaceWidth = p.ptSize / 8.0
	return nil
}

// ApplyMargins applies a Margins command: a single scoped value that sets
// top, bottom and both page margins together, recomputes columnWidth, and
// copies into the column margins (spec.md §4.1). Callers must separately
// re-anchor the cursor when the current line is empty; see flow.go.
func (p *Params) ApplyMargins(arg ast.ResetArg[float64]) error {
	if err := applyNumeric(&p.margin, &p.marginStack, arg); err != nil {
		return err
	}
	p.pageMarginLeft = p.margin
	p.pageMarginRight = p.margin
	p.colMarginLeft = p.margin
	p.colMarginRight = p.margin
	p.columnWidth = p.pageWidth - p.pageMarginLeft - p.pageMarginRight
	return nil
}

// MarginTop and MarginBottom are derived from the single scoped margin
// value (spec.md §4.1: Margins "updates top/bottom/page-left/page-right").
func (p *Params) MarginTop() float64    { return p.margin }
func (p *Params) MarginBottom() float64 { return p.margin }

// ApplyPageWidth buffers a page-width change as pending; it takes effect
// only at the next page boundary (spec.md §3 "Pending-page-dims").
func (p *Params) ApplyPageWidth(arg ast.ResetArg[float64]) error {
	if arg.IsRelative() {
		return Sentinel(ErrInvalidRelative)
	}
	if arg.IsReset() {
		v, ok := p.pageWidthStack.pop()
		if !ok {
			if p.pendingWidth != nil {
				// EmptyReset exception (spec.md §3): clearing a pending
				// value with an empty stack counts as success.
				p.pendingWidth = nil
				return nil
			}
			return Sentinel(ErrEmptyReset)
		}
		p.pendingWidth = &v
		return nil
	}
	v := arg.Value()
	p.pendingWidth = &v
	return nil
}

// ApplyPageHeight buffers a page-height change as pending; see
// ApplyPageWidth.
func (p *Params) ApplyPageHeight(arg ast.ResetArg[float64]) error {
	if arg.IsRelative() {
		return Sentinel(ErrInvalidRelative)
	}
	if arg.IsReset() {
		v, ok := p.pageHeightStack.pop()
		if !ok {
			if p.pendingHeight != nil {
				p.pendingHeight = nil
				return nil
			}
			return Sentinel(ErrEmptyReset)
		}
		p.pendingHeight = &v
		return nil
	}
	v := arg.Value()
	p.pendingHeight = &v
	return nil
}

// nextPageDims consumes any pending width/height, pushing the prior value
// onto that parameter's save-stack so a later PageWidth/PageHeight Reset
// can restore it (spec.md §4.5 finish_page, §9 supplemented behavior from
// original_source/src/layout.rs's next_page_dims).
func (p *Params) nextPageDims() (width, height float64) {
	width = p.pageWidth
	if p.pendingWidth != nil {
		p.pageWidthStack.push(p.pageWidth)
		p.pageWidth = *p.pendingWidth
		width = p.pageWidth
		p.pendingWidth = nil
	}

	height = p.pageHeight
	if p.pendingHeight != nil {
		p.pageHeightStack.push(p.pageHeight)
		p.pageHeight = *p.pendingHeight
		height = p.pageHeight
		p.pendingHeight = nil
	}

	return width, height
}
