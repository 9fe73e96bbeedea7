package layout

import (
	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/fontmap"
	"github.com/typeset/burro/fontstyle"
	"github.com/typeset/burro/hyphen"
	"github.com/typeset/burro/shaping"
)

// tabSnapshot is the column geometry saved by LoadTabs and restored by
// QuitTabs (spec.md §4.5 "pre_tab_snapshot").
type tabSnapshot struct {
	colMarginLeft  float64
	colMarginRight float64
	columnWidth    float64
	alignment      ast.Alignment
}

// Controller is the Flow Controller (spec.md §4.5): it owns the cursor,
// the page/column/tab lifecycle and the command dispatch table, and
// drives the Word Shaper and Line Builder as it walks the AST. One
// Controller is consumed by exactly one Build call, mirroring
// _examples/original_source/src/layout.rs's LayoutBuilder, which is
// likewise built fresh per document.
type Controller struct {
	params Params

	fonts      fontmap.FontMap
	shaper     *wordShaper
	hyphenator hyphen.Hyphenator

	cursor      Position
	currentPage Page
	pages       []Page
	currentLine []Chunk
	hyphens     uint64

	parCounter  int
	indentFirst bool

	currentCol   int
	columnCount  int
	columnGutter float64
	columnTop    float64
	columnBottom float64
	firstColumn  bool

	tabDefs        map[string]ast.Tab
	tabLists       map[string][]string
	currentTabs    []ast.Tab
	currentTabIx   int
	preTabSnapshot *tabSnapshot
	tabTop         *float64

	inConfig bool
}

// New builds a Controller ready to process one Document. fonts and
// shaper are required; hyphenator defaults to
// hyphen.NewPatternDictionary() if nil (spec.md §9 open question (c):
// the dictionary should be pluggable configuration).
func New(fonts fontmap.FontMap, shaper shaping.Shaper, hyphenator hyphen.Hyphenator) *Controller {
	if hyphenator == nil {
		hyphenator = hyphen.NewPatternDictionary()
	}
	return &Controller{
		params:      defaultParams(),
		fonts:       fonts,
		shaper:      newWordShaper(fonts, shaper),
		hyphenator:  hyphenator,
		indentFirst: false,
		currentCol:  1,
		columnCount: 1,
		firstColumn: true,
		tabDefs:     make(map[string]ast.Tab),
		tabLists:    make(map[string][]string),
	}
}

// Build lays out doc and returns the finished Layout (spec.md §4.5 "Final
// step of build").
func (c *Controller) Build(doc *ast.Document) (*Layout, error) {
	if err := c.applyConfig(&doc.Config); err != nil {
		return nil, err
	}

	c.currentPage = Page{Width: c.params.pageWidth, Height: c.params.pageHeight}
	c.resetCursorToPageTop()
	c.columnTop = c.cursor.Y
	c.columnBottom = c.cursor.Y

	c.inConfig = false
	for _, node := range doc.Nodes {
		if err := c.handleNode(node); err != nil {
			return nil, err
		}
	}

	c.emitRemainingLine()
	if len(c.currentPage.Boxes) > 0 {
		c.pages = append(c.pages, c.currentPage)
	}

	return &Layout{Pages: c.pages}, nil
}

// applyConfig seeds document-level defaults and registers tab
// definitions/lists (spec.md §4.5 "DefineTab / TabList: only valid in doc
// config"), mirroring
// _examples/original_source/src/layout.rs's LayoutBuilder::new config
// handling.
func (c *Controller) applyConfig(cfg *ast.Config) error {
	c.inConfig = true
	defer func() { c.inConfig = false }()

	if cfg.Margins != nil {
		if err := c.params.ApplyMargins(ast.Explicit(*cfg.Margins)); err != nil {
			return err
		}
	}
	if cfg.PageMarginLeft != nil {
		c.params.pageMarginLeft = *cfg.PageMarginLeft
		c.params.colMarginLeft = *cfg.PageMarginLeft
	}
	if cfg.PageMarginRight != nil {
		c.params.pageMarginRight = *cfg.PageMarginRight
		c.params.colMarginRight = *cfg.PageMarginRight
	}
	if cfg.PtSize != nil {
		c.params.ptSize = *cfg.PtSize
		if !c.params.spaceWidthExplicit {
			c.params.spaceWidth = c.params.ptSize / 4.0
		}
		c.params.minSpaceWidth = c.params.ptSize / 8.0
	}
	if cfg.PageWidth != nil {
		c.params.pageWidth = *cfg.PageWidth
	}
	if cfg.PageHeight != nil {
		c.params.pageHeight = *cfg.PageHeight
	}
	if cfg.Leading != nil {
		c.params.leading = *cfg.Leading
	}
	if cfg.ParSpace != nil {
		c.params.parSpace = *cfg.ParSpace
	}
	if cfg.ParIndent != nil {
		c.params.parIndent = *cfg.ParIndent
	}
	if cfg.SpaceWidth != nil {
		c.params.spaceWidth = *cfg.SpaceWidth
		c.params.spaceWidthExplicit = true
	}
	if cfg.Family != nil {
		c.params.fontFamily = *cfg.Family
	}
	if cfg.Font != nil {
		c.params.font = *cfg.Font
	}
	if cfg.Alignment != nil {
		c.params.alignment = *cfg.Alignment
	}
	c.indentFirst = cfg.IndentFirst
	if cfg.ConsecutiveHyphens != nil {
		c.params.consecHyphens = *cfg.ConsecutiveHyphens
	}
	if cfg.LetterSpace != nil {
		c.params.letterSpace = *cfg.LetterSpace
	}
	if cfg.Ligatures != nil {
		c.params.ligatures = *cfg.Ligatures
	}

	for name, tab := range cfg.Tabs {
		if _, exists := c.tabDefs[name]; exists {
			return newErr(ErrDuplicateTab, name)
		}
		c.tabDefs[name] = tab
	}
	for name, names := range cfg.TabLists {
		for _, tabName := range names {
			if _, ok := c.tabDefs[tabName]; !ok {
				return newErr(ErrUndefinedTab, tabName)
			}
		}
		c.tabLists[name] = names
	}

	c.params.columnWidth = c.params.pageWidth - c.params.pageMarginLeft - c.params.pageMarginRight
	return nil
}

func (c *Controller) resetCursorToPageTop() {
	c.cursor = Position{
		X: c.params.pageMarginLeft,
		Y: c.params.pageHeight - (c.params.margin + c.params.ptSize + c.params.leading),
	}
}

func (c *Controller) handleNode(node ast.Node) error {
	switch n := node.(type) {
	case ast.Command:
		return c.handleCommand(n.Value)
	case ast.Paragraph:
		return c.handleParagraph(n)
	default:
		return nil
	}
}

// handleParagraph implements spec.md §4.5 "Paragraph entry".
func (c *Controller) handleParagraph(p ast.Paragraph) error {
	if c.parCounter == 0 && !c.indentFirst {
		c.cursor.X = c.params.colMarginLeft
	} else {
		c.cursor.X = c.params.colMarginLeft + c.params.parIndent
	}

	if err := c.handleStyleBlocks(p.Blocks); err != nil {
		return err
	}

	c.emitRemainingLine()
	c.cursor.X = c.params.colMarginLeft
	c.advanceY(c.params.leading + c.params.ptSize + c.params.parSpace)
	c.tabTop = nil
	c.parCounter++
	return nil
}

func (c *Controller) handleStyleBlocks(blocks []ast.StyleBlock) error {
	for _, block := range blocks {
		if err := c.handleStyleBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) handleStyleBlock(block ast.StyleBlock) error {
	switch b := block.(type) {
	case ast.Text:
		return c.handleText(b.Units)
	case ast.Bold:
		return c.handleStyleToggle(b.Blocks, fontstyle.Bold)
	case ast.Italic:
		return c.handleStyleToggle(b.Blocks, fontstyle.Italic)
	case ast.Smallcaps:
		return c.handleStyleToggle(b.Blocks, fontstyle.Smallcaps)
	case ast.CommandBlock:
		return c.handleCommand(b.Value)
	case ast.Quote:
		if err := c.generateWord(ast.Str{Value: openQuote}); err != nil {
			return err
		}
		if err := c.handleStyleBlocks(b.Blocks); err != nil {
			return err
		}
		return c.generateWord(ast.Str{Value: closeQuote})
	case ast.OpenQuote:
		if err := c.generateWord(ast.Str{Value: openQuote}); err != nil {
			return err
		}
		return c.handleStyleBlocks(b.Blocks)
	default:
		return nil
	}
}

// openQuote/closeQuote mirror
// _examples/original_source/src/literals.rs's OPEN_QUOTE/CLOSE_QUOTE.
const (
	openQuote  = "“"
	closeQuote = "”"
)

// handleStyleToggle implements spec.md §4.5 "Style toggles": if the bit is
// already set, recurse without change; otherwise set it, recurse, then
// clear it, making nested applications of the same style idempotent.
func (c *Controller) handleStyleToggle(blocks []ast.StyleBlock, flag fontstyle.Style) error {
	if c.params.font.Has(flag) {
		return c.handleStyleBlocks(blocks)
	}
	c.params.font = c.params.font.With(flag)
	err := c.handleStyleBlocks(blocks)
	c.params.font = c.params.font.Without(flag)
	return err
}

// advanceY implements spec.md §4.5 "advance_y(delta)": move the cursor
// down, tracking the bottom of the first column and triggering column or
// page advance on overflow.
func (c *Controller) advanceY(delta float64) {
	c.cursor.Y -= delta

	if c.firstColumn {
		c.columnBottom = c.cursor.Y
	}

	if c.cursor.Y < c.params.MarginBottom() {
		if c.currentCol < c.columnCount {
			c.advanceColumn()
		} else {
			c.moveToNextPage()
		}
	}
}

// advanceColumn shifts to the next column in the current set (spec.md
// §4.5 "advance_y" column branch and "ColumnBreak").
func (c *Controller) advanceColumn() {
	c.currentCol++
	c.firstColumn = false
	c.params.colMarginLeft += c.params.columnWidth + c.columnGutter
	c.params.colMarginRight -= c.params.columnWidth + c.columnGutter
	c.cursor.X = c.params.colMarginLeft
	c.cursor.Y = c.columnTop
}

// moveToNextPage finishes the current page and resets column/cursor
// state to a fresh page's top-left (spec.md §4.5 "advance_y" page
// branch).
func (c *Controller) moveToNextPage() {
	c.finishPage()
	c.resetCursorToPageTop()
	c.currentCol = 1
	c.firstColumn = true
	c.params.colMarginLeft = c.params.pageMarginLeft
	c.params.colMarginRight = c.params.pageMarginRight
	c.columnTop = c.cursor.Y
	c.columnBottom = c.cursor.Y
}

// finishPage implements spec.md §4.5 "finish_page": construct a new blank
// page with the next page dims (consuming any pending width/height) and
// push the filled page onto the pages list.
func (c *Controller) finishPage() {
	c.pages = append(c.pages, c.currentPage)
	width, height := c.params.nextPageDims()
	c.currentPage = Page{Width: width, Height: height}
}

// handleCommand dispatches one Command to the Parameter Stack and Flow
// Controller state (spec.md §4.5 "Command dispatch").
func (c *Controller) handleCommand(value ast.CommandValue) error {
	switch v := value.(type) {
	case ast.Align:
		return c.params.ApplyAlign(v.Arg)
	case ast.Margins:
		return c.handleMargins(v.Arg)
	case ast.PageWidth:
		return c.params.ApplyPageWidth(v.Arg)
	case ast.PageHeight:
		return c.params.ApplyPageHeight(v.Arg)
	case ast.PageBreak:
		c.emitRemainingLine()
		c.moveToNextPage()
		return nil
	case ast.Leading:
		return c.params.ApplyLeading(v.Arg)
	case ast.ParSpace:
		return c.params.ApplyParSpace(v.Arg)
	case ast.SpaceWidth:
		return c.params.ApplySpaceWidth(v.Arg)
	case ast.ParIndent:
		return c.params.ApplyParIndent(v.Arg)
	case ast.Family:
		return c.params.ApplyFamily(v.Arg)
	case ast.Font:
		return c.params.ApplyFont(v.Arg)
	case ast.ConsecutiveHyphens:
		return c.params.ApplyConsecutiveHyphens(v.Arg)
	case ast.LetterSpace:
		return c.params.ApplyLetterSpace(v.Arg)
	case ast.PtSize:
		return c.params.ApplyPtSize(v.Arg)
	case ast.Break:
		c.emitRemainingLine()
		c.cursor.X = c.params.colMarginLeft
		c.advanceY(c.params.leading + c.params.ptSize)
		return nil
	case ast.Spread:
		line := c.currentLine
		c.currentLine = nil
		c.emitLine(line, false)
		c.cursor.X = c.params.colMarginLeft
		c.advanceY(c.params.leading + c.params.ptSize)
		return nil
	case ast.VSpace:
		c.emitRemainingLine()
		c.advanceY(v.Pts)
		return nil
	case ast.HSpace:
		return c.handleHSpace(v.Arg)
	case ast.Rule:
		c.emitRule(v.Opts)
		return nil
	case ast.Columns:
		return c.handleColumns(v.Count, v.Gutter)
	case ast.ColumnBreak:
		return c.handleColumnBreak()
	case ast.DefineTab:
		if !c.inConfig {
			return Sentinel(ErrTabDefInBody)
		}
		if _, exists := c.tabDefs[v.Tab.Name]; exists {
			return newErr(ErrDuplicateTab, v.Tab.Name)
		}
		c.tabDefs[v.Tab.Name] = v.Tab
		return nil
	case ast.TabList:
		if !c.inConfig {
			return Sentinel(ErrTabListInBody)
		}
		for _, name := range v.Names {
			if _, ok := c.tabDefs[name]; !ok {
				return newErr(ErrUndefinedTab, name)
			}
		}
		c.tabLists[v.Name] = v.Names
		return nil
	case ast.LoadTabs:
		return c.handleLoadTabs(v.Name)
	case ast.TabCmd:
		return c.handleTab(v.Name)
	case ast.NextTab:
		return c.handleTabStep(1)
	case ast.PreviousTab:
		return c.handleTabStep(-1)
	case ast.QuitTabs:
		return c.handleQuitTabs()
	case ast.Ligatures:
		return c.params.ApplyLigatures(v.Arg)
	default:
		return nil
	}
}

// handleMargins applies spec.md §4.1's Margins side effect: if the
// current line is empty, re-anchor the paragraph cursor x, and reject the
// command mid-column (spec.md §9 open question (b): the source panics on
// this case; we reject it instead of honoring it only at the next column
// boundary, since silently deferring a margin change would leave the
// column geometry and the cursor disagreeing about column_width in the
// interim).
func (c *Controller) handleMargins(arg ast.ResetArg[float64]) error {
	if c.columnCount > 1 {
		return Sentinel(ErrMarginsMidColumn)
	}
	if err := c.params.ApplyMargins(arg); err != nil {
		return err
	}
	if len(c.currentLine) == 0 {
		c.cursor.X = c.params.colMarginLeft
	}
	return nil
}

// handleHSpace implements spec.md §4.5 "HSpace".
func (c *Controller) handleHSpace(arg ast.ResetArg[float64]) error {
	if arg.IsRelative() {
		return Sentinel(ErrInvalidRelative)
	}
	c.emitRemainingLine()
	if arg.IsReset() {
		c.cursor.X = c.params.pageMarginLeft
		return nil
	}
	c.cursor.X += arg.Value()
	if c.cursor.X >= c.params.colMarginLeft+c.params.columnWidth {
		c.cursor.X = c.params.colMarginLeft
		c.advanceY(c.params.leading + c.params.ptSize)
	}
	return nil
}

// emitRule implements spec.md §4.5 "Rule{width, indent, weight}".
func (c *Controller) emitRule(opts ast.RuleOpts) {
	ruleWidth := c.params.columnWidth * opts.Width

	var x float64
	switch c.params.alignment {
	case ast.Center:
		x = c.params.colMarginLeft + (c.params.columnWidth-ruleWidth)/2 + opts.Indent
	case ast.Right:
		x = c.params.colMarginLeft + c.params.columnWidth - opts.Indent - ruleWidth
	default: // Left, Justify
		x = c.params.colMarginLeft + opts.Indent
	}

	c.currentPage.Boxes = append(c.currentPage.Boxes, BurroBox{
		Kind:     BoxRule,
		StartPos: Position{X: x, Y: c.cursor.Y},
		EndPos:   Position{X: x + ruleWidth, Y: c.cursor.Y},
		Weight:   opts.Weight,
	})
}

// handleColumns implements spec.md §4.5 "Columns(count, gutter)".
func (c *Controller) handleColumns(count int, gutter float64) error {
	if count == c.columnCount {
		return nil
	}
	c.columnCount = count
	c.columnGutter = gutter
	c.currentCol = 1
	c.firstColumn = true
	c.params.colMarginLeft = c.params.pageMarginLeft
	c.params.colMarginRight = c.params.pageMarginRight
	c.params.columnWidth = (c.params.pageWidth - c.params.pageMarginLeft - c.params.pageMarginRight - gutter*float64(count-1)) / float64(count)

	c.columnTop = c.cursor.Y
	if c.cursor.Y > c.columnBottom {
		c.cursor.Y = c.columnBottom
	}
	if c.cursor.Y-c.params.MarginBottom() < c.params.leading+c.params.ptSize+c.params.parSpace {
		c.advanceY(c.params.leading + c.params.ptSize)
	}
	return nil
}

// handleColumnBreak implements spec.md §4.5 "ColumnBreak".
func (c *Controller) handleColumnBreak() error {
	c.emitRemainingLine()
	if c.currentCol < c.columnCount {
		c.advanceColumn()
		return nil
	}
	c.moveToNextPage()
	return nil
}

// handleLoadTabs implements spec.md §4.5 "LoadTabs(name)".
func (c *Controller) handleLoadTabs(name string) error {
	names, ok := c.tabLists[name]
	if !ok {
		return newErr(ErrUndefinedTab, name)
	}
	tabs := make([]ast.Tab, 0, len(names))
	for _, n := range names {
		tabs = append(tabs, c.tabDefs[n])
	}

	c.preTabSnapshot = &tabSnapshot{
		colMarginLeft:  c.params.colMarginLeft,
		colMarginRight: c.params.colMarginRight,
		columnWidth:    c.params.columnWidth,
		alignment:      c.params.alignment,
	}
	c.currentTabs = tabs
	c.currentTabIx = 0
	return nil
}

// handleTab implements spec.md §4.5 "Tab(name)".
func (c *Controller) handleTab(name string) error {
	if len(c.currentTabs) == 0 {
		return Sentinel(ErrNoTabsLoaded)
	}
	ix := -1
	for i, t := range c.currentTabs {
		if t.Name == name {
			ix = i
			break
		}
	}
	if ix < 0 {
		return newErr(ErrUnloadedTab, name)
	}
	c.currentTabIx = ix

	c.emitRemainingLine()
	if c.tabTop == nil {
		top := c.cursor.Y
		c.tabTop = &top
	}
	c.loadTab(c.currentTabs[ix])
	return nil
}

// loadTab applies one tab's geometry (spec.md §4.5 "load_tab").
func (c *Controller) loadTab(tab ast.Tab) {
	c.params.colMarginLeft = c.preTabSnapshot.colMarginLeft + tab.IndentPts
	c.cursor.X = c.params.colMarginLeft
	if c.tabTop != nil {
		c.cursor.Y = *c.tabTop
	}
	c.params.alignment = tabAlignment(tab.Direction)
	if tab.QuadFill {
		c.params.columnWidth = tab.LengthPts
	} else {
		c.params.columnWidth = c.preTabSnapshot.colMarginLeft + c.preTabSnapshot.columnWidth - c.params.colMarginLeft
	}
}

func tabAlignment(dir ast.TabDirection) ast.Alignment {
	switch dir {
	case ast.TabRight:
		return ast.Right
	case ast.TabCenter:
		return ast.Center
	default:
		return ast.Left
	}
}

// handleTabStep implements spec.md §4.5 "NextTab / PreviousTab".
func (c *Controller) handleTabStep(delta int) error {
	if len(c.currentTabs) == 0 {
		return Sentinel(ErrNoTabsLoaded)
	}
	ix := c.currentTabIx + delta
	if ix < 0 || ix >= len(c.currentTabs) {
		return Sentinel(ErrTabOutOfRange)
	}
	c.currentTabIx = ix
	c.emitRemainingLine()
	c.loadTab(c.currentTabs[ix])
	return nil
}

// handleQuitTabs implements spec.md §4.5 "QuitTabs".
func (c *Controller) handleQuitTabs() error {
	if c.preTabSnapshot == nil {
		return Sentinel(ErrNoTabsLoaded)
	}
	c.emitRemainingLine()
	c.params.colMarginLeft = c.preTabSnapshot.colMarginLeft
	c.params.colMarginRight = c.preTabSnapshot.colMarginRight
	c.params.columnWidth = c.preTabSnapshot.columnWidth
	c.params.alignment = c.preTabSnapshot.alignment
	c.cursor.X = c.params.colMarginLeft
	c.preTabSnapshot = nil
	c.currentTabs = nil
	c.currentTabIx = 0
	c.tabTop = nil
	return nil
}
