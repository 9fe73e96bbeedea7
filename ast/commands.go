package ast

import "github.com/typeset/burro/fontstyle"

// CommandValue is the exhaustive set of command variants the flow
// controller dispatches (spec.md §3). Each concrete type below implements
// it via the unexported marker method.
type CommandValue interface{ commandValue() }

type (
	Align              struct{ Arg ResetArg[Alignment] }
	Margins            struct{ Arg ResetArg[float64] }
	PageWidth          struct{ Arg ResetArg[float64] }
	PageHeight         struct{ Arg ResetArg[float64] }
	PageBreak          struct{}
	Leading            struct{ Arg ResetArg[float64] }
	ParSpace           struct{ Arg ResetArg[float64] }
	SpaceWidth         struct{ Arg ResetArg[float64] }
	ParIndent          struct{ Arg ResetArg[float64] }
	Family             struct{ Arg ResetArg[string] }
	Font               struct{ Arg ResetArg[fontstyle.Style] }
	ConsecutiveHyphens struct{ Arg ResetArg[uint64] }
	LetterSpace        struct{ Arg ResetArg[float64] }
	PtSize             struct{ Arg ResetArg[float64] }
	Break              struct{}
	Spread             struct{}
	VSpace             struct{ Pts float64 }
	HSpace             struct{ Arg ResetArg[float64] }
	Rule               struct{ Opts RuleOpts }
	Columns            struct {
		Count  int
		Gutter float64
	}
	ColumnBreak struct{}
	DefineTab   struct{ Tab Tab }
	TabList     struct {
		Name  string
		Names []string
	}
	LoadTabs    struct{ Name string }
	TabCmd      struct{ Name string }
	NextTab     struct{}
	PreviousTab struct{}
	QuitTabs    struct{}
	Ligatures   struct{ Arg ResetArg[bool] }
)

func (Align) commandValue()              {}
func (Margins) commandValue()            {}
func (PageWidth) commandValue()          {}
func (PageHeight) commandValue()         {}
func (PageBreak) commandValue()          {}
func (Leading) commandValue()            {}
func (ParSpace) commandValue()           {}
func (SpaceWidth) commandValue()         {}
func (ParIndent) commandValue()          {}
func (Family) commandValue()             {}
func (Font) commandValue()               {}
func (ConsecutiveHyphens) commandValue() {}
func (LetterSpace) commandValue()        {}
func (PtSize) commandValue()             {}
func (Break) commandValue()              {}
func (Spread) commandValue()             {}
func (VSpace) commandValue()             {}
func (HSpace) commandValue()             {}
func (Rule) commandValue()               {}
func (Columns) commandValue()            {}
func (ColumnBreak) commandValue()        {}
func (DefineTab) commandValue()          {}
func (TabList) commandValue()            {}
func (LoadTabs) commandValue()           {}
func (TabCmd) commandValue()             {}
func (NextTab) commandValue()            {}
func (PreviousTab) commandValue()        {}
func (QuitTabs) commandValue()           {}
func (Ligatures) commandValue()          {}
