package layout

import "fmt"

// Kind enumerates the fatal error conditions the layout engine can raise
// (spec.md §7), the Go counterpart of
// _examples/original_source/src/error.rs's BurroError enum. Every build
// error aborts the build; none are recoverable or retried.
type Kind int

const (
	ErrUnmappedFont Kind = iota
	ErrFaceParsing
	ErrEmptyReset
	ErrInvalidRelative
	ErrTabDefInBody
	ErrTabListInBody
	ErrUndefinedTab
	ErrUnloadedTab
	ErrNoTabsLoaded
	ErrTabOutOfRange
	ErrDuplicateTab
	ErrDuplicateKey
	ErrMarginsMidColumn
	ErrIO
	ErrPDF
)

func (k Kind) String() string {
	switch k {
	case ErrUnmappedFont:
		return "unmapped font"
	case ErrFaceParsing:
		return "face parsing error"
	case ErrEmptyReset:
		return "reset with empty save-stack"
	case ErrInvalidRelative:
		return "relative argument on a non-numeric parameter"
	case ErrTabDefInBody:
		return "tab definition outside document config"
	case ErrTabListInBody:
		return "tab list definition outside document config"
	case ErrUndefinedTab:
		return "tab list references an undefined tab"
	case ErrUnloadedTab:
		return "tab not present in the active tab list"
	case ErrNoTabsLoaded:
		return "no tab list is active"
	case ErrTabOutOfRange:
		return "tab navigation past the active list's bounds"
	case ErrDuplicateTab:
		return "duplicate tab name"
	case ErrDuplicateKey:
		return "duplicate curly-brace config key"
	case ErrMarginsMidColumn:
		return "margins changed with more than one column active"
	case ErrIO:
		return "I/O error"
	case ErrPDF:
		return "PDF writer error"
	default:
		return "unknown burro error"
	}
}

// Error is the concrete error type every exported burro function returns.
// It carries a Kind for programmatic dispatch (errors.Is) plus optional
// free-form detail and a wrapped cause.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, layout.Sentinel(layout.ErrEmptyReset)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Cause == nil && other.Detail == "" && other.Kind == e.Kind
}

// Sentinel builds a bare *Error of the given kind, suitable as an
// errors.Is comparison target.
func Sentinel(kind Kind) *Error { return &Error{Kind: kind} }

func newErr(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func wrapErr(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}
