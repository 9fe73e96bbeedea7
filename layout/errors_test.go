package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStringIsNeverEmpty(t *testing.T) {
	for k := ErrUnmappedFont; k <= ErrPDF; k++ {
		assert.NotEmpty(t, k.String())
	}
	assert.Equal(t, "unknown burro error", Kind(999).String())
}

func TestErrorMessageIncludesDetailAndCause(t *testing.T) {
	bare := Sentinel(ErrEmptyReset)
	assert.Equal(t, ErrEmptyReset.String(), bare.Error())

	withDetail := newErr(ErrDuplicateTab, "running-head")
	assert.Contains(t, withDetail.Error(), "running-head")

	withCause := wrapErr(ErrFaceParsing, fmt.Errorf("truncated table"))
	assert.Contains(t, withCause.Error(), "truncated table")
}

func TestErrorIsMatchesBareSentinelOnly(t *testing.T) {
	err := wrapErr(ErrIO, fmt.Errorf("disk full"))
	assert.True(t, errors.Is(err, Sentinel(ErrIO)))
	assert.False(t, errors.Is(err, Sentinel(ErrPDF)))

	detailed := newErr(ErrDuplicateTab, "x")
	assert.False(t, errors.Is(Sentinel(ErrDuplicateTab), detailed), "a detailed error is not a match target; only a bare sentinel is")
}

func TestErrorUnwrapReturnsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := wrapErr(ErrPDF, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}
