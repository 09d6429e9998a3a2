package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStack(t *testing.T) {
	err := New(ErrorTypeSchema, "row length mismatch")

	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestNewCapturesStack")
	assert.Equal(t, "schema: row length mismatch", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeCast, "ignored"))
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeCast, "bad digit")
	outer := Wrap(inner, ErrorTypeTransform, "transform failed")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, stderrors.Is(outer, inner))
}

func TestIsTypeThroughForeignWrapper(t *testing.T) {
	inner := New(ErrorTypeEmptyAggregate, "no values")
	wrapped := fmt.Errorf("sum: %w", inner)

	assert.True(t, IsType(wrapped, ErrorTypeEmptyAggregate))
	assert.False(t, IsType(wrapped, ErrorTypeValidation))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeValidation))
	assert.Equal(t, ErrorTypeEmptyAggregate, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(stderrors.New("plain")))
}

func TestDetail(t *testing.T) {
	err := New(ErrorTypeOutOfRange, "index out of range").WithDetail("index", 3)

	v, ok := err.Detail("index")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = err.Detail("length")
	assert.False(t, ok)
}
