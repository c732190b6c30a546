package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat(t *testing.T) {
	testCases := []struct {
		name      string
		val       float64
		precision uint
		want      float64
	}{
		{name: "two decimals", val: 40.126, precision: 2, want: 40.13},
		{name: "already rounded", val: 25, precision: 2, want: 25},
		{name: "round half away from zero", val: 1.005000001, precision: 2, want: 1.01},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundFloat(tt.val, tt.precision), 1e-9)
		})
	}
}

func TestWrapErrorfKeepsCodeAndOrigin(t *testing.T) {
	orig := errors.New("no path found")
	err := WrapErrorf(orig, ErrNotFound, "no route from %v", "A")
	wrapped := fmt.Errorf("dispatch: %w", err)

	assert.ErrorIs(t, wrapped, orig)
	assert.Equal(t, ErrNotFound, ErrorCode(wrapped))
	assert.Equal(t, ErrInternalServerError, ErrorCode(orig))
}

func TestReverseG(t *testing.T) {
	arr := []int{1, 2, 3}
	assert.Equal(t, []int{3, 2, 1}, ReverseG(arr))
	assert.Equal(t, []int{1, 2, 3}, arr)
}
