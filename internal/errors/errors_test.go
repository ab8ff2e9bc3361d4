package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(KindInput, "Cannot read file: /tmp/x")
	require.NotNil(t, err)
	assert.Equal(t, KindInput, err.Kind)
	assert.Equal(t, "Cannot read file: /tmp/x", err.Message)
	assert.Nil(t, err.Cause)
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProbeError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(KindStale, "File is stale (901 seconds old)"),
			expected: "[STALE_DATA] File is stale (901 seconds old)",
		},
		{
			name:     "error with cause",
			err:      Wrap(KindIO, "Error reading file", stderrors.New("short read")),
			expected: "[IO] Error reading file: short read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := fmt.Errorf("resolving: %w", Wrap(KindInput, "Cannot read file: /x", cause))

	assert.ErrorIs(t, err, ErrInput)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrStale)
	assert.Equal(t, KindInput, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestWithContext(t *testing.T) {
	err := New(KindStale, "stale").WithContext("age_seconds", int64(900))
	require.NotNil(t, err.Context)
	assert.Equal(t, int64(900), err.Context["age_seconds"])
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"input", New(KindInput, "Cannot read file: /a.b"), "Cannot read file: /a.b"},
		{"io with cause", Wrap(KindIO, "Error reading file /a.b", stderrors.New("EOF")), "Error reading file /a.b: EOF"},
		{"usage ignores cause", Wrap(KindUsage, "bad flag", stderrors.New("x")), "bad flag"},
		{"plain", stderrors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.err))
		})
	}
}
