package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_WordForm(t *testing.T) {
	r := NewWithIO(strings.NewReader(""), &bytes.Buffer{})

	tests := []struct {
		line string
		want string
	}{
		{"add 2 3", "addition: 5"},
		{"subtract 10 4", "subtraction: 6"},
		{"multiply 6 7", "multiplication: 42"},
		{"divide 10 2", "division: 5.0"},
		{"power 2 10", "power: 1024"},
		{"modulo -7 3", "modulo: 2"},
		{"add 0.1 0.2", "addition: 0.30000000000000004"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := r.Evaluate(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_InfixForm(t *testing.T) {
	r := NewWithIO(strings.NewReader(""), &bytes.Buffer{})

	tests := []struct {
		line string
		want string
	}{
		{"2 + 3", "addition: 5"},
		{"10 - 4", "subtraction: 6"},
		{"6 * 7", "multiplication: 42"},
		{"6 x 7", "multiplication: 42"},
		{"10 / 2", "division: 5.0"},
		{"2 ^ 8", "power: 256"},
		{"10 % 3", "modulo: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := r.Evaluate(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	r := NewWithIO(strings.NewReader(""), &bytes.Buffer{})

	tests := []struct {
		name    string
		line    string
		wantMsg string
	}{
		{"division by zero", "divide 5 0", "Division by zero is not allowed"},
		{"modulo by zero", "5 % 0", "Modulo by zero is not allowed"},
		{"oversized exponent", "power 2 1001", "Exponent too large, potential overflow"},
		{"unknown operation", "sqrt 4 2", "unknown operation"},
		{"bad operand", "add two 3", "invalid number"},
		{"too few tokens", "add 2", "cannot parse"},
		{"too many tokens", "add 1 2 3", "cannot parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Evaluate(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStart_RunsScriptedSession(t *testing.T) {
	input := strings.NewReader("add 2 3\nbogus\nhistory\nquit\n")
	var output bytes.Buffer
	r := NewWithIO(input, &output)

	err := r.Start(context.Background())
	require.NoError(t, err)

	text := output.String()
	assert.Contains(t, text, "addition: 5")
	assert.Contains(t, text, "error:")
	assert.Contains(t, text, "Goodbye.")

	// Both the success and the failure land in the session history.
	require.Len(t, r.session.History, 2)
	assert.NoError(t, r.session.History[0].Err)
	assert.Error(t, r.session.History[1].Err)
}

func TestStart_StopsOnEOF(t *testing.T) {
	r := NewWithIO(strings.NewReader("add 1 1\n"), &bytes.Buffer{})
	err := r.Start(context.Background())
	assert.NoError(t, err)
}
