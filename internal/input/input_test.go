package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		defaultYes bool
		expected   bool
	}{
		{"yes", "y\n", false, true},
		{"YES uppercase", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"anything else", "maybe\n", true, false},
		{"enter takes default yes", "\n", true, true},
		{"enter takes default no", "\n", false, false},
		{"eof takes default", "", true, true},
		{"answer without newline", "yes", false, true},
		{"surrounding whitespace", "  y  \n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			restore := SetIO(strings.NewReader(tt.answer), &prompt)
			defer restore()

			assert.Equal(t, tt.expected, Confirm("Overwrite?", tt.defaultYes))
			assert.Contains(t, prompt.String(), "Overwrite?")
		})
	}
}

func TestConfirm_Hint(t *testing.T) {
	var prompt bytes.Buffer
	restore := SetIO(strings.NewReader("\n"), &prompt)
	defer restore()

	Confirm("Continue?", true)
	assert.Contains(t, prompt.String(), "[Y/n]")

	prompt.Reset()
	SetIO(strings.NewReader("\n"), &prompt)
	Confirm("Continue?", false)
	assert.Contains(t, prompt.String(), "[y/N]")
}
