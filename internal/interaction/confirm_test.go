package interaction

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalConfirmerAnswers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "plain yes", input: "y\n", expected: true},
		{name: "full yes", input: "yes\n", expected: true},
		{name: "uppercase yes", input: "YES\n", expected: true},
		{name: "plain no", input: "n\n", expected: false},
		{name: "full no", input: "no\n", expected: false},
		{name: "reprompts until definitive", input: "maybe\nwhat\ny\n", expected: true},
		{name: "closed input declines", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewTerminalConfirmer(strings.NewReader(tt.input), &out)

			assert.Equal(t, tt.expected, c.Confirm("Remove vendor directory?"))
			assert.Contains(t, out.String(), "Remove vendor directory? (y/n):")
		})
	}
}

func TestTerminalConfirmerRepromptMessage(t *testing.T) {
	var out bytes.Buffer
	c := NewTerminalConfirmer(strings.NewReader("hmm\nn\n"), &out)

	assert.False(t, c.Confirm("Proceed?"))
	assert.Contains(t, out.String(), "Please enter 'y' for yes or 'n' for no.")
}

func TestConfirmerFunc(t *testing.T) {
	var seen string
	c := ConfirmerFunc(func(message string) bool {
		seen = message
		return true
	})

	assert.True(t, c.Confirm("apply fixes?"))
	assert.Equal(t, "apply fixes?", seen)
	assert.True(t, AlwaysConfirm().Confirm("anything"))
	assert.False(t, NeverConfirm().Confirm("anything"))
}
