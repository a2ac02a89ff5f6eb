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
		want       bool
	}{
		{name: "yes", answer: "y\n", want: true},
		{name: "full yes uppercase", answer: "YES\n", want: true},
		{name: "no", answer: "n\n", defaultYes: true, want: false},
		{name: "empty uses default yes", answer: "\n", defaultYes: true, want: true},
		{name: "empty uses default no", answer: "\n", want: false},
		{name: "eof uses default", answer: "", defaultYes: true, want: true},
		{name: "answer without newline", answer: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.answer), &out)

			assert.Equal(t, tt.want, p.Confirm("Overwrite?", tt.defaultYes))
			assert.Contains(t, out.String(), "Overwrite?")
		})
	}
}
