package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: ""},
		{name: "short", text: "hello", want: "hello"},
		{name: "exactly forty", text: strings.Repeat("x", 40), want: strings.Repeat("x", 40)},
		{name: "truncated without marker", text: strings.Repeat("x", 41), want: strings.Repeat("x", 40)},
		{name: "runes not bytes", text: strings.Repeat("é", 50), want: strings.Repeat("é", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromText(tt.text))
		})
	}
}
