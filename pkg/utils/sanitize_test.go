package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"strips markup", "see you <b>soon</b>", "see you soon"},
		{"drops script content", "<script>alert(1)</script>", ""},
		{"trims whitespace", "  padded  ", "padded"},
		{"keeps unicode", "café ☕", "café ☕"},
		{"unescapes entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeText(tc.in))
		})
	}
}
