package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single character", "A", "A"},
		{"two characters", "Al", "A*"},
		{"three characters", "Bob", "B*b"},
		{"typical name", "Alice", "A***e"},
		{"multibyte runes", "Renée", "R***e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskName(tt.input))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single character local part", "a@b.com", "a***@b.com"},
		{"longer local part", "alice@example.com", "a***@example.com"},
		{"missing at sign falls back to name masking", "not-an-email", "n**********l"},
		{"leading at sign falls back to name masking", "@example.com", "@**********m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskEmail(tt.input))
		})
	}
}

func TestMaskEmailNeverRevealsLocalPart(t *testing.T) {
	masked := MaskEmail("someone.important@example.com")
	assert.NotContains(t, masked, "someone.important")
	assert.Contains(t, masked, "@example.com")
}
