package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "WiFi Is DOWN", "wifi is down"},
		{"strips punctuation", "hostel wifi: broken!!", "hostel wifi broken"},
		{"strips urls", "see https://example.com/page for details", "see for details"},
		{"collapses whitespace", "  too   many \t spaces \n here ", "too many spaces here"},
		{"preserves digits", "room 204 heater", "room 204 heater"},
		{"preserves non-latin scripts", "Wlan kaputt im Gebäude", "wlan kaputt im gebäude"},
		{"empty input", "", ""},
		{"only punctuation", "!!! ??? ...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"The WiFi in Block-C is SLOW!!",
		"check http://status.campus.edu now",
		"",
		"already normalized text",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}
