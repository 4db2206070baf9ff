package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Starbucks Seminyak", "Starbucks Seminyak"},
		{"strips time of day", "Starbucks Seminyak 14:32:10", "Starbucks Seminyak"},
		{"time in the middle", "TRX 08:15:00 Pepito Express", "TRX Pepito Express"},
		{"multiple times", "12:00:00 lunch 13:30:45", "lunch"},
		{"collapses whitespace", "  Warung\t Bambu   Lunch ", "Warung Bambu Lunch"},
		{"empty", "", ""},
		{"only time", " 23:59:59 ", ""},
		{"date survives", "Pepito 2026-08-29", "Pepito 2026-08-29"},
		{"short clock survives", "bus 14:32 transfer", "bus 14:32 transfer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDescription(tt.input))
		})
	}
}
