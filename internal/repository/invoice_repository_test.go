package repository

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		sequence int64
		want     string
	}{
		{name: "first of year", year: 2024, sequence: 1, want: "INV-2024-0001"},
		{name: "zero padded", year: 2025, sequence: 42, want: "INV-2025-0042"},
		{name: "four digits", year: 2025, sequence: 9999, want: "INV-2025-9999"},
		{name: "overflow keeps digits", year: 2025, sequence: 10001, want: "INV-2025-10001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInvoiceNumber(tt.year, tt.sequence))
		})
	}
}

func TestFormatInvoiceNumberPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{4}-\d{4,}$`)
	for seq := int64(1); seq <= 3; seq++ {
		assert.Regexp(t, pattern, FormatInvoiceNumber(2024, seq))
	}
}
