package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "#112233", FormatColor(0xFF112233))
	assert.Equal(t, "#80112233", FormatColor(0x80112233))
	assert.Equal(t, "#00000000", FormatColor(0))
}

func TestTryParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"#112233", 0xFF112233, true},
		{"#80112233", 0x80112233, true},
		{"#abcdef", 0xFFABCDEF, true},
		{"112233", 0, false},
		{"#1122", 0, false},
		{"#11223G", 0, false},
		{"#+12233", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := TryParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestColor_RoundTrip(t *testing.T) {
	for _, c := range []uint32{0xFF112233, 0x80112233, 0x00FFFFFF, 0xFFFFFFFF} {
		got, ok := TryParseColor(FormatColor(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}
