package config

import (
	"fmt"
	"strconv"
)

// FormatColor renders a packed ARGB value. Fully opaque colors use the
// short #RRGGBB form.
func FormatColor(argb uint32) string {
	if argb>>24 == 0xFF {
		return fmt.Sprintf("#%06X", argb&0xFFFFFF)
	}
	return fmt.Sprintf("#%08X", argb)
}

// TryParseColor parses #RRGGBB (implicitly opaque) or #AARRGGBB.
func TryParseColor(s string) (uint32, bool) {
	if len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return 0, false
	}
	for _, c := range s[1:] {
		if !isHexDigit(c) {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, false
	}
	if len(s) == 7 {
		n |= 0xFF << 24
	}
	return uint32(n), true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
