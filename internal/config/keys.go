package config

import (
	"fmt"
	"strconv"
	"strings"
)

var namedKeys = map[string]uint8{
	"Backspace": 0x08,
	"Tab":       0x09,
	"Enter":     0x0D,
	"Escape":    0x1B,
	"Space":     0x20,
	"PageUp":    0x21,
	"PageDown":  0x22,
	"End":       0x23,
	"Home":      0x24,
	"Left":      0x25,
	"Up":        0x26,
	"Right":     0x27,
	"Down":      0x28,
	"Insert":    0x2D,
	"Delete":    0x2E,
}

var keyNames = func() map[uint8]string {
	m := make(map[uint8]string, len(namedKeys))
	for name, vk := range namedKeys {
		m[vk] = name
	}
	return m
}()

const (
	vkF1  = 0x70
	vkF24 = 0x87
)

// FormatVK returns the symbolic name of a virtual key: a letter or digit,
// F1..F24, a named key such as "Enter", or "VK_XX" in hex otherwise.
func FormatVK(vk uint8) string {
	switch {
	case vk >= 'A' && vk <= 'Z', vk >= '0' && vk <= '9':
		return string(rune(vk))
	case vk >= vkF1 && vk <= vkF24:
		return "F" + strconv.Itoa(int(vk-vkF1)+1)
	}
	if name, ok := keyNames[vk]; ok {
		return name
	}
	return fmt.Sprintf("VK_%02X", vk)
}

// ParseVK parses a name produced by FormatVK. Matching is case-insensitive.
func ParseVK(name string) (uint8, bool) {
	name = strings.TrimSpace(name)
	if len(name) == 1 {
		c := strings.ToUpper(name)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return c, true
		}
		return 0, false
	}

	upper := strings.ToUpper(name)
	if hex, ok := strings.CutPrefix(upper, "VK_"); ok {
		if len(hex) == 0 || len(hex) > 2 {
			return 0, false
		}
		n, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(n), true
	}
	if digits, ok := strings.CutPrefix(upper, "F"); ok {
		if n, err := strconv.Atoi(digits); err == nil {
			if n >= 1 && n <= vkF24-vkF1+1 {
				return uint8(vkF1 + n - 1), true
			}
			return 0, false
		}
	}
	for key, vk := range namedKeys {
		if strings.EqualFold(key, name) {
			return vk, true
		}
	}
	return 0, false
}
