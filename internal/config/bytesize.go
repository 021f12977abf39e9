package config

import (
	"errors"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// ParseByteSize reads a size setting. A bare integer, or a string without a
// suffix, counts KiB; strings may end in kb, mb or gb in any case. Results
// that do not fit in a uint64 saturate to math.MaxUint64.
func ParseByteSize(v jsonvalue.Value) (uint64, bool) {
	switch v.Kind() {
	case jsonvalue.String:
		s, _ := v.Str()
		return parseByteSizeString(s)
	default:
		n, ok := v.Uint()
		if !ok {
			return 0, false
		}
		return saturatingMul(n, kib), true
	}
}

func parseByteSizeString(s string) (uint64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	unit := uint64(kib)
	for _, suffix := range []struct {
		text string
		unit uint64
	}{{"kb", kib}, {"mb", mib}, {"gb", gib}} {
		if rest, ok := strings.CutSuffix(s, suffix.text); ok {
			s, unit = strings.TrimSpace(rest), suffix.unit
			break
		}
	}
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxUint64, true
		}
		return 0, false
	}
	return saturatingMul(n, unit), true
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// FormatByteSize renders n with the largest suffix that represents it
// exactly. The written form has KiB granularity, so a size that is not a
// whole number of KiB rounds up to the next KiB and reads back larger.
// Values read by ParseByteSize are always whole KiB and survive unchanged.
func FormatByteSize(n uint64) string {
	switch {
	case n == 0:
		return "0kb"
	case n%gib == 0:
		return strconv.FormatUint(n/gib, 10) + "gb"
	case n%mib == 0:
		return strconv.FormatUint(n/mib, 10) + "mb"
	case n%kib == 0:
		return strconv.FormatUint(n/kib, 10) + "kb"
	}
	return strconv.FormatUint(n/kib+1, 10) + "kb"
}
