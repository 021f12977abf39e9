package config

import (
	"math"
	"slices"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// Field readers return ok == false when a field is absent or unusable.
// Callers keep their default in that case; a bad field never fails the
// section it belongs to.

func fieldBool(obj jsonvalue.Value, key string) (bool, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return false, false
	}
	return v.Bool()
}

func fieldString(obj jsonvalue.Value, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	return v.Str()
}

// fieldNonEmpty is fieldString rejecting the empty string.
func fieldNonEmpty(obj jsonvalue.Value, key string) (string, bool) {
	s, ok := fieldString(obj, key)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// fieldUint32 reads a non-negative integer and clamps it into [lo, hi].
func fieldUint32(obj jsonvalue.Value, key string, lo, hi uint32) (uint32, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return 0, false
	}
	u, ok := v.Uint()
	if !ok {
		return 0, false
	}
	return uint32(min(max(u, uint64(lo)), uint64(hi))), true
}

// fieldInt reads a signed integer that fits in 32 bits.
func fieldInt(obj jsonvalue.Value, key string) (int, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.Int()
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int(i), true
}

func fieldEnum[T ~string](obj jsonvalue.Value, key string, allowed ...T) (T, bool) {
	s, ok := fieldString(obj, key)
	if !ok || !slices.Contains(allowed, T(s)) {
		return "", false
	}
	return T(s), true
}

// set returns a function storing v into dst when ok is true, so that
// set(&dst)(fieldX(obj, key)) reads as one assignment.
func set[T any](dst *T) func(v T, ok bool) {
	return func(v T, ok bool) {
		if ok {
			*dst = v
		}
	}
}

// stringItems returns the non-empty strings of an array member.
func stringItems(obj jsonvalue.Value, key string) ([]string, bool) {
	arr, ok := obj.ArrayAt(key)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, arr.Len())
	for _, item := range arr.Items() {
		if s, ok := item.Str(); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, true
}
