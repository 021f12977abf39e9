package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// MaxDepth bounds the nesting of arrays and objects accepted by Parse.
const MaxDepth = 256

var (
	// ErrSyntax indicates the input is not a JSON document.
	ErrSyntax = errors.New("invalid JSON")

	// ErrTooDeep indicates the document nests deeper than MaxDepth.
	ErrTooDeep = errors.New("JSON nesting too deep")

	// ErrNotFinite indicates a NaN or infinite double, which JSON cannot hold.
	ErrNotFinite = errors.New("non-finite number")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse parses a JSON document. A leading UTF-8 byte-order mark, comments
// and trailing commas are accepted.
func Parse(data []byte) (Value, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return Value{}, ErrSyntax
	}
	return convert(gjson.ParseBytes(clean), 0)
}

// ParseString is Parse for string input.
func ParseString(text string) (Value, error) {
	return Parse([]byte(text))
}

// convert walks the gjson node tree. Children are collected before their
// parent is wrapped, so a failing child aborts without a partial tree.
func convert(r gjson.Result, depth int) (Value, error) {
	switch r.Type {
	case gjson.Null:
		return Value{}, nil
	case gjson.False:
		return BoolValue(false), nil
	case gjson.True:
		return BoolValue(true), nil
	case gjson.Number:
		return parseNumber(r.Raw)
	case gjson.String:
		return StringValue(strings.Clone(r.Str)), nil
	case gjson.JSON:
		if depth >= MaxDepth {
			return Value{}, ErrTooDeep
		}
		if r.IsArray() {
			return convertArray(r, depth)
		}
		if r.IsObject() {
			return convertObject(r, depth)
		}
	}
	return Value{}, fmt.Errorf("%w: unexpected token %q", ErrSyntax, r.Raw)
}

func convertArray(r gjson.Result, depth int) (Value, error) {
	items := []Value{}
	var err error
	r.ForEach(func(_, item gjson.Result) bool {
		var v Value
		v, err = convert(item, depth+1)
		if err != nil {
			return false
		}
		items = append(items, v)
		return true
	})
	if err != nil {
		return Value{}, err
	}
	return Value{kind: Array, arr: &items}, nil
}

func convertObject(r gjson.Result, depth int) (Value, error) {
	members := []Member{}
	var err error
	r.ForEach(func(key, item gjson.Result) bool {
		var v Value
		v, err = convert(item, depth+1)
		if err != nil {
			return false
		}
		members = append(members, Member{Key: strings.Clone(key.String()), Value: v})
		return true
	})
	if err != nil {
		return Value{}, err
	}
	return Value{kind: Object, obj: &members}, nil
}

// parseNumber picks the representation from the literal text: integers
// become Int64 (or UInt64 above MaxInt64), anything with a fraction or
// exponent, and integers beyond 64 bits, become Double.
func parseNumber(raw string) (Value, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if strings.HasPrefix(raw, "-") {
			if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return IntValue(i), nil
			}
		} else if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return UintValue(u), nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, fmt.Errorf("%w: bad number %q", ErrSyntax, raw)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("%w: %q", ErrNotFinite, raw)
	}
	return DoubleValue(f), nil
}
