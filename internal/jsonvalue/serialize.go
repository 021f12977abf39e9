package jsonvalue

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tidwall/pretty"
)

// Serialize returns the compact JSON text of v.
func Serialize(v Value) (string, error) {
	buf, err := AppendCompact(nil, v)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Pretty returns v pretty-printed with two-space indentation and a trailing
// newline. Member order is preserved.
func Pretty(v Value) ([]byte, error) {
	compact, err := AppendCompact(nil, v)
	if err != nil {
		return nil, err
	}
	out := pretty.PrettyOptions(compact, &pretty.Options{Indent: "  "})
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

// AppendCompact appends the compact JSON text of v to dst.
func AppendCompact(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case Null:
		return append(dst, "null"...), nil
	case Bool:
		return strconv.AppendBool(dst, v.b), nil
	case Int64:
		return strconv.AppendInt(dst, v.i, 10), nil
	case UInt64:
		return strconv.AppendUint(dst, v.u, 10), nil
	case Double:
		return appendDouble(dst, v.f)
	case String:
		return appendString(dst, v.s), nil
	case Array:
		dst = append(dst, '[')
		for i, item := range *v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = AppendCompact(dst, item); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case Object:
		dst = append(dst, '{')
		for i, m := range *v.obj {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			var err error
			if dst, err = AppendCompact(dst, m.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return dst, nil
}

// appendDouble keeps a fraction or exponent in the output so the value
// parses back as a Double.
func appendDouble(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrNotFinite
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	for _, c := range dst[start:] {
		if c == '.' || c == 'e' || c == 'E' {
			return dst, nil
		}
	}
	return append(dst, ".0"...), nil
}

const hexDigits = "0123456789abcdef"

func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				dst = append(dst, '\\', c)
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c < 0x20:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			default:
				dst = append(dst, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, `\ufffd`...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}
