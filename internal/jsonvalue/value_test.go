package jsonvalue

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"null", Null},
		{"true", Bool},
		{"false", Bool},
		{"42", Int64},
		{"-7", Int64},
		{"18446744073709551615", UInt64},
		{"1.5", Double},
		{"1e3", Double},
		{`"hi"`, String},
		{"[]", Array},
		{"{}", Object},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestParse_NumbersNeverTruncate(t *testing.T) {
	v, err := ParseString("9223372036854775808")
	require.NoError(t, err)
	u, ok := v.Uint()
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxInt64)+1, u)
	_, ok = v.Int()
	assert.False(t, ok, "uint64 beyond int64 range must not convert to int64")

	v, err = ParseString("2.75")
	require.NoError(t, err)
	_, ok = v.Int()
	assert.False(t, ok, "double must not convert to int")
	f, ok := v.Float()
	require.True(t, ok)
	assert.Equal(t, 2.75, f)

	v, err = ParseString("-123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, Double, v.Kind())
}

func TestParse_CommentsTrailingCommasAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + `{
		// line comment
		"a": 1, /* block */
		"b": [1, 2, 3,],
	}`
	v, err := ParseString(input)
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)
	n, _ := a.Int()
	assert.Equal(t, int64(1), n)

	b, ok := v.ArrayAt("b")
	require.True(t, ok)
	assert.Equal(t, 3, b.Len())
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "{", `{"a":}`, "[1 2]", "nope", `{"a":1} trailing`} {
		_, err := ParseString(input)
		assert.ErrorIs(t, err, ErrSyntax, "input %q", input)
	}
}

func TestParse_TooDeep(t *testing.T) {
	input := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err := ParseString(input)
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestObject_OrderAndDuplicates(t *testing.T) {
	v, err := ParseString(`{"z":1,"a":2,"z":3}`)
	require.NoError(t, err)

	members := v.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "z", members[0].Key)
	assert.Equal(t, "a", members[1].Key)
	assert.Equal(t, "z", members[2].Key)

	z, ok := v.Get("z")
	require.True(t, ok)
	n, _ := z.Int()
	assert.Equal(t, int64(3), n, "last duplicate wins")
}

func TestStrings_Unescaped(t *testing.T) {
	v, err := ParseString(`{"k\"ey":"line\nnext é"}`)
	require.NoError(t, err)
	s, ok := v.Get(`k"ey`)
	require.True(t, ok)
	str, _ := s.Str()
	assert.Equal(t, "line\nnext é", str)
}

func TestSerialize_RoundTrip(t *testing.T) {
	input := `{"a":[1,-2,3.5,"x\ty",true,false,null],"b":{"c":18446744073709551615},"d":1.0}`
	v, err := ParseString(input)
	require.NoError(t, err)

	out, err := Serialize(v)
	require.NoError(t, err)
	assert.Equal(t, input, out)

	again, err := ParseString(out)
	require.NoError(t, err)
	assert.True(t, Equal(v, again))
}

func TestSerialize_NonFinite(t *testing.T) {
	_, err := Serialize(ArrayValue(DoubleValue(math.Inf(1))))
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestSerialize_ControlCharacters(t *testing.T) {
	out, err := Serialize(StringValue("a\x01b\\"))
	require.NoError(t, err)
	assert.Equal(t, `"a\u0001b\\"`, out)
}

func TestPretty_TwoSpaceIndent(t *testing.T) {
	v := NewObjectBuilder().
		Set("schemaVersion", IntValue(9)).
		Set("nested", NewObjectBuilder().Set("flag", BoolValue(true)).Build()).
		Build()

	out, err := Pretty(v)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, "\n  \"schemaVersion\": 9,")
	assert.Contains(t, text, "\n    \"flag\": true")
	assert.Less(t, strings.Index(text, "schemaVersion"), strings.Index(text, "nested"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(IntValue(5), UintValue(5)))
	assert.True(t, Equal(IntValue(2), DoubleValue(2)))
	assert.False(t, Equal(IntValue(2), StringValue("2")))
	assert.False(t, Equal(
		ObjectValue(Member{Key: "a", Value: IntValue(1)}),
		ObjectValue(Member{Key: "b", Value: IntValue(1)}),
	))
	assert.True(t, Equal(NullValue(), Value{}))
}

func TestArrayValue_CopiesInput(t *testing.T) {
	items := []Value{IntValue(1)}
	v := ArrayValue(items...)
	items[0] = IntValue(99)

	first, ok := v.Index(0)
	require.True(t, ok)
	n, _ := first.Int()
	assert.Equal(t, int64(1), n)
}

func TestInterface(t *testing.T) {
	v, err := ParseString(`{"a":[1,"b"],"c":{"d":false}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": []any{int64(1), "b"},
		"c": map[string]any{"d": false},
	}, v.Interface())
}
