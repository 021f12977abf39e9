package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single type", `"string"`, []string{"string"}},
		{"array types", `["string", "integer"]`, []string{"string", "integer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st SchemaType
			require.NoError(t, json.Unmarshal([]byte(tt.input), &st))
			assert.Equal(t, tt.expected, st.Types)
		})
	}

	var st SchemaType
	assert.Error(t, json.Unmarshal([]byte(`42`), &st))
}

func TestSchemaType_Helpers(t *testing.T) {
	st := SchemaType{Types: []string{"string", "null"}}
	assert.True(t, st.Is("null"))
	assert.False(t, st.Is("number"))
	assert.False(t, st.IsEmpty())
	assert.Equal(t, "string|null", st.String())
	assert.True(t, SchemaType{}.IsEmpty())
}

func TestAdditional_UnmarshalJSON(t *testing.T) {
	var a Additional
	require.NoError(t, json.Unmarshal([]byte(`false`), &a))
	assert.False(t, a.Allowed)
	assert.Nil(t, a.Schema)

	require.NoError(t, json.Unmarshal([]byte(`{"type": "string"}`), &a))
	assert.True(t, a.Allowed)
	require.NotNil(t, a.Schema)
	assert.True(t, a.Schema.Type.Is("string"))
}

func TestDocument_LoadedOnce(t *testing.T) {
	first := Document()
	require.NotEmpty(t, first)
	assert.Equal(t, StateLoaded, CurrentState())

	second := Document()
	assert.Same(t, &first[0], &second[0], "document must not be re-read")
}

func TestLoadEmbedded(t *testing.T) {
	s, err := LoadEmbedded()
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.True(t, s.Type.Is("object"))
	assert.Contains(t, s.Required, "schemaVersion")
	for _, section := range []string{
		"windows", "theme", "plugins", "extensions", "shortcuts", "cache", "folders",
		"monitor", "mainMenu", "startup", "connections", "fileOperations", "compareDirectories",
	} {
		assert.Contains(t, s.Properties, section)
	}
	assert.Contains(t, s.Defs, "shortcutBinding")

	again, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"type": 12}`))
	assert.Error(t, err)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not_loaded", StateNotLoaded.String())
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "unknown", State(9).String())
}
