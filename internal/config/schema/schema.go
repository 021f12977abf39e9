// Package schema holds the static JSON Schema describing the settings
// document and a validator for documents parsed into jsonvalue trees.
//
// The schema is embedded in the binary and read at most once per process;
// Document always returns the same bytes after the first call.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

//go:embed twinpane.settings.schema.json
var schemaFS embed.FS

const embeddedName = "twinpane.settings.schema.json"

// Schema represents a JSON Schema definition.
type Schema struct {
	ID            string `json:"$id,omitempty"`
	SchemaVersion string `json:"$schema,omitempty"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`

	// Type is the JSON type (string, number, integer, boolean, array, object, null).
	Type SchemaType `json:"type,omitempty"`

	// Properties defines object properties (for type: object).
	Properties map[string]*Schema `json:"properties,omitempty"`

	// AdditionalProperties is either a boolean or a schema for the values of
	// properties not listed in Properties.
	AdditionalProperties *Additional `json:"additionalProperties,omitempty"`

	Required []string `json:"required,omitempty"`
	Items    *Schema  `json:"items,omitempty"`
	Enum     []any    `json:"enum,omitempty"`
	Const    any      `json:"const,omitempty"`
	Default  any      `json:"default,omitempty"`

	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinItems  *int     `json:"minItems,omitempty"`
	MaxItems  *int     `json:"maxItems,omitempty"`

	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Ref references another schema ($ref), resolved against Defs.
	Ref  string             `json:"$ref,omitempty"`
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// SchemaType represents JSON Schema type(s).
// Can be a single type or an array of types.
type SchemaType struct {
	Types []string
}

// UnmarshalJSON handles both single type and array of types.
func (t *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		t.Types = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("type must be string or array of strings: %w", err)
	}
	t.Types = arr
	return nil
}

// Is checks if the schema type includes the given type.
func (t SchemaType) Is(typ string) bool {
	for _, st := range t.Types {
		if st == typ {
			return true
		}
	}
	return false
}

// IsEmpty returns true if no types are defined.
func (t SchemaType) IsEmpty() bool {
	return len(t.Types) == 0
}

// String returns the type as a string.
func (t SchemaType) String() string {
	return strings.Join(t.Types, "|")
}

// Additional is the value of additionalProperties: a boolean or a schema.
type Additional struct {
	Allowed bool
	Schema  *Schema
}

// UnmarshalJSON accepts either form.
func (a *Additional) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		a.Allowed = b
		return nil
	}
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("additionalProperties must be boolean or schema: %w", err)
	}
	a.Allowed = true
	a.Schema = s
	return nil
}

// State describes the embedded schema cache.
type State uint8

const (
	// StateNotLoaded means Document has not been called yet.
	StateNotLoaded State = iota
	// StateEmpty means the embedded document is missing or empty.
	StateEmpty
	// StateLoaded means the document is available.
	StateLoaded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

var (
	blobOnce  sync.Once
	blobData  []byte
	blobState atomic.Uint32

	parsedOnce sync.Once
	parsed     *Schema
	parsedErr  error
)

// Document returns the embedded schema document. It is read once; an
// unreadable document yields nil and StateEmpty for the rest of the process.
func Document() []byte {
	blobOnce.Do(func() {
		data, err := schemaFS.ReadFile(embeddedName)
		if err != nil || len(data) == 0 {
			blobState.Store(uint32(StateEmpty))
			return
		}
		blobData = data
		blobState.Store(uint32(StateLoaded))
	})
	return blobData
}

// CurrentState reports the cache state without loading it.
func CurrentState() State {
	return State(blobState.Load())
}

// LoadEmbedded parses the embedded schema document.
func LoadEmbedded() (*Schema, error) {
	parsedOnce.Do(func() {
		data := Document()
		if data == nil {
			parsedErr = fmt.Errorf("embedded schema %s is empty", embeddedName)
			return
		}
		parsed, parsedErr = Parse(data)
	})
	return parsed, parsedErr
}

// Parse parses a JSON Schema from bytes.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return s, nil
}
