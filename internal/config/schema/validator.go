package schema

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// Validator validates settings documents against a schema.
type Validator struct {
	schema *Schema

	strictMode bool // Fail on unknown properties
	maxErrors  int  // Maximum errors to collect (0 = unlimited)

	patternCache sync.Map // map[string]*regexp.Regexp
}

// NewValidator creates a validator for the given schema.
func NewValidator(schema *Schema) *Validator {
	return &Validator{
		schema:    schema,
		maxErrors: 100,
	}
}

// WithStrictMode makes members that an object schema neither declares nor
// explicitly allows through additionalProperties an error.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// WithMaxErrors sets the maximum number of errors to collect.
func (v *Validator) WithMaxErrors(max int) *Validator {
	v.maxErrors = max
	return v
}

// Validate validates a document against the schema.
func (v *Validator) Validate(doc jsonvalue.Value) error {
	if v.schema == nil {
		return nil
	}

	errs := &ValidationErrors{}
	v.validateValue("", doc, v.schema, errs)
	return errs.AsError()
}

func (v *Validator) validateValue(path string, value jsonvalue.Value, schema *Schema, errs *ValidationErrors) {
	if schema == nil || (v.maxErrors > 0 && errs.Len() >= v.maxErrors) {
		return
	}

	if schema.Ref != "" {
		if ref := v.resolveRef(schema.Ref); ref != nil {
			v.validateValue(path, value, ref, errs)
		} else {
			errs.add(path, KindConstraint, "unresolved reference %s", schema.Ref)
		}
		return
	}

	if len(schema.AnyOf) > 0 {
		matched := false
		for _, s := range schema.AnyOf {
			if v.matches(path, value, s) {
				matched = true
				break
			}
		}
		if !matched {
			errs.add(path, KindConstraint, "matches none of the allowed shapes")
		}
	}

	if len(schema.OneOf) > 0 {
		count := 0
		for _, s := range schema.OneOf {
			if v.matches(path, value, s) {
				count++
			}
		}
		switch {
		case count == 0:
			errs.add(path, KindConstraint, "matches none of the allowed shapes")
		case count > 1:
			errs.add(path, KindConstraint, "matches %d shapes, want exactly one", count)
		}
	}

	if schema.Const != nil && !valuesEqual(value, schema.Const) {
		errs.add(path, KindConstraint, "must be %v", schema.Const)
	}

	if len(schema.Enum) > 0 {
		found := false
		for _, a := range schema.Enum {
			if valuesEqual(value, a) {
				found = true
				break
			}
		}
		if !found {
			errs.add(path, KindEnum, "%v is not one of %v", value.Interface(), schema.Enum)
		}
	}

	if !schema.Type.IsEmpty() {
		v.validateType(path, value, schema, errs)
	}
}

func (v *Validator) matches(path string, value jsonvalue.Value, schema *Schema) bool {
	var scratch ValidationErrors
	v.validateValue(path, value, schema, &scratch)
	return scratch.Len() == 0
}

func (v *Validator) validateType(path string, value jsonvalue.Value, schema *Schema, errs *ValidationErrors) {
	for _, typ := range schema.Type.Types {
		if !matchesType(value, typ) {
			continue
		}
		switch typ {
		case "string":
			s, _ := value.Str()
			v.validateString(path, s, schema, errs)
		case "number", "integer":
			v.validateNumber(path, value, schema, errs)
		case "array":
			v.validateArray(path, value, schema, errs)
		case "object":
			v.validateObject(path, value, schema, errs)
		}
		return
	}
	errs.add(path, KindType, "want %s, have %s", schema.Type, value.Kind())
}

func matchesType(value jsonvalue.Value, typ string) bool {
	switch typ {
	case "string":
		return value.Kind() == jsonvalue.String
	case "number":
		return value.IsNumber()
	case "integer":
		switch value.Kind() {
		case jsonvalue.Int64, jsonvalue.UInt64:
			return true
		case jsonvalue.Double:
			f, _ := value.Float()
			return f == math.Trunc(f)
		}
		return false
	case "boolean":
		return value.Kind() == jsonvalue.Bool
	case "array":
		return value.Kind() == jsonvalue.Array
	case "object":
		return value.Kind() == jsonvalue.Object
	case "null":
		return value.IsNull()
	}
	return false
}

func (v *Validator) validateString(path, value string, schema *Schema, errs *ValidationErrors) {
	n := utf8.RuneCountInString(value)
	if schema.MinLength != nil && n < *schema.MinLength {
		errs.add(path, KindRange, "%d characters, minimum %d", n, *schema.MinLength)
	}
	if schema.MaxLength != nil && n > *schema.MaxLength {
		errs.add(path, KindRange, "%d characters, maximum %d", n, *schema.MaxLength)
	}
	if schema.Pattern != "" && !v.matchPattern(value, schema.Pattern) {
		errs.add(path, KindPattern, "%q does not match %s", value, schema.Pattern)
	}
}

func (v *Validator) validateNumber(path string, value jsonvalue.Value, schema *Schema, errs *ValidationErrors) {
	f, _ := value.Float()
	if (schema.Minimum != nil && f < *schema.Minimum) || (schema.Maximum != nil && f > *schema.Maximum) {
		errs.add(path, KindRange, "%v is outside %s", value.Interface(), rangeText(schema.Minimum, schema.Maximum))
	}
}

func (v *Validator) validateArray(path string, value jsonvalue.Value, schema *Schema, errs *ValidationErrors) {
	n := value.Len()
	if schema.MinItems != nil && n < *schema.MinItems {
		errs.add(path, KindRange, "%d items, minimum %d", n, *schema.MinItems)
	}
	if schema.MaxItems != nil && n > *schema.MaxItems {
		errs.add(path, KindRange, "%d items, maximum %d", n, *schema.MaxItems)
	}
	if schema.Items == nil {
		return
	}
	for i, item := range value.Items() {
		v.validateValue(fmt.Sprintf("%s[%d]", path, i), item, schema.Items, errs)
	}
}

func (v *Validator) validateObject(path string, value jsonvalue.Value, schema *Schema, errs *ValidationErrors) {
	for _, req := range schema.Required {
		if _, ok := value.Get(req); !ok {
			errs.add(joinPath(path, req), KindRequired, "missing")
		}
	}

	for _, m := range value.Members() {
		propPath := joinPath(path, m.Key)
		if propSchema, ok := schema.Properties[m.Key]; ok {
			v.validateValue(propPath, m.Value, propSchema, errs)
			continue
		}
		add := schema.AdditionalProperties
		switch {
		case add != nil && add.Schema != nil:
			v.validateValue(propPath, m.Value, add.Schema, errs)
		case add == nil && v.strictMode, add != nil && !add.Allowed:
			errs.add(propPath, KindUnknown, "not a known setting")
		}
	}
}

// resolveRef resolves #/$defs/Name references.
func (v *Validator) resolveRef(ref string) *Schema {
	if v.schema == nil || v.schema.Defs == nil {
		return nil
	}
	if name, ok := strings.CutPrefix(ref, "#/$defs/"); ok {
		return v.schema.Defs[name]
	}
	return nil
}

func (v *Validator) matchPattern(value, pattern string) bool {
	if cached, ok := v.patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp).MatchString(value)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}

	v.patternCache.Store(pattern, re)
	return re.MatchString(value)
}

// valuesEqual compares a document value with a constant decoded by
// encoding/json (nil, bool, float64, string, []any, map[string]any).
func valuesEqual(value jsonvalue.Value, want any) bool {
	switch w := want.(type) {
	case nil:
		return value.IsNull()
	case bool:
		b, ok := value.Bool()
		return ok && b == w
	case float64:
		f, ok := value.Float()
		return ok && f == w
	case string:
		s, ok := value.Str()
		return ok && s == w
	case []any:
		items := value.Items()
		if value.Kind() != jsonvalue.Array || len(items) != len(w) {
			return false
		}
		for i := range items {
			if !valuesEqual(items[i], w[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		if value.Kind() != jsonvalue.Object || len(value.Interface().(map[string]any)) != len(w) {
			return false
		}
		for k, wv := range w {
			got, ok := value.Get(k)
			if !ok || !valuesEqual(got, wv) {
				return false
			}
		}
		return true
	}
	return false
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
