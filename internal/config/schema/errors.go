package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Kind classifies a schema violation.
type Kind uint8

// Violation kinds.
const (
	KindConstraint Kind = iota
	KindType
	KindEnum
	KindRange
	KindPattern
	KindRequired
	KindUnknown
)

var kindNames = [...]string{"constraint", "type", "enum", "range", "pattern", "required", "unknown"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ValidationError is one violation at a settings path such as
// "folders.items[0].view.sortBy". The document root has the empty path.
type ValidationError struct {
	Path    string
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Section returns the top-level settings section the violation is in, or
// "" for the root.
func (e *ValidationError) Section() string {
	if i := strings.IndexAny(e.Path, ".["); i >= 0 {
		return e.Path[:i]
	}
	return e.Path
}

// ValidationErrors is the set of violations found in one document.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no schema violations"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d schema violations: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ValidationErrors) add(path string, kind Kind, format string, args ...any) {
	e.Errors = append(e.Errors, &ValidationError{Path: path, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of violations.
func (e *ValidationErrors) Len() int { return len(e.Errors) }

// AsError returns nil when there are no violations.
func (e *ValidationErrors) AsError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Under returns the violations at path or below it.
func (e *ValidationErrors) Under(path string) []*ValidationError {
	var out []*ValidationError
	for _, err := range e.Errors {
		rest, ok := strings.CutPrefix(err.Path, path)
		if ok && (rest == "" || rest[0] == '.' || rest[0] == '[') {
			out = append(out, err)
		}
	}
	return out
}

// Sections returns the sorted, distinct sections that have violations.
func (e *ValidationErrors) Sections() []string {
	var out []string
	for _, err := range e.Errors {
		if s := err.Section(); !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

func rangeText(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%v..%v", *min, *max)
	case min != nil:
		return fmt.Sprintf(">= %v", *min)
	case max != nil:
		return fmt.Sprintf("<= %v", *max)
	}
	return "any"
}
