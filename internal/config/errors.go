package config

import (
	"errors"
	"fmt"
)

// Errors returned by settings operations.
var (
	// ErrRootNotObject indicates the settings document is not a JSON object.
	ErrRootNotObject = errors.New("settings root is not an object")

	// ErrSchemaVersionMissing indicates schemaVersion is absent or not an
	// unsigned integer.
	ErrSchemaVersionMissing = errors.New("schemaVersion missing or not an integer")

	// ErrUnsupportedSchemaVersion indicates schemaVersion is outside the
	// loadable range.
	ErrUnsupportedSchemaVersion = errors.New("unsupported schemaVersion")

	// ErrNilSettings indicates a save was attempted with a nil aggregate.
	ErrNilSettings = errors.New("nil settings")

	// ErrEmptySchema indicates an empty schema document was passed to a save.
	ErrEmptySchema = errors.New("empty schema document")
)

// ParseError represents a structural failure while parsing a settings file.
// Structural failures abandon the whole document.
type ParseError struct {
	// Path is the file path that failed to parse, when known.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "settings"
	}
	if e.Err != nil {
		return fmt.Sprintf("parse error in %s: %s: %v", where, e.Message, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %s", where, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Status is the outcome of a load.
type Status uint8

const (
	// StatusOK means a settings file was found and parsed.
	StatusOK Status = iota
	// StatusNotFound means no usable settings file exists. The returned
	// aggregate holds defaults. Corrupt files end up here after quarantine.
	StatusNotFound
	// StatusFailed means an I/O error other than absence stopped the load.
	StatusFailed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
