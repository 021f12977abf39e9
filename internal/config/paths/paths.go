// Package paths resolves where an application's settings live:
//
//	<config-root>/<company>/Settings/<app>-<major>.<minor>.settings.json
//	<config-root>/<company>/Settings/<app>.settings.json          (legacy)
//	<config-root>/<company>/Settings/<app>-debug.settings.json    (debug builds)
//	<config-root>/<company>/Settings/<app>.settings.schema.json   (schema sidecar)
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SettingsDirName is the directory under the company folder.
	SettingsDirName = "Settings"

	// SettingsSuffix terminates every settings file name.
	SettingsSuffix = ".settings.json"

	// SchemaSuffix terminates the schema sidecar file name.
	SchemaSuffix = ".settings.schema.json"
)

// ErrInvalidAppID indicates an empty or path-like application identifier.
var ErrInvalidAppID = errors.New("invalid application id")

// ConfigRoot resolves the base platform-specific configuration directory.
// It is a variable so tests and embedders can replace the platform lookup.
var ConfigRoot = os.UserConfigDir

// Paths is the resolved set of settings locations for one application.
type Paths struct {
	// Dir is the settings directory.
	Dir string
	// App is the application identifier used in file names.
	App string
	// Major and Minor qualify the versioned file name.
	Major, Minor int
	// Debug selects the debug file as the primary name.
	Debug bool
}

// Resolve builds Paths under root/company/Settings. An empty root resolves
// through ConfigRoot.
func Resolve(root, company, app string, major, minor int, debug bool) (Paths, error) {
	if err := validateComponent(app); err != nil {
		return Paths{}, err
	}
	if err := validateComponent(company); err != nil {
		return Paths{}, fmt.Errorf("company: %w", err)
	}
	if root == "" {
		r, err := ConfigRoot()
		if err != nil {
			return Paths{}, fmt.Errorf("resolving config root: %w", err)
		}
		root = r
	}
	return Paths{
		Dir:   filepath.Join(root, company, SettingsDirName),
		App:   app,
		Major: major,
		Minor: minor,
		Debug: debug,
	}, nil
}

func validateComponent(s string) error {
	if strings.TrimSpace(s) == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidAppID, s)
	}
	return nil
}

// Versioned returns <app>-<major>.<minor>.settings.json.
func (p Paths) Versioned() string {
	return filepath.Join(p.Dir, fmt.Sprintf("%s-%d.%d%s", p.App, p.Major, p.Minor, SettingsSuffix))
}

// Legacy returns <app>.settings.json.
func (p Paths) Legacy() string {
	return filepath.Join(p.Dir, p.App+SettingsSuffix)
}

// DebugFile returns <app>-debug.settings.json.
func (p Paths) DebugFile() string {
	return filepath.Join(p.Dir, p.App+"-debug"+SettingsSuffix)
}

// Schema returns the schema sidecar path.
func (p Paths) Schema() string {
	return filepath.Join(p.Dir, p.App+SchemaSuffix)
}

// Primary returns the file written by saves for the current build mode.
func (p Paths) Primary() string {
	if p.Debug {
		return p.DebugFile()
	}
	return p.Versioned()
}

// LoadCandidates returns the files a load tries, in order: the primary
// name, then (debug only) the versioned name, then the legacy name.
func (p Paths) LoadCandidates() []string {
	candidates := []string{p.Primary()}
	if p.Debug {
		candidates = append(candidates, p.Versioned())
	}
	return append(candidates, p.Legacy())
}
