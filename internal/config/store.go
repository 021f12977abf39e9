package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dshills/twinpane/internal/config/loader"
	"github.com/dshills/twinpane/internal/config/paths"
	"github.com/dshills/twinpane/internal/config/schema"
	"github.com/dshills/twinpane/internal/config/watcher"
)

// DefaultCompany is the folder under the platform config root that holds
// every application's settings.
const DefaultCompany = "TwinPane"

// Store loads and saves one application's settings file.
//
// A Store takes no locks: concurrent saves from several processes, or
// several goroutines, each replace the file atomically and the last rename
// wins. Callers serialize their own edit sessions.
type Store struct {
	paths  paths.Paths
	fs     loader.FileSystem
	logger *slog.Logger
	now    func() time.Time
}

type storeConfig struct {
	root         string
	company      string
	major, minor int
	debug        bool
	fs           loader.FileSystem
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Store.
type Option func(*storeConfig)

// WithConfigRoot replaces the platform configuration directory.
func WithConfigRoot(dir string) Option {
	return func(c *storeConfig) {
		c.root = dir
	}
}

// WithCompany sets the folder under the config root. Default "TwinPane".
func WithCompany(name string) Option {
	return func(c *storeConfig) {
		c.company = name
	}
}

// WithAppVersion sets the version used in the versioned file name.
// Default 1.0.
func WithAppVersion(major, minor int) Option {
	return func(c *storeConfig) {
		c.major, c.minor = major, minor
	}
}

// WithDebug selects the debug file as the primary settings file. The
// default comes from the twinpanedebug build tag.
func WithDebug(debug bool) Option {
	return func(c *storeConfig) {
		c.debug = debug
	}
}

// WithFileSystem replaces the host file system.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *storeConfig) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithLogger sets the logger. Default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *storeConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used to name quarantined files.
func WithClock(now func() time.Time) Option {
	return func(c *storeConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewStore creates a Store for appID.
func NewStore(appID string, opts ...Option) (*Store, error) {
	c := storeConfig{
		company: DefaultCompany,
		major:   1,
		debug:   debugBuild,
		fs:      loader.DefaultFS(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}

	p, err := paths.Resolve(c.root, c.company, appID, c.major, c.minor, c.debug)
	if err != nil {
		return nil, err
	}
	return &Store{
		paths:  p,
		fs:     c.fs,
		logger: c.logger.With("app", appID),
		now:    c.now,
	}, nil
}

// Paths returns the resolved settings locations.
func (s *Store) Paths() paths.Paths {
	return s.paths
}

// Load reads the first existing candidate file. It always returns a usable
// aggregate: defaults unless the status is StatusOK.
//
// A file that is too large, unreadable as JSON, or structurally invalid is
// quarantined and reported as StatusNotFound with a nil error. Only other
// I/O failures, such as permission errors, return StatusFailed and the
// error.
func (s *Store) Load() (*Settings, Status, error) {
	for _, path := range s.paths.LoadCandidates() {
		data, err := loader.ReadBounded(s.fs, path, loader.MaxSettingsFileSize)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			continue
		case errors.Is(err, loader.ErrFileTooLarge), errors.Is(err, loader.ErrShortRead):
			s.discard(path, err)
			return NewSettings(), StatusNotFound, nil
		default:
			s.logger.Warn("failed to read settings", "path", path, "error", err)
			return NewSettings(), StatusFailed, err
		}

		settings, err := parseDocument(data, s.logger)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Path = path
			}
			s.discard(path, err)
			return NewSettings(), StatusNotFound, nil
		}
		s.logger.Debug("loaded settings", "path", path)
		return settings, StatusOK, nil
	}
	s.logger.Debug("no settings file found", "dir", s.paths.Dir)
	return NewSettings(), StatusNotFound, nil
}

func (s *Store) discard(path string, cause error) {
	s.logger.Warn("settings file is unusable, starting with defaults", "path", path, "error", cause)
	loader.Quarantine(s.fs, path, s.now(), s.logger)
}

// Save writes settings to the primary file, then writes the schema sidecar.
// A sidecar failure is logged and does not fail the save. settings is not
// modified.
func (s *Store) Save(settings *Settings) error {
	data, err := MarshalSettings(settings)
	if err != nil {
		return err
	}
	path := s.paths.Primary()
	if err := loader.WriteAtomic(s.fs, path, data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	s.logger.Debug("saved settings", "path", path, "bytes", len(data))

	if doc := schema.Document(); doc != nil {
		if err := loader.WriteAtomic(s.fs, s.paths.Schema(), doc); err != nil {
			s.logger.Warn("failed to write settings schema", "path", s.paths.Schema(), "error", err)
		}
	}
	return nil
}

// SaveSchema writes schemaJSON to the schema sidecar file.
func (s *Store) SaveSchema(schemaJSON []byte) error {
	if len(schemaJSON) == 0 {
		return ErrEmptySchema
	}
	if err := loader.WriteAtomic(s.fs, s.paths.Schema(), schemaJSON); err != nil {
		return fmt.Errorf("saving settings schema: %w", err)
	}
	return nil
}

// ReloadHandler receives the result of a reload triggered by a file change.
type ReloadHandler func(settings *Settings, status Status, err error)

// Watch reloads the settings whenever the primary file changes on disk and
// passes each result to handler. The returned watcher is running; Close it
// to stop. Watching always observes the host file system, whatever
// WithFileSystem was given.
func (s *Store) Watch(handler ReloadHandler, opts ...watcher.Option) (*watcher.Watcher, error) {
	if err := s.fs.MkdirAll(s.paths.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating settings directory: %w", err)
	}
	w, err := watcher.New(s.paths.Primary(), append([]watcher.Option{watcher.WithLogger(s.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	w.OnChange(func(e watcher.Event) {
		s.logger.Debug("settings file changed", "path", e.Path, "op", e.Op)
		handler(s.Load())
	})
	if err := w.Start(); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// LoadSettings loads appID's settings from the default location.
// err is non-nil only together with StatusFailed.
func LoadSettings(appID string) (*Settings, Status, error) {
	s, err := NewStore(appID)
	if err != nil {
		return NewSettings(), StatusFailed, err
	}
	return s.Load()
}

// SaveSettings saves settings for appID to the default location.
func SaveSettings(appID string, settings *Settings) error {
	s, err := NewStore(appID)
	if err != nil {
		return err
	}
	return s.Save(settings)
}

// SaveSettingsSchema writes the schema sidecar for appID.
func SaveSettingsSchema(appID string, schemaJSON []byte) error {
	s, err := NewStore(appID)
	if err != nil {
		return err
	}
	return s.SaveSchema(schemaJSON)
}
