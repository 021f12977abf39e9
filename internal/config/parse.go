package config

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// ParseSettings parses a settings document. Structural problems (malformed
// JSON, a non-object root, a missing or unsupported schemaVersion) return an
// error; every other problem leaves the affected field or section at its
// default. The returned aggregate always reports CurrentSchemaVersion.
func ParseSettings(data []byte) (*Settings, error) {
	return parseDocument(data, slog.Default())
}

func parseDocument(data []byte, logger *slog.Logger) (*Settings, error) {
	root, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, &ParseError{Message: "malformed JSON", Err: err}
	}
	if root.Kind() != jsonvalue.Object {
		return nil, &ParseError{Message: fmt.Sprintf("root is %s", root.Kind()), Err: ErrRootNotObject}
	}

	version, err := schemaVersion(root)
	if err != nil {
		return nil, err
	}

	p := newSectionParser(version, logger)
	s := NewSettings()
	p.parseInto(root, s)
	return s, nil
}

func schemaVersion(root jsonvalue.Value) (uint32, error) {
	raw, ok := root.Get("schemaVersion")
	if !ok {
		return 0, &ParseError{Message: "no schemaVersion", Err: ErrSchemaVersionMissing}
	}
	v, ok := raw.Uint()
	if i, signed := raw.Int(); signed && i < 0 {
		return 0, &ParseError{Message: fmt.Sprintf("schemaVersion %d is negative", i), Err: ErrUnsupportedSchemaVersion}
	}
	if !ok {
		return 0, &ParseError{Message: fmt.Sprintf("schemaVersion is a %s", raw.Kind()), Err: ErrSchemaVersionMissing}
	}
	if v < uint64(MinSchemaVersion) || v > uint64(CurrentSchemaVersion) {
		return 0, &ParseError{
			Message: fmt.Sprintf("schemaVersion %d outside [%d, %d]", v, MinSchemaVersion, CurrentSchemaVersion),
			Err:     ErrUnsupportedSchemaVersion,
		}
	}
	return uint32(v), nil
}

// sectionParser fills a Settings aggregate from a document of a given
// schema version. It does not check the version range; that is the
// document gate's job.
type sectionParser struct {
	version  uint32
	logger   *slog.Logger
	migrator *Migrator
	newID    func() string
}

func newSectionParser(version uint32, logger *slog.Logger) *sectionParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &sectionParser{
		version:  version,
		logger:   logger,
		migrator: defaultMigrator,
		newID:    uuid.NewString,
	}
}

// section returns the migrated object stored under key.
func (p *sectionParser) section(root jsonvalue.Value, key string) (jsonvalue.Value, bool) {
	raw, ok := root.Get(key)
	if !ok {
		return jsonvalue.Value{}, false
	}
	raw, ok = p.migrator.Apply(key, raw, p.version, p.logger)
	if !ok {
		return jsonvalue.Value{}, false
	}
	if raw.Kind() != jsonvalue.Object {
		p.logger.Warn("ignoring settings section of wrong type", "section", key, "kind", raw.Kind())
		return jsonvalue.Value{}, false
	}
	return raw, true
}

func (p *sectionParser) parseInto(root jsonvalue.Value, s *Settings) {
	if obj, ok := p.section(root, "windows"); ok {
		s.Windows = p.parseWindows(obj)
	}
	if obj, ok := p.section(root, "theme"); ok {
		s.Theme = p.parseTheme(obj)
	}
	if obj, ok := p.section(root, "plugins"); ok {
		s.Plugins = p.parsePlugins(obj)
	}
	migratePluginIDs(&s.Plugins)
	if obj, ok := p.section(root, "extensions"); ok {
		s.Extensions = parseExtensions(obj)
	}
	if obj, ok := p.section(root, "shortcuts"); ok {
		s.Shortcuts = p.parseShortcuts(obj)
	}
	if obj, ok := p.section(root, "cache"); ok {
		s.Cache = parseCache(obj)
	}
	if obj, ok := p.section(root, "folders"); ok {
		s.Folders = p.parseFolders(obj)
	}
	if obj, ok := p.section(root, "monitor"); ok {
		s.Monitor = parseMonitor(obj)
	}
	if obj, ok := p.section(root, "mainMenu"); ok {
		s.MainMenu = parseMainMenu(obj)
	}
	if obj, ok := p.section(root, "startup"); ok {
		s.Startup = parseStartup(obj)
	}
	if obj, ok := p.section(root, "connections"); ok {
		s.Connections = p.parseConnections(obj)
	}
	if obj, ok := p.section(root, "fileOperations"); ok {
		s.FileOperations = parseFileOperations(obj)
	}
	if obj, ok := p.section(root, "compareDirectories"); ok {
		s.CompareDirectories = parseCompareDirectories(obj)
	}
	s.SchemaVersion = CurrentSchemaVersion
}
