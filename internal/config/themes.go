package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/twinpane/internal/config/loader"
	"github.com/dshills/twinpane/internal/jsonvalue"
)

const (
	// ThemeFileSuffix selects theme files in a theme directory. It is
	// matched case-insensitively.
	ThemeFileSuffix = ".theme.json"

	// MaxThemeFileSize caps a single theme file.
	MaxThemeFileSize = 1 << 20
)

func (p *sectionParser) parseTheme(obj jsonvalue.Value) ThemeSettings {
	t := DefaultThemeSettings()
	set(&t.CurrentThemeID)(fieldNonEmpty(obj, "currentThemeId"))

	arr, ok := obj.ArrayAt("themes")
	if !ok {
		return t
	}
	seen := make(map[string]bool, arr.Len())
	for i, item := range arr.Items() {
		def, err := parseThemeDefinition(item)
		if err == nil && seen[def.ID] {
			err = fmt.Errorf("duplicate theme id %q", def.ID)
		}
		if err != nil {
			p.logger.Warn("dropping theme definition", "index", i, "error", err)
			continue
		}
		seen[def.ID] = true
		t.Themes = append(t.Themes, def)
	}
	return t
}

func parseThemeDefinition(v jsonvalue.Value) (ThemeDefinition, error) {
	if v.Kind() != jsonvalue.Object {
		return ThemeDefinition{}, fmt.Errorf("theme is %s, not an object", v.Kind())
	}
	var def ThemeDefinition
	id, ok := fieldNonEmpty(v, "id")
	if !ok {
		return ThemeDefinition{}, errors.New("theme has no id")
	}
	if strings.HasPrefix(id, builtinPrefix) {
		return ThemeDefinition{}, fmt.Errorf("theme id %q uses the reserved %q prefix", id, builtinPrefix)
	}
	def.ID = id

	base, _ := fieldString(v, "baseThemeId")
	if !IsBuiltinTheme(base) {
		return ThemeDefinition{}, fmt.Errorf("theme %q: base theme %q is not built in", id, base)
	}
	def.BaseThemeID = base
	set(&def.Name)(fieldString(v, "name"))

	if colors, ok := v.Object("colors"); ok {
		def.Colors = make(map[string]uint32, colors.Len())
		for _, m := range colors.Members() {
			s, _ := m.Value.Str()
			if c, ok := TryParseColor(s); ok && m.Key != "" {
				def.Colors[m.Key] = c
			}
		}
	}
	return def, nil
}

func marshalTheme(t ThemeSettings) (jsonvalue.Value, bool) {
	o := jsonvalue.NewObjectBuilder()
	emitString(o, "currentThemeId", t.CurrentThemeID, ThemeSystem)
	if len(t.Themes) > 0 {
		items := make([]jsonvalue.Value, 0, len(t.Themes))
		for _, def := range t.Themes {
			items = append(items, themeDefinitionValue(def))
		}
		o.Set("themes", jsonvalue.ArrayValue(items...))
	}
	return o.Build(), o.Len() > 0
}

func themeDefinitionValue(def ThemeDefinition) jsonvalue.Value {
	o := jsonvalue.NewObjectBuilder().Set("id", jsonvalue.StringValue(def.ID))
	emitString(o, "name", def.Name, "")
	o.Set("baseThemeId", jsonvalue.StringValue(def.BaseThemeID))
	if len(def.Colors) > 0 {
		colors := jsonvalue.NewObjectBuilder()
		for _, k := range slices.Sorted(maps.Keys(def.Colors)) {
			colors.Set(k, jsonvalue.StringValue(FormatColor(def.Colors[k])))
		}
		o.Set("colors", colors.Build())
	}
	return o.Build()
}

// LoadThemeDefinitionsFromDirectory loads every theme file in dir using the
// host file system. See LoadThemeDefinitions.
func LoadThemeDefinitionsFromDirectory(dir string) ([]ThemeDefinition, error) {
	return LoadThemeDefinitions(loader.DefaultFS(), dir, slog.Default())
}

// LoadThemeDefinitions scans dir (not recursively) for *.theme.json files
// and parses each in ordinal file name order. A file that cannot be read or
// parsed, or whose id was already loaded from an earlier file, is logged and
// skipped. A missing directory yields no themes and no error.
func LoadThemeDefinitions(fsys loader.FileSystem, dir string, logger *slog.Logger) ([]ThemeDefinition, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("theme directory not found", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("reading theme directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ThemeFileSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	var themes []ThemeDefinition
	seen := make(map[string]string, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		def, err := loadThemeFile(fsys, path)
		if err != nil {
			logger.Warn("skipping theme file", "path", path, "error", err)
			continue
		}
		if first, dup := seen[def.ID]; dup {
			logger.Warn("skipping theme file with duplicate id", "path", path, "id", def.ID, "first", first)
			continue
		}
		seen[def.ID] = name
		themes = append(themes, def)
	}
	if len(themes) == 0 {
		logger.Debug("no themes found", "dir", dir)
	}
	return themes, nil
}

func loadThemeFile(fsys loader.FileSystem, path string) (ThemeDefinition, error) {
	data, err := loader.ReadBounded(fsys, path, MaxThemeFileSize)
	if err != nil {
		return ThemeDefinition{}, err
	}
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return ThemeDefinition{}, err
	}
	return parseThemeDefinition(v)
}
