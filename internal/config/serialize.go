package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

const utf8BOM = "\xEF\xBB\xBF"

// MarshalSettings renders s as it is stored on disk: a UTF-8 byte-order
// mark, two-space indented JSON and a trailing newline. Only fields that
// differ from their defaults are written; a section with nothing to write
// is omitted. The output depends only on the values in s, so equal
// aggregates produce identical bytes.
func MarshalSettings(s *Settings) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSettings
	}
	body, err := jsonvalue.Pretty(BuildDocument(s))
	if err != nil {
		return nil, fmt.Errorf("serializing settings: %w", err)
	}
	return append([]byte(utf8BOM), body...), nil
}

// BuildDocument returns the JSON tree MarshalSettings writes. schemaVersion
// is always CurrentSchemaVersion, whatever s.SchemaVersion holds.
func BuildDocument(s *Settings) jsonvalue.Value {
	root := jsonvalue.NewObjectBuilder().
		Set("schemaVersion", jsonvalue.UintValue(uint64(CurrentSchemaVersion)))
	put := func(key string) func(jsonvalue.Value, bool) {
		return func(v jsonvalue.Value, ok bool) {
			if ok {
				root.Set(key, v)
			}
		}
	}

	put("windows")(marshalWindows(s.Windows))
	put("theme")(marshalTheme(s.Theme))
	put("plugins")(marshalPlugins(s.Plugins))
	put("extensions")(marshalExtensions(s.Extensions))
	if s.Shortcuts != nil {
		put("shortcuts")(marshalShortcuts(s.Shortcuts))
	}
	if s.Cache != nil {
		put("cache")(marshalCache(s.Cache))
	}
	if s.Folders != nil {
		put("folders")(marshalFolders(s.Folders))
	}
	if s.Monitor != nil {
		put("monitor")(marshalMonitor(s.Monitor))
	}
	if s.MainMenu != nil {
		put("mainMenu")(marshalMainMenu(s.MainMenu))
	}
	if s.Startup != nil {
		put("startup")(marshalStartup(s.Startup))
	}
	if s.Connections != nil {
		put("connections")(marshalConnections(s.Connections))
	}
	if s.FileOperations != nil {
		put("fileOperations")(marshalFileOperations(s.FileOperations))
	}
	if s.CompareDirectories != nil {
		put("compareDirectories")(marshalCompareDirectories(s.CompareDirectories))
	}
	return root.Build()
}

func emitBool(o *jsonvalue.ObjectBuilder, key string, v, def bool) {
	if v != def {
		o.Set(key, jsonvalue.BoolValue(v))
	}
}

func emitString[T ~string](o *jsonvalue.ObjectBuilder, key string, v, def T) {
	if v != def {
		o.Set(key, jsonvalue.StringValue(string(v)))
	}
}

func emitUint[T ~uint8 | ~uint16 | ~uint32 | ~uint64](o *jsonvalue.ObjectBuilder, key string, v, def T) {
	if v != def {
		o.Set(key, jsonvalue.UintValue(uint64(v)))
	}
}

// emitObject nests a child object when it has members.
func emitObject(o *jsonvalue.ObjectBuilder, key string, child *jsonvalue.ObjectBuilder) {
	if child.Len() > 0 {
		o.Set(key, child.Build())
	}
}

func stringArray(items []string) jsonvalue.Value {
	vals := make([]jsonvalue.Value, len(items))
	for i, s := range items {
		vals[i] = jsonvalue.StringValue(s)
	}
	return jsonvalue.ArrayValue(vals...)
}

// sortedStringMap renders m as an object with keys in lexicographic order.
func sortedStringMap(m map[string]string) jsonvalue.Value {
	o := jsonvalue.NewObjectBuilder()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		o.Set(k, jsonvalue.StringValue(m[k]))
	}
	return o.Build()
}
