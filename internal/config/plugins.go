package config

import (
	"maps"
	"slices"
	"strings"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// legacyPluginIDs maps retired plugin identifiers to their replacements.
var legacyPluginIDs = map[string]string{
	"builtin/filesystem":       PluginFileSystem,
	"file":                     PluginFileSystem,
	"fk":                       PluginFileSystem,
	"optional/filesystemDummy": PluginFileSystemDummy,
}

// CanonicalPluginID returns the current identifier for id.
func CanonicalPluginID(id string) string {
	if cur, ok := legacyPluginIDs[id]; ok {
		return cur
	}
	return id
}

func (p *sectionParser) parsePlugins(obj jsonvalue.Value) PluginsSettings {
	ps := DefaultPluginsSettings()
	set(&ps.CurrentFileSystemPluginID)(fieldNonEmpty(obj, "currentFileSystemPluginId"))
	set(&ps.DisabledPluginIDs)(stringItems(obj, "disabledPluginIds"))

	conf, ok := obj.Object("configurationByPluginId")
	if !ok {
		return ps
	}
	ps.ConfigurationByPluginID = make(map[string]jsonvalue.Value, conf.Len())
	for _, m := range conf.Members() {
		if m.Key == "" {
			continue
		}
		v := m.Value
		// Older builds stored each configuration as a JSON string.
		if text, ok := v.Str(); ok {
			parsed, err := jsonvalue.ParseString(text)
			if err != nil {
				p.logger.Warn("dropping undecodable plugin configuration", "plugin", m.Key, "error", err)
				continue
			}
			v = parsed
		}
		ps.ConfigurationByPluginID[m.Key] = v
	}
	return ps
}

// migratePluginIDs rewrites legacy identifiers in every field that holds
// plugin ids. When both a legacy and a current configuration key exist the
// current one is kept.
func migratePluginIDs(ps *PluginsSettings) {
	ps.CurrentFileSystemPluginID = CanonicalPluginID(ps.CurrentFileSystemPluginID)
	ps.DisabledPluginIDs = pluginIDSet(ps.DisabledPluginIDs)

	for _, id := range slices.Sorted(maps.Keys(ps.ConfigurationByPluginID)) {
		cur := CanonicalPluginID(id)
		if cur == id {
			continue
		}
		if _, exists := ps.ConfigurationByPluginID[cur]; !exists {
			ps.ConfigurationByPluginID[cur] = ps.ConfigurationByPluginID[id]
		}
		delete(ps.ConfigurationByPluginID, id)
	}
}

// pluginIDSet canonicalizes, sorts and de-duplicates ids.
func pluginIDSet(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, CanonicalPluginID(id))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func marshalPlugins(ps PluginsSettings) (jsonvalue.Value, bool) {
	o := jsonvalue.NewObjectBuilder()
	emitString(o, "currentFileSystemPluginId", ps.CurrentFileSystemPluginID, PluginFileSystem)
	if ids := pluginIDSet(ps.DisabledPluginIDs); len(ids) > 0 {
		o.Set("disabledPluginIds", stringArray(ids))
	}
	if len(ps.ConfigurationByPluginID) > 0 {
		conf := jsonvalue.NewObjectBuilder()
		for _, id := range slices.Sorted(maps.Keys(ps.ConfigurationByPluginID)) {
			conf.Set(id, ps.ConfigurationByPluginID[id])
		}
		o.Set("configurationByPluginId", conf.Build())
	}
	return o.Build(), o.Len() > 0
}

// NormalizeExtension lower-cases ext and gives it a leading dot. It returns
// "" for an empty extension.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

func parseExtensions(obj jsonvalue.Value) ExtensionsSettings {
	es := DefaultExtensionsSettings()
	viewers, ok := obj.Object("openWithViewerByExtension")
	if !ok {
		return es
	}
	es.OpenWithViewerByExtension = make(map[string]string, viewers.Len())
	for _, m := range viewers.Members() {
		ext := NormalizeExtension(m.Key)
		id, ok := m.Value.Str()
		if ext == "" || !ok || id == "" {
			continue
		}
		es.OpenWithViewerByExtension[ext] = id
	}
	return es
}

func marshalExtensions(es ExtensionsSettings) (jsonvalue.Value, bool) {
	if maps.Equal(es.OpenWithViewerByExtension, defaultViewers) {
		return jsonvalue.Value{}, false
	}
	o := jsonvalue.NewObjectBuilder().
		Set("openWithViewerByExtension", sortedStringMap(es.OpenWithViewerByExtension))
	return o.Build(), true
}
