package config

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// CommandPrefix is the namespace every bound command id starts with.
const CommandPrefix = "cmd/"

var shortcutLists = []string{"functionBar", "folderView"}

func (p *sectionParser) parseShortcuts(obj jsonvalue.Value) *ShortcutsSettings {
	s := &ShortcutsSettings{}
	s.FunctionBar = p.parseBindings(obj, "functionBar")
	s.FolderView = p.parseBindings(obj, "folderView")
	return s
}

func (p *sectionParser) parseBindings(obj jsonvalue.Value, key string) []ShortcutBinding {
	arr, ok := obj.ArrayAt(key)
	if !ok {
		return nil
	}
	var out []ShortcutBinding
	for i, item := range arr.Items() {
		b, ok := parseBinding(item)
		if !ok {
			p.logger.Warn("dropping malformed shortcut binding", "list", key, "index", i)
			continue
		}
		out = append(out, b)
	}
	return out
}

// parseBinding reads the symbolic format: {"vk": "F5", "ctrl": true, ...}.
// A numeric vk is still accepted here; a string vk next to a numeric
// "modifiers" is not, since that mix only comes from a half-migrated file.
func parseBinding(v jsonvalue.Value) (ShortcutBinding, bool) {
	if v.Kind() != jsonvalue.Object {
		return ShortcutBinding{}, false
	}
	cmd, ok := fieldString(v, "commandId")
	if !ok || !strings.HasPrefix(cmd, CommandPrefix) {
		return ShortcutBinding{}, false
	}

	raw, ok := v.Get("vk")
	if !ok {
		return ShortcutBinding{}, false
	}
	var vk uint8
	switch raw.Kind() {
	case jsonvalue.String:
		if m, ok := v.Get("modifiers"); ok && m.IsNumber() {
			return ShortcutBinding{}, false
		}
		name, _ := raw.Str()
		if vk, ok = ParseVK(name); !ok {
			return ShortcutBinding{}, false
		}
	default:
		n, ok := raw.Uint()
		if !ok || n > 0xFF {
			return ShortcutBinding{}, false
		}
		vk = uint8(n)
	}

	b := ShortcutBinding{VK: vk, CommandID: cmd}
	for _, f := range []struct {
		key string
		bit Modifiers
	}{{"ctrl", ModCtrl}, {"alt", ModAlt}, {"shift", ModShift}} {
		if on, _ := fieldBool(v, f.key); on {
			b.Modifiers |= f.bit
		}
	}
	return b, true
}

// migrateNumericShortcuts rewrites {"vk": 65, "modifiers": 1} bindings into
// the symbolic format. Bindings in any other shape are dropped.
func migrateNumericShortcuts(section jsonvalue.Value, logger *slog.Logger) (jsonvalue.Value, bool) {
	if section.Kind() != jsonvalue.Object {
		return section, true
	}
	out := jsonvalue.NewObjectBuilder()
	for _, m := range section.Members() {
		if m.Value.Kind() != jsonvalue.Array || !slices.Contains(shortcutLists, m.Key) {
			out.Set(m.Key, m.Value)
			continue
		}
		var items []jsonvalue.Value
		for i, item := range m.Value.Items() {
			b, ok := legacyBinding(item)
			if !ok {
				logger.Warn("dropping legacy shortcut binding", "list", m.Key, "index", i)
				continue
			}
			items = append(items, bindingValue(b))
		}
		out.Set(m.Key, jsonvalue.ArrayValue(items...))
	}
	return out.Build(), true
}

func legacyBinding(v jsonvalue.Value) (ShortcutBinding, bool) {
	if v.Kind() != jsonvalue.Object {
		return ShortcutBinding{}, false
	}
	raw, ok := v.Get("vk")
	if !ok {
		return ShortcutBinding{}, false
	}
	vk, ok := raw.Uint()
	if !ok || vk > 0xFF {
		return ShortcutBinding{}, false
	}
	var mods uint64
	if raw, ok := v.Get("modifiers"); ok {
		if mods, ok = raw.Uint(); !ok || mods > uint64(modMask) {
			return ShortcutBinding{}, false
		}
	}
	cmd, _ := fieldString(v, "commandId")
	return ShortcutBinding{VK: uint8(vk), Modifiers: Modifiers(mods), CommandID: cmd}, true
}

func bindingValue(b ShortcutBinding) jsonvalue.Value {
	o := jsonvalue.NewObjectBuilder().Set("vk", jsonvalue.StringValue(FormatVK(b.VK)))
	if b.Modifiers.Has(ModCtrl) {
		o.Set("ctrl", jsonvalue.BoolValue(true))
	}
	if b.Modifiers.Has(ModAlt) {
		o.Set("alt", jsonvalue.BoolValue(true))
	}
	if b.Modifiers.Has(ModShift) {
		o.Set("shift", jsonvalue.BoolValue(true))
	}
	o.Set("commandId", jsonvalue.StringValue(b.CommandID))
	return o.Build()
}

func marshalShortcuts(s *ShortcutsSettings) (jsonvalue.Value, bool) {
	o := jsonvalue.NewObjectBuilder()
	for _, list := range []struct {
		key      string
		bindings []ShortcutBinding
	}{{"functionBar", s.FunctionBar}, {"folderView", s.FolderView}} {
		if len(list.bindings) == 0 {
			continue
		}
		items := make([]jsonvalue.Value, 0, len(list.bindings))
		for _, b := range list.bindings {
			items = append(items, bindingValue(b))
		}
		o.Set(list.key, jsonvalue.ArrayValue(items...))
	}
	return o.Build(), o.Len() > 0
}
