package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/cases"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// MaxNameDedupAttempts bounds the " (n)" suffixes tried for a colliding
// connection name.
const MaxNameDedupAttempts = 9999

// hostlessPlugins address a service endpoint rather than a host.
var hostlessPlugins = map[string]bool{
	PluginFileSystemS3: true,
	PluginS3Table:      true,
}

// PluginRequiresHost reports whether profiles of pluginID need a host.
func PluginRequiresHost(pluginID string) bool {
	return !hostlessPlugins[pluginID]
}

// SFTPOptions are the extra options of SFTP connections.
type SFTPOptions struct {
	PrivateKeyPath   string `mapstructure:"privateKeyPath"`
	KnownHostsPath   string `mapstructure:"knownHostsPath"`
	Compression      bool   `mapstructure:"compression"`
	KeepAliveSeconds uint32 `mapstructure:"keepAliveSeconds"`
}

// FTPOptions are the extra options of FTP connections.
type FTPOptions struct {
	PassiveMode      bool   `mapstructure:"passiveMode"`
	UseTLS           bool   `mapstructure:"useTls"`
	EncodingOverride string `mapstructure:"encodingOverride"`
}

// S3Options are the extra options of S3 and S3 table connections.
type S3Options struct {
	Region           string `mapstructure:"region"`
	EndpointOverride string `mapstructure:"endpointOverride"`
	ProfileName      string `mapstructure:"profileName"`
	UsePathStyle     bool   `mapstructure:"usePathStyle"`
}

// pluginOptionDefaults holds the option values each plugin assumes when a
// key is missing. Extra keys equal to these are not written.
var pluginOptionDefaults = map[string]any{
	PluginFileSystemSFTP: SFTPOptions{KeepAliveSeconds: 30},
	PluginFileSystemFTP:  FTPOptions{PassiveMode: true},
	PluginFileSystemS3:   S3Options{},
	PluginS3Table:        S3Options{},
}

// DefaultPluginOptions returns the option defaults of pluginID as a map
// keyed like the persisted extra object.
func DefaultPluginOptions(pluginID string) (map[string]any, bool) {
	def, ok := pluginOptionDefaults[pluginID]
	if !ok {
		return nil, false
	}
	out := map[string]any{}
	if err := mapstructure.Decode(def, &out); err != nil {
		return nil, false
	}
	return out, true
}

// DecodeExtra decodes a profile's extra object into out, typically one of
// the *Options structs. Fields missing from extra keep their values in out.
func DecodeExtra(extra jsonvalue.Value, out any) error {
	if extra.Kind() != jsonvalue.Object {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(extra.Interface())
}

func (p *sectionParser) parseConnections(obj jsonvalue.Value) *ConnectionsSettings {
	c := DefaultConnectionsSettings()
	set(&c.BypassWindowsHello)(fieldBool(obj, "bypassWindowsHello"))
	set(&c.WindowsHelloReauthTimeoutMinute)(fieldUint32(obj, "windowsHelloReauthTimeoutMinute", 0, 1440))

	arr, ok := obj.ArrayAt("items")
	if !ok {
		return &c
	}
	var profiles []ConnectionProfile
	for i, item := range arr.Items() {
		profile, err := parseProfile(item)
		if err != nil {
			p.logger.Warn("dropping connection profile", "index", i, "error", err)
			continue
		}
		profiles = append(profiles, profile)
	}
	profiles = dedupProfileNames(profiles, p.logger)
	c.Items = p.assignProfileIDs(profiles)
	return &c
}

func parseProfile(v jsonvalue.Value) (ConnectionProfile, error) {
	if v.Kind() != jsonvalue.Object {
		return ConnectionProfile{}, fmt.Errorf("profile is %s, not an object", v.Kind())
	}
	cp := ConnectionProfile{InitialPath: "/", AuthMode: AuthPassword}
	set(&cp.ID)(fieldString(v, "id"))
	set(&cp.Name)(fieldString(v, "name"))

	plugin, ok := fieldNonEmpty(v, "pluginId")
	if !ok {
		return ConnectionProfile{}, errors.New("profile has no pluginId")
	}
	cp.PluginID = CanonicalPluginID(plugin)

	host, _ := fieldString(v, "host")
	cp.Host = strings.TrimSpace(host)
	if cp.Host == "" && PluginRequiresHost(cp.PluginID) {
		return ConnectionProfile{}, fmt.Errorf("profile %q has no host", cp.Name)
	}

	if raw, ok := v.Get("port"); ok {
		if port, ok := raw.Uint(); ok && port <= 0xFFFF {
			cp.Port = uint16(port)
		}
	}
	set(&cp.InitialPath)(fieldNonEmpty(v, "initialPath"))
	set(&cp.UserName)(fieldString(v, "userName"))
	set(&cp.AuthMode)(fieldEnum(v, "authMode", AuthPassword, AuthSSHKey, AuthAnonymous))
	set(&cp.SavePassword)(fieldBool(v, "savePassword"))
	set(&cp.RequireWindowsHello)(fieldBool(v, "requireWindowsHello"))
	if extra, ok := v.Object("extra"); ok {
		cp.Extra = extra
	}
	return cp, nil
}

// NormalizeProfileName trims name and replaces path separators with "-".
func NormalizeProfileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}

// nameSet holds profile names under Unicode case folding.
type nameSet struct {
	fold  cases.Caser
	names map[string]bool
}

func newNameSet(names ...string) *nameSet {
	s := &nameSet{fold: cases.Fold(), names: make(map[string]bool, len(names))}
	for _, n := range names {
		s.add(n)
	}
	return s
}

func (s *nameSet) has(name string) bool { return s.names[s.fold.String(name)] }

func (s *nameSet) add(name string) { s.names[s.fold.String(name)] = true }

// dedupProfileNames normalizes names and makes them unique ignoring case by
// appending " (2)", " (3)", ... Profiles whose name normalizes to "" are
// dropped.
func dedupProfileNames(profiles []ConnectionProfile, logger *slog.Logger) []ConnectionProfile {
	taken := newNameSet()
	out := profiles[:0]
	for _, cp := range profiles {
		name := NormalizeProfileName(cp.Name)
		if name == "" {
			logger.Warn("dropping connection profile with empty name", "id", cp.ID)
			continue
		}
		unique, ok := uniqueName(name, taken)
		if !ok {
			logger.Warn("dropping connection profile: no free name", "name", name)
			continue
		}
		taken.add(unique)
		cp.Name = unique
		out = append(out, cp)
	}
	return out
}

func uniqueName(name string, taken *nameSet) (string, bool) {
	if !taken.has(name) {
		return name, true
	}
	for n := 2; n <= MaxNameDedupAttempts; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken.has(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// assignProfileIDs gives every profile without a unique id a fresh one.
func (p *sectionParser) assignProfileIDs(profiles []ConnectionProfile) []ConnectionProfile {
	seen := make(map[string]bool, len(profiles))
	for i := range profiles {
		id := profiles[i].ID
		if id == "" || seen[id] {
			id = p.newID()
			profiles[i].ID = id
		}
		seen[id] = true
	}
	return profiles
}

func marshalConnections(c *ConnectionsSettings) (jsonvalue.Value, bool) {
	def := DefaultConnectionsSettings()
	o := jsonvalue.NewObjectBuilder()

	var items []jsonvalue.Value
	for _, cp := range c.Items {
		if cp.ID == QuickConnectID {
			continue
		}
		items = append(items, profileValue(cp))
	}
	if len(items) > 0 {
		o.Set("items", jsonvalue.ArrayValue(items...))
	}
	emitBool(o, "bypassWindowsHello", c.BypassWindowsHello, def.BypassWindowsHello)
	emitUint(o, "windowsHelloReauthTimeoutMinute", c.WindowsHelloReauthTimeoutMinute, def.WindowsHelloReauthTimeoutMinute)
	return o.Build(), o.Len() > 0
}

func profileValue(cp ConnectionProfile) jsonvalue.Value {
	o := jsonvalue.NewObjectBuilder()
	emitString(o, "id", cp.ID, "")
	o.Set("name", jsonvalue.StringValue(cp.Name))
	o.Set("pluginId", jsonvalue.StringValue(cp.PluginID))
	emitString(o, "host", cp.Host, "")
	emitUint(o, "port", cp.Port, 0)
	if cp.InitialPath != "" {
		emitString(o, "initialPath", cp.InitialPath, "/")
	}
	emitString(o, "userName", cp.UserName, "")
	if cp.AuthMode != "" {
		emitString(o, "authMode", cp.AuthMode, AuthPassword)
	}
	emitBool(o, "savePassword", cp.SavePassword, false)
	emitBool(o, "requireWindowsHello", cp.RequireWindowsHello, false)
	if extra := pruneExtra(cp.PluginID, cp.Extra); extra.Len() > 0 {
		o.Set("extra", extra)
	}
	return o.Build()
}

// pruneExtra drops members of extra that hold the plugin's default value.
// Unknown keys and keys of unknown plugins are kept.
func pruneExtra(pluginID string, extra jsonvalue.Value) jsonvalue.Value {
	if extra.Kind() != jsonvalue.Object {
		return jsonvalue.Value{}
	}
	defaults, ok := DefaultPluginOptions(pluginID)
	if !ok {
		return extra
	}
	out := jsonvalue.NewObjectBuilder()
	for _, m := range extra.Members() {
		if def, known := defaults[m.Key]; known && matchesDefault(m.Value, def) {
			continue
		}
		out.Set(m.Key, m.Value)
	}
	return out.Build()
}

func matchesDefault(v jsonvalue.Value, def any) bool {
	switch d := def.(type) {
	case string:
		s, ok := v.Str()
		return ok && s == d
	case bool:
		b, ok := v.Bool()
		return ok && b == d
	case uint32:
		u, ok := v.Uint()
		return ok && u == uint64(d)
	case int:
		i, ok := v.Int()
		return ok && i == int64(d)
	}
	return false
}
