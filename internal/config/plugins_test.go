package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

func TestPlugins_LegacyIDsMigrate(t *testing.T) {
	s := mustParse(t, `{
		"schemaVersion": 9,
		"plugins": {
			"currentFileSystemPluginId": "fk",
			"disabledPluginIds": ["optional/filesystemDummy", "builtin/file-system-dummy", "zeta", "", "alpha"],
			"configurationByPluginId": {
				"builtin/file-system": {"from": "current"},
				"builtin/filesystem": {"from": "legacy"},
				"optional/filesystemDummy": {"from": "dummy"}
			}
		}
	}`)
	ps := s.Plugins
	assert.Equal(t, PluginFileSystem, ps.CurrentFileSystemPluginID)
	assert.Equal(t, []string{"alpha", PluginFileSystemDummy, "zeta"}, ps.DisabledPluginIDs)

	require.Len(t, ps.ConfigurationByPluginID, 2)
	from, _ := ps.ConfigurationByPluginID[PluginFileSystem].Get("from")
	text, _ := from.Str()
	assert.Equal(t, "current", text, "the current id wins over its legacy alias")
	_, ok := ps.ConfigurationByPluginID[PluginFileSystemDummy]
	assert.True(t, ok)
}

func TestPlugins_StringConfigurations(t *testing.T) {
	s := mustParse(t, `{
		"schemaVersion": 9,
		"plugins": {
			"configurationByPluginId": {
				"builtin/viewer-text": "{\"wrap\": true}",
				"builtin/viewer-image": "{not json",
				"vendor/raw": [1, 2],
				"vendor/commented": "{/* tab */ \"tabSize\": 8,}",
				"vendor/bare-keys": "{tabSize: 8}"
			}
		}
	}`)
	conf := s.Plugins.ConfigurationByPluginID
	require.Len(t, conf, 3)

	size, ok := conf["vendor/commented"].Get("tabSize")
	require.True(t, ok)
	n, _ := size.Int()
	assert.Equal(t, int64(8), n)
	_, ok = conf["vendor/bare-keys"]
	assert.False(t, ok, "unquoted keys are not part of the accepted syntax")

	wrap, ok := conf[PluginViewerText].Get("wrap")
	require.True(t, ok)
	b, _ := wrap.Bool()
	assert.True(t, b)

	assert.Equal(t, jsonvalue.Array, conf["vendor/raw"].Kind())
	_, ok = conf[PluginViewerImage]
	assert.False(t, ok)
}

func TestPlugins_OldSectionsDiscarded(t *testing.T) {
	s := parseAtVersion(t, 1, `{
		"plugins": {"currentFileSystemPluginId": "builtin/file-system-sftp"},
		"theme": {"currentThemeId": "builtin/dark"}
	}`)
	assert.Equal(t, DefaultPluginsSettings(), s.Plugins)
	assert.Equal(t, ThemeDark, s.Theme.CurrentThemeID)

	s = parseAtVersion(t, 2, `{"plugins": {"currentFileSystemPluginId": "builtin/file-system-sftp"}}`)
	assert.Equal(t, PluginFileSystemSFTP, s.Plugins.CurrentFileSystemPluginID)
}

func TestPlugins_Marshal(t *testing.T) {
	s := NewSettings()
	_, ok := BuildDocument(s).Get("plugins")
	assert.False(t, ok)

	s.Plugins.DisabledPluginIDs = []string{"b", "file", "a", "b"}
	text, err := jsonvalue.Serialize(BuildDocument(s))
	require.NoError(t, err)
	assert.Equal(t, `{"schemaVersion":9,"plugins":{"disabledPluginIds":["a","b","builtin/file-system"]}}`, text)
}

func TestCanonicalPluginID(t *testing.T) {
	assert.Equal(t, PluginFileSystem, CanonicalPluginID("builtin/filesystem"))
	assert.Equal(t, PluginFileSystem, CanonicalPluginID("file"))
	assert.Equal(t, PluginFileSystemDummy, CanonicalPluginID("optional/filesystemDummy"))
	assert.Equal(t, "vendor/x", CanonicalPluginID("vendor/x"))
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".txt", NormalizeExtension("TXT"))
	assert.Equal(t, ".tar.gz", NormalizeExtension("..tar.gz"))
	assert.Equal(t, "", NormalizeExtension(" . "))
}

func TestExtensions_MarshalOnlyWhenChanged(t *testing.T) {
	s := NewSettings()
	_, ok := BuildDocument(s).Get("extensions")
	assert.False(t, ok)

	s.Extensions.OpenWithViewerByExtension[".csv"] = PluginViewerText
	ext, ok := BuildDocument(s).Object("extensions")
	require.True(t, ok)
	viewers, _ := ext.Object("openWithViewerByExtension")
	assert.Equal(t, len(defaultViewers)+1, viewers.Len())
}
