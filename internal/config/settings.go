package config

import (
	"maps"
	"slices"

	"github.com/dshills/twinpane/internal/jsonvalue"
	"github.com/dshills/twinpane/internal/window"
)

// Schema versions.
const (
	// CurrentSchemaVersion is written by every save and reported by every load.
	CurrentSchemaVersion uint32 = 9

	// MinSchemaVersion is the oldest document version a load accepts.
	MinSchemaVersion uint32 = 6

	// MinPluginsSchemaVersion is the oldest version whose plugins section
	// is understood.
	MinPluginsSchemaVersion uint32 = 2
)

// Settings is the in-memory settings aggregate. Pointer sections are nil
// when absent from the document, which is distinct from a section present
// at its defaults.
type Settings struct {
	SchemaVersion uint32

	Windows    map[string]window.Placement
	Theme      ThemeSettings
	Plugins    PluginsSettings
	Extensions ExtensionsSettings

	Shortcuts          *ShortcutsSettings
	Cache              *CacheSettings
	Folders            *FoldersSettings
	Monitor            *MonitorSettings
	MainMenu           *MainMenuState
	Startup            *StartupSettings
	Connections        *ConnectionsSettings
	FileOperations     *FileOperationsSettings
	CompareDirectories *CompareDirectoriesSettings
}

// NewSettings returns an all-default aggregate.
func NewSettings() *Settings {
	return &Settings{
		SchemaVersion: CurrentSchemaVersion,
		Windows:       map[string]window.Placement{},
		Theme:         DefaultThemeSettings(),
		Plugins:       DefaultPluginsSettings(),
		Extensions:    DefaultExtensionsSettings(),
	}
}

// Built-in theme identifiers.
const (
	ThemeSystem       = "builtin/system"
	ThemeLight        = "builtin/light"
	ThemeDark         = "builtin/dark"
	ThemeRainbow      = "builtin/rainbow"
	ThemeHighContrast = "builtin/highContrast"

	builtinPrefix = "builtin/"
)

var builtinThemes = []string{ThemeSystem, ThemeLight, ThemeDark, ThemeRainbow, ThemeHighContrast}

// IsBuiltinTheme reports whether id names a built-in theme.
func IsBuiltinTheme(id string) bool {
	return slices.Contains(builtinThemes, id)
}

// ThemeDefinition is a user theme layered on a built-in theme.
type ThemeDefinition struct {
	ID          string
	Name        string
	BaseThemeID string
	// Colors maps a color key to a packed ARGB value.
	Colors map[string]uint32
}

// ThemeSettings selects the active theme and carries user themes.
type ThemeSettings struct {
	CurrentThemeID string
	Themes         []ThemeDefinition
}

// DefaultThemeSettings returns the default theme section.
func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{CurrentThemeID: ThemeSystem}
}

// Plugin identifiers referenced by the settings engine.
const (
	PluginFileSystem      = "builtin/file-system"
	PluginFileSystemDummy = "builtin/file-system-dummy"
	PluginFileSystemSFTP  = "builtin/file-system-sftp"
	PluginFileSystemFTP   = "builtin/file-system-ftp"
	PluginFileSystemS3    = "builtin/file-system-s3"
	PluginS3Table         = "builtin/file-system-s3table"

	PluginViewerText  = "builtin/viewer-text"
	PluginViewerImage = "builtin/viewer-image"
)

// PluginsSettings selects plugins and carries their opaque configuration.
type PluginsSettings struct {
	CurrentFileSystemPluginID string
	DisabledPluginIDs         []string
	// ConfigurationByPluginID holds each plugin's configuration untouched.
	ConfigurationByPluginID map[string]jsonvalue.Value
}

// DefaultPluginsSettings returns the default plugins section.
func DefaultPluginsSettings() PluginsSettings {
	return PluginsSettings{CurrentFileSystemPluginID: PluginFileSystem}
}

// ExtensionsSettings maps file extensions to viewer plugins.
type ExtensionsSettings struct {
	// OpenWithViewerByExtension is keyed by lower-case extension with a
	// leading dot.
	OpenWithViewerByExtension map[string]string
}

var defaultViewers = map[string]string{
	".txt": PluginViewerText,
	".log": PluginViewerText,
	".md":  PluginViewerText,
	".png": PluginViewerImage,
	".jpg": PluginViewerImage,
}

// DefaultExtensionsSettings returns the default extensions section.
func DefaultExtensionsSettings() ExtensionsSettings {
	return ExtensionsSettings{OpenWithViewerByExtension: maps.Clone(defaultViewers)}
}

// Modifiers is a bit set of modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift

	modMask = ModCtrl | ModAlt | ModShift
)

// Has reports whether all bits of m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// ShortcutBinding binds a virtual key plus modifiers to a command.
type ShortcutBinding struct {
	VK        uint8
	Modifiers Modifiers
	CommandID string
}

// ShortcutsSettings holds user key bindings per surface.
type ShortcutsSettings struct {
	FunctionBar []ShortcutBinding
	FolderView  []ShortcutBinding
}

// DirectoryInfoCacheSettings bounds the directory information cache.
type DirectoryInfoCacheSettings struct {
	MaxBytes    uint64
	MaxWatchers uint32
	MRUWatched  uint32
}

// CacheSettings groups cache limits.
type CacheSettings struct {
	DirectoryInfo DirectoryInfoCacheSettings
}

// DefaultCacheSettings returns the default cache section.
func DefaultCacheSettings() CacheSettings {
	return CacheSettings{DirectoryInfo: DirectoryInfoCacheSettings{
		MaxBytes:    64 << 20,
		MaxWatchers: 16,
		MRUWatched:  4,
	}}
}

// DisplayMode is a folder view layout.
type DisplayMode string

const (
	DisplayBrief         DisplayMode = "brief"
	DisplayDetailed      DisplayMode = "detailed"
	DisplayExtraDetailed DisplayMode = "extraDetailed"
)

// SortBy is a folder view sort key.
type SortBy string

const (
	SortByName       SortBy = "name"
	SortByExtension  SortBy = "extension"
	SortByTime       SortBy = "time"
	SortBySize       SortBy = "size"
	SortByAttributes SortBy = "attributes"
	SortByNone       SortBy = "none"
)

// SortDirection orders a folder view.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// FolderViewSettings is the presentation of one pane.
type FolderViewSettings struct {
	Display          DisplayMode
	SortBy           SortBy
	SortDirection    SortDirection
	StatusBarVisible bool
}

// DefaultFolderView returns the view a pane starts with.
func DefaultFolderView() FolderViewSettings {
	return FolderViewSettings{
		Display:          DisplayBrief,
		SortBy:           SortByName,
		SortDirection:    SortAscending,
		StatusBarVisible: true,
	}
}

// FolderPane is one pane of the main window.
type FolderPane struct {
	Slot    string
	Current string
	View    FolderViewSettings
}

// FoldersSettings holds the panes and navigation history.
type FoldersSettings struct {
	// Active is the slot of the focused pane. Loads default it to the first
	// pane's slot.
	Active     string
	Items      []FolderPane
	History    []string
	HistoryMax uint32
}

// DefaultFoldersSettings returns the default folders section.
func DefaultFoldersSettings() FoldersSettings {
	return FoldersSettings{HistoryMax: 20}
}

// FilterPreset names a predefined monitor filter.
type FilterPreset string

const (
	PresetAll      FilterPreset = "all"
	PresetErrors   FilterPreset = "errors"
	PresetWarnings FilterPreset = "warnings"
	PresetInfo     FilterPreset = "info"
	PresetDebug    FilterPreset = "debug"
	PresetCustom   FilterPreset = "custom"
)

// MonitorMenuSettings toggles monitor window chrome.
type MonitorMenuSettings struct {
	ToolbarVisible     bool
	LineNumbersVisible bool
	AlwaysOnTop        bool
	ShowIDs            bool
	AutoScroll         bool
}

// MonitorFilterSettings selects which monitor lines are shown.
type MonitorFilterSettings struct {
	Mask   uint32
	Preset FilterPreset
}

// MonitorSettings configures the diagnostics monitor window.
type MonitorSettings struct {
	Menu   MonitorMenuSettings
	Filter MonitorFilterSettings
}

// DefaultMonitorSettings returns the default monitor section.
func DefaultMonitorSettings() MonitorSettings {
	return MonitorSettings{
		Menu:   MonitorMenuSettings{ToolbarVisible: true, LineNumbersVisible: true, AutoScroll: true},
		Filter: MonitorFilterSettings{Mask: 31, Preset: PresetAll},
	}
}

// MainMenuState is the visibility of the main window bars.
type MainMenuState struct {
	MenuBarVisible     bool
	FunctionBarVisible bool
}

// DefaultMainMenuState returns the default main menu section.
func DefaultMainMenuState() MainMenuState {
	return MainMenuState{MenuBarVisible: true, FunctionBarVisible: true}
}

// StartupSettings controls application launch.
type StartupSettings struct {
	ShowSplash         bool
	RestoreLastSession bool
}

// DefaultStartupSettings returns the default startup section.
func DefaultStartupSettings() StartupSettings {
	return StartupSettings{ShowSplash: true, RestoreLastSession: true}
}

// AuthMode is how a connection authenticates.
type AuthMode string

const (
	AuthPassword  AuthMode = "password"
	AuthSSHKey    AuthMode = "sshKey"
	AuthAnonymous AuthMode = "anonymous"
)

// QuickConnectID is the id of the transient quick-connect profile. It is
// never written to disk.
const QuickConnectID = "quickConnect"

// ConnectionProfile is a saved remote file system connection.
type ConnectionProfile struct {
	ID                  string
	Name                string
	PluginID            string
	Host                string
	Port                uint16
	InitialPath         string
	UserName            string
	AuthMode            AuthMode
	SavePassword        bool
	RequireWindowsHello bool
	// Extra holds plugin-specific options as a JSON object, or null.
	Extra jsonvalue.Value
}

// ConnectionsSettings holds saved connections.
type ConnectionsSettings struct {
	Items                           []ConnectionProfile
	BypassWindowsHello              bool
	WindowsHelloReauthTimeoutMinute uint32
}

// DefaultConnectionsSettings returns the default connections section.
func DefaultConnectionsSettings() ConnectionsSettings {
	return ConnectionsSettings{WindowsHelloReauthTimeoutMinute: 10}
}

// FileOperationsSettings configures copy/move progress and diagnostics.
type FileOperationsSettings struct {
	AutoDismissSuccess         bool
	MaxDiagnosticsLogFiles     uint32
	DiagnosticsInfoEnabled     bool
	DiagnosticsDebugEnabled    bool
	MaxIssueReportFiles        uint32
	MaxDiagnosticsInMemory     uint32
	DiagnosticsFlushIntervalMs uint32
}

// DefaultFileOperationsSettings returns the default file operations section.
func DefaultFileOperationsSettings() FileOperationsSettings {
	return FileOperationsSettings{
		MaxDiagnosticsLogFiles:     14,
		MaxIssueReportFiles:        30,
		MaxDiagnosticsInMemory:     5000,
		DiagnosticsFlushIntervalMs: 5000,
	}
}

// CompareDirectoriesSettings are the options of the compare directories
// command.
type CompareDirectoriesSettings struct {
	CompareSize                   bool
	CompareDateTime               bool
	CompareAttributes             bool
	CompareContent                bool
	CompareSubdirectories         bool
	CompareSubdirectoryAttributes bool
	SelectSubdirsOnlyInOnePane    bool
	IgnoreFiles                   bool
	IgnoreFilesPatterns           string
	IgnoreDirectories             bool
	IgnoreDirectoriesPatterns     string
	ShowIdenticalItems            bool
}

// DefaultCompareDirectoriesSettings returns the default compare section.
func DefaultCompareDirectoriesSettings() CompareDirectoriesSettings {
	return CompareDirectoriesSettings{CompareSize: true, ShowIdenticalItems: true}
}
