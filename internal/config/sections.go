package config

import (
	"github.com/dshills/twinpane/internal/jsonvalue"
)

func parseCache(obj jsonvalue.Value) *CacheSettings {
	c := DefaultCacheSettings()
	info, ok := obj.Object("directoryInfo")
	if !ok {
		return &c
	}
	d := &c.DirectoryInfo
	if raw, ok := info.Get("maxBytes"); ok {
		set(&d.MaxBytes)(ParseByteSize(raw))
	}
	set(&d.MaxWatchers)(fieldUint32(info, "maxWatchers", 1, 256))
	set(&d.MRUWatched)(fieldUint32(info, "mruWatched", 0, 64))
	return &c
}

func marshalCache(c *CacheSettings) (jsonvalue.Value, bool) {
	def := DefaultCacheSettings().DirectoryInfo
	d := c.DirectoryInfo
	info := jsonvalue.NewObjectBuilder()
	if d.MaxBytes != def.MaxBytes {
		info.Set("maxBytes", jsonvalue.StringValue(FormatByteSize(d.MaxBytes)))
	}
	emitUint(info, "maxWatchers", d.MaxWatchers, def.MaxWatchers)
	emitUint(info, "mruWatched", d.MRUWatched, def.MRUWatched)

	o := jsonvalue.NewObjectBuilder()
	emitObject(o, "directoryInfo", info)
	return o.Build(), o.Len() > 0
}

func (p *sectionParser) parseFolders(obj jsonvalue.Value) *FoldersSettings {
	f := DefaultFoldersSettings()
	set(&f.HistoryMax)(fieldUint32(obj, "historyMax", 1, 50))
	set(&f.Active)(fieldNonEmpty(obj, "active"))

	if arr, ok := obj.ArrayAt("items"); ok {
		seen := make(map[string]bool, arr.Len())
		for i, item := range arr.Items() {
			pane, ok := parseFolderPane(item)
			if !ok || seen[pane.Slot] {
				p.logger.Warn("dropping folder pane", "index", i)
				continue
			}
			seen[pane.Slot] = true
			f.Items = append(f.Items, pane)
		}
	}
	if f.Active == "" && len(f.Items) > 0 {
		f.Active = f.Items[0].Slot
	}

	if history, ok := stringItems(obj, "history"); ok {
		if len(history) > int(f.HistoryMax) {
			history = history[:f.HistoryMax]
		}
		f.History = history
	}
	return &f
}

func parseFolderPane(v jsonvalue.Value) (FolderPane, bool) {
	if v.Kind() != jsonvalue.Object {
		return FolderPane{}, false
	}
	slot, ok := fieldNonEmpty(v, "slot")
	if !ok {
		return FolderPane{}, false
	}
	pane := FolderPane{Slot: slot, View: DefaultFolderView()}
	set(&pane.Current)(fieldString(v, "current"))
	if view, ok := v.Object("view"); ok {
		pv := &pane.View
		set(&pv.Display)(fieldEnum(view, "display", DisplayBrief, DisplayDetailed, DisplayExtraDetailed))
		set(&pv.SortBy)(fieldEnum(view, "sortBy",
			SortByName, SortByExtension, SortByTime, SortBySize, SortByAttributes, SortByNone))
		set(&pv.SortDirection)(fieldEnum(view, "sortDirection", SortAscending, SortDescending))
		set(&pv.StatusBarVisible)(fieldBool(view, "statusBarVisible"))
	}
	return pane, true
}

func marshalFolders(f *FoldersSettings) (jsonvalue.Value, bool) {
	def := DefaultFoldersSettings()
	o := jsonvalue.NewObjectBuilder()

	// An active slot equal to the first pane is what a load infers anyway.
	firstSlot := ""
	if len(f.Items) > 0 {
		firstSlot = f.Items[0].Slot
	}
	if f.Active != "" {
		emitString(o, "active", f.Active, firstSlot)
	}

	if len(f.Items) > 0 {
		items := make([]jsonvalue.Value, 0, len(f.Items))
		for _, pane := range f.Items {
			items = append(items, folderPaneValue(pane))
		}
		o.Set("items", jsonvalue.ArrayValue(items...))
	}
	if len(f.History) > 0 {
		o.Set("history", stringArray(f.History))
	}
	emitUint(o, "historyMax", f.HistoryMax, def.HistoryMax)
	return o.Build(), o.Len() > 0
}

func folderPaneValue(pane FolderPane) jsonvalue.Value {
	def := DefaultFolderView()
	o := jsonvalue.NewObjectBuilder().Set("slot", jsonvalue.StringValue(pane.Slot))
	emitString(o, "current", pane.Current, "")

	view := jsonvalue.NewObjectBuilder()
	emitString(view, "display", pane.View.Display, def.Display)
	emitString(view, "sortBy", pane.View.SortBy, def.SortBy)
	emitString(view, "sortDirection", pane.View.SortDirection, def.SortDirection)
	emitBool(view, "statusBarVisible", pane.View.StatusBarVisible, def.StatusBarVisible)
	emitObject(o, "view", view)
	return o.Build()
}

func parseMonitor(obj jsonvalue.Value) *MonitorSettings {
	m := DefaultMonitorSettings()
	if menu, ok := obj.Object("menu"); ok {
		mm := &m.Menu
		set(&mm.ToolbarVisible)(fieldBool(menu, "toolbarVisible"))
		set(&mm.LineNumbersVisible)(fieldBool(menu, "lineNumbersVisible"))
		set(&mm.AlwaysOnTop)(fieldBool(menu, "alwaysOnTop"))
		set(&mm.ShowIDs)(fieldBool(menu, "showIds"))
		set(&mm.AutoScroll)(fieldBool(menu, "autoScroll"))
	}
	if filter, ok := obj.Object("filter"); ok {
		set(&m.Filter.Mask)(fieldUint32(filter, "mask", 0, 31))
		set(&m.Filter.Preset)(fieldEnum(filter, "preset",
			PresetAll, PresetErrors, PresetWarnings, PresetInfo, PresetDebug, PresetCustom))
	}
	return &m
}

func marshalMonitor(m *MonitorSettings) (jsonvalue.Value, bool) {
	def := DefaultMonitorSettings()
	menu := jsonvalue.NewObjectBuilder()
	emitBool(menu, "toolbarVisible", m.Menu.ToolbarVisible, def.Menu.ToolbarVisible)
	emitBool(menu, "lineNumbersVisible", m.Menu.LineNumbersVisible, def.Menu.LineNumbersVisible)
	emitBool(menu, "alwaysOnTop", m.Menu.AlwaysOnTop, def.Menu.AlwaysOnTop)
	emitBool(menu, "showIds", m.Menu.ShowIDs, def.Menu.ShowIDs)
	emitBool(menu, "autoScroll", m.Menu.AutoScroll, def.Menu.AutoScroll)

	filter := jsonvalue.NewObjectBuilder()
	emitUint(filter, "mask", m.Filter.Mask, def.Filter.Mask)
	emitString(filter, "preset", m.Filter.Preset, def.Filter.Preset)

	o := jsonvalue.NewObjectBuilder()
	emitObject(o, "menu", menu)
	emitObject(o, "filter", filter)
	return o.Build(), o.Len() > 0
}

func parseMainMenu(obj jsonvalue.Value) *MainMenuState {
	m := DefaultMainMenuState()
	set(&m.MenuBarVisible)(fieldBool(obj, "menuBarVisible"))
	set(&m.FunctionBarVisible)(fieldBool(obj, "functionBarVisible"))
	return &m
}

func marshalMainMenu(m *MainMenuState) (jsonvalue.Value, bool) {
	def := DefaultMainMenuState()
	o := jsonvalue.NewObjectBuilder()
	emitBool(o, "menuBarVisible", m.MenuBarVisible, def.MenuBarVisible)
	emitBool(o, "functionBarVisible", m.FunctionBarVisible, def.FunctionBarVisible)
	return o.Build(), o.Len() > 0
}

func parseStartup(obj jsonvalue.Value) *StartupSettings {
	s := DefaultStartupSettings()
	set(&s.ShowSplash)(fieldBool(obj, "showSplash"))
	set(&s.RestoreLastSession)(fieldBool(obj, "restoreLastSession"))
	return &s
}

func marshalStartup(s *StartupSettings) (jsonvalue.Value, bool) {
	def := DefaultStartupSettings()
	o := jsonvalue.NewObjectBuilder()
	emitBool(o, "showSplash", s.ShowSplash, def.ShowSplash)
	emitBool(o, "restoreLastSession", s.RestoreLastSession, def.RestoreLastSession)
	return o.Build(), o.Len() > 0
}

func parseFileOperations(obj jsonvalue.Value) *FileOperationsSettings {
	f := DefaultFileOperationsSettings()
	set(&f.AutoDismissSuccess)(fieldBool(obj, "autoDismissSuccess"))
	set(&f.MaxDiagnosticsLogFiles)(fieldUint32(obj, "maxDiagnosticsLogFiles", 1, 365))
	set(&f.DiagnosticsInfoEnabled)(fieldBool(obj, "diagnosticsInfoEnabled"))
	set(&f.DiagnosticsDebugEnabled)(fieldBool(obj, "diagnosticsDebugEnabled"))
	set(&f.MaxIssueReportFiles)(fieldUint32(obj, "maxIssueReportFiles", 1, 1000))
	set(&f.MaxDiagnosticsInMemory)(fieldUint32(obj, "maxDiagnosticsInMemory", 100, 100000))
	set(&f.DiagnosticsFlushIntervalMs)(fieldUint32(obj, "diagnosticsFlushIntervalMs", 250, 60000))
	return &f
}

func marshalFileOperations(f *FileOperationsSettings) (jsonvalue.Value, bool) {
	def := DefaultFileOperationsSettings()
	o := jsonvalue.NewObjectBuilder()
	emitBool(o, "autoDismissSuccess", f.AutoDismissSuccess, def.AutoDismissSuccess)
	emitUint(o, "maxDiagnosticsLogFiles", f.MaxDiagnosticsLogFiles, def.MaxDiagnosticsLogFiles)
	emitBool(o, "diagnosticsInfoEnabled", f.DiagnosticsInfoEnabled, def.DiagnosticsInfoEnabled)
	emitBool(o, "diagnosticsDebugEnabled", f.DiagnosticsDebugEnabled, def.DiagnosticsDebugEnabled)
	emitUint(o, "maxIssueReportFiles", f.MaxIssueReportFiles, def.MaxIssueReportFiles)
	emitUint(o, "maxDiagnosticsInMemory", f.MaxDiagnosticsInMemory, def.MaxDiagnosticsInMemory)
	emitUint(o, "diagnosticsFlushIntervalMs", f.DiagnosticsFlushIntervalMs, def.DiagnosticsFlushIntervalMs)
	return o.Build(), o.Len() > 0
}

func parseCompareDirectories(obj jsonvalue.Value) *CompareDirectoriesSettings {
	c := DefaultCompareDirectoriesSettings()
	for _, f := range compareFlags(&c) {
		set(f.dst)(fieldBool(obj, f.key))
	}
	set(&c.IgnoreFilesPatterns)(fieldString(obj, "ignoreFilesPatterns"))
	set(&c.IgnoreDirectoriesPatterns)(fieldString(obj, "ignoreDirectoriesPatterns"))
	return &c
}

func marshalCompareDirectories(c *CompareDirectoriesSettings) (jsonvalue.Value, bool) {
	def := DefaultCompareDirectoriesSettings()
	defFlags := compareFlags(&def)
	o := jsonvalue.NewObjectBuilder()
	for i, f := range compareFlags(c) {
		emitBool(o, f.key, *f.dst, *defFlags[i].dst)
	}
	emitString(o, "ignoreFilesPatterns", c.IgnoreFilesPatterns, def.IgnoreFilesPatterns)
	emitString(o, "ignoreDirectoriesPatterns", c.IgnoreDirectoriesPatterns, def.IgnoreDirectoriesPatterns)
	return o.Build(), o.Len() > 0
}

type boolField struct {
	key string
	dst *bool
}

func compareFlags(c *CompareDirectoriesSettings) []boolField {
	return []boolField{
		{"compareSize", &c.CompareSize},
		{"compareDateTime", &c.CompareDateTime},
		{"compareAttributes", &c.CompareAttributes},
		{"compareContent", &c.CompareContent},
		{"compareSubdirectories", &c.CompareSubdirectories},
		{"compareSubdirectoryAttributes", &c.CompareSubdirectoryAttributes},
		{"selectSubdirsOnlyInOnePane", &c.SelectSubdirsOnlyInOnePane},
		{"ignoreFiles", &c.IgnoreFiles},
		{"ignoreDirectories", &c.IgnoreDirectories},
		{"showIdenticalItems", &c.ShowIdenticalItems},
	}
}
