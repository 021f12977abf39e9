// Package config persists TwinPane's settings as a single JSON document
// and migrates documents written by older versions.
//
// # Files
//
// Settings live under the platform configuration directory:
//
//	<config-root>/TwinPane/Settings/<app>-<major>.<minor>.settings.json
//	<config-root>/TwinPane/Settings/<app>.settings.json          (legacy, read only)
//	<config-root>/TwinPane/Settings/<app>-debug.settings.json    (debug builds)
//	<config-root>/TwinPane/Settings/<app>.settings.schema.json   (written after each save)
//
// Saves write <file>.tmp, flush it and rename it over the file, so a crash
// leaves either the old or the new document. A file that cannot be used is
// renamed to <file>.bad.<UTC timestamp>[.<n>] and the application starts
// with defaults.
//
// # Document format
//
// The root is an object holding an integer schemaVersion and any subset of
// the sections windows, theme, plugins, extensions, shortcuts, cache,
// folders, monitor, mainMenu, startup, connections, fileOperations and
// compareDirectories. Comments, trailing commas and a byte-order mark are
// accepted on read.
//
// Versions 6 through 9 load. Older section formats are rewritten by the
// steps of DefaultMigrator before the section parsers see them, and a
// loaded aggregate always reports CurrentSchemaVersion. Inside a section a
// missing or malformed field keeps its default; only a malformed document
// fails a load.
//
// Saves write only what differs from the defaults, with map keys sorted:
//
//	{
//	  "schemaVersion": 9,
//	  "theme": {
//	    "currentThemeId": "builtin/dark"
//	  },
//	  "cache": {
//	    "directoryInfo": {
//	      "maxBytes": "128mb"
//	    }
//	  }
//	}
//
// # Basic Usage
//
//	store, err := config.NewStore("TwinPane")
//	if err != nil {
//	    return err
//	}
//	settings, status, err := store.Load()
//	if status == config.StatusFailed {
//	    log.Printf("settings unavailable: %v", err)
//	}
//	settings.Theme.CurrentThemeID = config.ThemeDark
//	if err := store.Save(settings); err != nil {
//	    // tell the user the change did not persist
//	}
//
// # Sub-packages
//
//   - loader: file system port, bounded reads, atomic writes, quarantine
//   - paths: settings file locations
//   - schema: embedded JSON Schema of the document and a validator
//   - watcher: change notification for the settings file
package config
