package config

import (
	"log/slog"
	"slices"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// Migration rewrites one section of a document written before ToVersion
// into the shape ToVersion expects.
type Migration struct {
	// ToVersion is the first schema version that no longer needs this step.
	ToVersion uint32

	// Section is the root key the migration applies to.
	Section string

	// Description describes what the migration does.
	Description string

	// Migrate returns the rewritten section. keep == false discards the
	// section, leaving it at its defaults.
	Migrate func(section jsonvalue.Value, logger *slog.Logger) (migrated jsonvalue.Value, keep bool)
}

// Migrator applies ordered section migrations.
type Migrator struct {
	migrations []Migration
}

// NewMigrator creates a Migrator with no steps.
func NewMigrator() *Migrator {
	return &Migrator{}
}

// Register adds a migration. Steps run in ToVersion order; steps with the
// same ToVersion run in registration order.
func (m *Migrator) Register(migration Migration) {
	m.migrations = append(m.migrations, migration)
	slices.SortStableFunc(m.migrations, func(a, b Migration) int {
		return int(a.ToVersion) - int(b.ToVersion)
	})
}

// Migrations returns the registered steps in application order.
func (m *Migrator) Migrations() []Migration {
	return slices.Clone(m.migrations)
}

// Apply runs every step for section whose ToVersion is above from.
func (m *Migrator) Apply(section string, raw jsonvalue.Value, from uint32, logger *slog.Logger) (jsonvalue.Value, bool) {
	for _, step := range m.migrations {
		if step.Section != section || from >= step.ToVersion {
			continue
		}
		var keep bool
		raw, keep = step.Migrate(raw, logger)
		if !keep {
			logger.Debug("settings section discarded by migration",
				"section", section, "from", from, "step", step.Description)
			return jsonvalue.Value{}, false
		}
	}
	return raw, true
}

// DefaultMigrator returns the migrations for every historical format change.
func DefaultMigrator() *Migrator {
	m := NewMigrator()

	m.Register(Migration{
		ToVersion:   MinPluginsSchemaVersion,
		Section:     "plugins",
		Description: "discard plugin sections older than the plugin id scheme",
		Migrate: func(jsonvalue.Value, *slog.Logger) (jsonvalue.Value, bool) {
			return jsonvalue.Value{}, false
		},
	})

	m.Register(Migration{
		ToVersion:   5,
		Section:     "shortcuts",
		Description: "numeric vk and modifier bitmask to symbolic vk and ctrl/alt/shift flags",
		Migrate:     migrateNumericShortcuts,
	})

	return m
}

var defaultMigrator = DefaultMigrator()
