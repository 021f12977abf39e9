package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

func tagMigration(to uint32, tag string, log *[]string) Migration {
	return Migration{
		ToVersion:   to,
		Section:     "theme",
		Description: tag,
		Migrate: func(v jsonvalue.Value, _ *slog.Logger) (jsonvalue.Value, bool) {
			*log = append(*log, tag)
			return v, true
		},
	}
}

func TestMigrator_OrderAndRange(t *testing.T) {
	var ran []string
	m := NewMigrator()
	m.Register(tagMigration(8, "to8", &ran))
	m.Register(tagMigration(5, "to5a", &ran))
	m.Register(tagMigration(5, "to5b", &ran))
	m.Register(Migration{ToVersion: 9, Section: "folders", Migrate: func(v jsonvalue.Value, _ *slog.Logger) (jsonvalue.Value, bool) {
		ran = append(ran, "folders")
		return v, true
	}})

	var order []string
	for _, step := range m.Migrations() {
		order = append(order, step.Description)
	}
	assert.Equal(t, []string{"to5a", "to5b", "to8", ""}, order)

	_, ok := m.Apply("theme", jsonvalue.ObjectValue(), 4, discardLogger())
	require.True(t, ok)
	assert.Equal(t, []string{"to5a", "to5b", "to8"}, ran)

	ran = nil
	m.Apply("theme", jsonvalue.ObjectValue(), 5, discardLogger())
	assert.Equal(t, []string{"to8"}, ran)

	ran = nil
	m.Apply("theme", jsonvalue.ObjectValue(), 8, discardLogger())
	assert.Empty(t, ran)
}

func TestMigrator_DiscardStops(t *testing.T) {
	var ran []string
	m := NewMigrator()
	m.Register(Migration{ToVersion: 3, Section: "theme", Migrate: func(jsonvalue.Value, *slog.Logger) (jsonvalue.Value, bool) {
		return jsonvalue.Value{}, false
	}})
	m.Register(tagMigration(4, "after", &ran))

	_, ok := m.Apply("theme", jsonvalue.ObjectValue(), 1, discardLogger())
	assert.False(t, ok)
	assert.Empty(t, ran)
}

func TestDefaultMigrator_Steps(t *testing.T) {
	steps := DefaultMigrator().Migrations()
	require.Len(t, steps, 2)
	assert.Equal(t, "plugins", steps[0].Section)
	assert.Equal(t, MinPluginsSchemaVersion, steps[0].ToVersion)
	assert.Equal(t, "shortcuts", steps[1].Section)
	assert.Equal(t, uint32(5), steps[1].ToVersion)
}

func TestMigrations_ReturnsCopy(t *testing.T) {
	m := DefaultMigrator()
	steps := m.Migrations()
	steps[0].Section = "changed"
	assert.Equal(t, "plugins", m.Migrations()[0].Section)
}
