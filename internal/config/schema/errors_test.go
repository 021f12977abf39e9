package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	assert.Equal(t, "bad", (&ValidationError{Message: "bad"}).Error())
	assert.Equal(t, "a.b: bad", (&ValidationError{Path: "a.b", Message: "bad"}).Error())

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"startup", "startup"},
		{"folders.items[0].view", "folders"},
		{"windows[2]", "windows"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&ValidationError{Path: tt.path}).Section(), tt.path)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "type", KindType.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestValidationErrors(t *testing.T) {
	errs := &ValidationErrors{}
	assert.NoError(t, errs.AsError())
	assert.Equal(t, "no schema violations", errs.Error())

	errs.add("theme.currentThemeId", KindRange, "%d characters, minimum %d", 0, 1)
	assert.Equal(t, "theme.currentThemeId: 0 characters, minimum 1", errs.Error())

	errs.add("theme.themes[0].id", KindRequired, "missing")
	errs.add("themes", KindType, "want object, have array")
	errs.add("themesExtra", KindUnknown, "not a known setting")
	assert.Equal(t, 4, errs.Len())
	assert.Contains(t, errs.Error(), "4 schema violations: ")
	assert.Error(t, errs.AsError())

	assert.Len(t, errs.Under("theme"), 2)
	assert.Len(t, errs.Under("theme.themes"), 1)
	assert.Len(t, errs.Under("themes"), 1, "a shared name prefix is not a parent")
	assert.Equal(t, []string{"theme", "themes", "themesExtra"}, errs.Sections())
}

func TestRangeText(t *testing.T) {
	minV, maxV := 0.0, 10.0
	assert.Equal(t, "0..10", rangeText(&minV, &maxV))
	assert.Equal(t, ">= 0", rangeText(&minV, nil))
	assert.Equal(t, "<= 10", rangeText(nil, &maxV))
	assert.Equal(t, "any", rangeText(nil, nil))
}
