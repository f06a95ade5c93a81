package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/mindely/internal/model"
)

func TestBuiltinMethods(t *testing.T) {
	methods := Builtin()
	require.Len(t, methods, 10)

	seen := map[string]bool{}
	for _, m := range methods {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
		assert.NotEmpty(t, m.Title)
		assert.NotEmpty(t, m.HowItWorks)
		assert.NoError(t, ValidateMethod(m), m.ID)
		if m.ModeToggle {
			assert.True(t, m.HasTimer, m.ID)
		}
	}
	assert.True(t, IsBuiltin("pomodoro"))
	assert.False(t, IsBuiltin("nap"))
}

func TestBuiltinReturnsCopies(t *testing.T) {
	methods := Builtin()
	methods[0].HowItWorks[0] = "changed"
	assert.NotEqual(t, "changed", Builtin()[0].HowItWorks[0])
}

func TestSessionConfig(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	cfg, ok, err := c.SessionConfig("pomodoro")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.SessionConfig{
		FocusSeconds:    1500,
		BreakSeconds:    300,
		AllowModeToggle: true,
		Label:           "Pomodoro Technique",
	}, cfg)

	cfg, ok, err = c.SessionConfig("cornell")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3000, cfg.FocusSeconds)
	assert.Equal(t, 600, cfg.BreakSeconds)
	assert.False(t, cfg.AllowModeToggle)

	_, ok, err = c.SessionConfig("feynman")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.SessionConfig("nope")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestNewMergesCustomMethods(t *testing.T) {
	custom := model.StudyMethod{
		ID:           "deep-work",
		Title:        "Deep Work",
		HasTimer:     true,
		FocusMinutes: 90,
		BreakMinutes: 15,
	}
	c, err := New([]model.StudyMethod{custom})
	require.NoError(t, err)

	all := c.Methods()
	require.Len(t, all, 11)
	last := all[len(all)-1]
	assert.Equal(t, "deep-work", last.ID)
	assert.True(t, last.Custom)
	assert.Equal(t, DefaultCustomIcon, last.Icon)

	m, err := c.Lookup(" Deep-Work ")
	require.NoError(t, err)
	assert.Equal(t, 90, m.FocusMinutes)
}

func TestNewRejectsInvalidCustomMethods(t *testing.T) {
	cases := map[string]model.StudyMethod{
		"shadows builtin": {ID: "pomodoro", Title: "Mine"},
		"bad id":          {ID: "Deep Work", Title: "Deep Work"},
		"empty title":     {ID: "deep", Title: "  "},
		"zero focus":      {ID: "deep", Title: "Deep", HasTimer: true, BreakMinutes: 5},
		"zero break":      {ID: "deep", Title: "Deep", HasTimer: true, FocusMinutes: 5},
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New([]model.StudyMethod{m})
			assert.Error(t, err)
		})
	}

	dup := model.StudyMethod{ID: "deep", Title: "Deep"}
	_, err := New([]model.StudyMethod{dup, dup})
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	assert.Len(t, c.Filter(""), 10)

	ids := func(ms []model.StudyMethod) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.ID
		}
		return out
	}
	assert.Equal(t, []string{"spaced-repetition"}, ids(c.Filter("REPETITION")))
	assert.Equal(t, []string{"active-recall", "spaced-repetition"}, ids(c.Filter("exams")))
	assert.Empty(t, c.Filter("zzz"))
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"ID", "Focus", "Title"}
	rows := [][]string{
		{"pomodoro", "25m", "Pomodoro"},
		{"sq3r", "-", "SQ3R"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	require.Len(t, lines, 3)
	assert.Equal(t, "ID        Focus  Title", lines[0])
	assert.Equal(t, "pomodoro    25m  Pomodoro", lines[1])
	assert.Equal(t, "sq3r          -  SQ3R", lines[2])
}

func TestTableLinesTruncatesToWidth(t *testing.T) {
	lines := TableLines(Builtin(), 30)
	require.Len(t, lines, 11)
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 30)
	}
	assert.True(t, strings.HasPrefix(lines[1], "pomodoro"))
}

func TestWriteFormats(t *testing.T) {
	methods := Builtin()[:2]

	var js bytes.Buffer
	require.NoError(t, Write(&js, methods, "json", 0))
	var decoded []model.StudyMethod
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "flowtime", decoded[1].ID)

	var ym bytes.Buffer
	require.NoError(t, Write(&ym, methods, "yaml", 0))
	var fromYAML []model.StudyMethod
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, 25, fromYAML[0].FocusMinutes)

	var table bytes.Buffer
	require.NoError(t, Write(&table, methods, "", 0))
	assert.Contains(t, table.String(), "built-in")

	assert.Error(t, Write(&table, methods, "xml", 0))
}
