// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/janderssonse/appstore/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_Sections(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	sections := helpSections(svc)

	require.Len(t, sections, 4)
	assert.Contains(t, sections[0].Content, "| `/` | search |")
	assert.Contains(t, sections[1].Content, "| `d` | download |")
	assert.Contains(t, sections[2].Content, "| `x` | delete |")
	assert.Contains(t, sections[3].Content, "appstore apps list")
}

func TestHelp_Navigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		keys        []tea.KeyMsg
		wantSection int
	}{
		{"right moves forward", []tea.KeyMsg{keyType(tea.KeyRight)}, 1},
		{"left stops at the first", []tea.KeyMsg{keyRunes("h")}, 0},
		{"right stops at the last", []tea.KeyMsg{keyRunes("l"), keyRunes("l"), keyRunes("l"), keyRunes("l")}, 3},
		{"tab wraps", []tea.KeyMsg{keyType(tea.KeyTab), keyType(tea.KeyTab), keyType(tea.KeyTab), keyType(tea.KeyTab)}, 0},
		{"shift+tab wraps back", []tea.KeyMsg{keyType(tea.KeyShiftTab)}, 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestServices(t)
			help := NewHelp(styles.New(), svc)

			for _, msg := range testCase.keys {
				press(t, help, msg)
			}

			assert.Equal(t, testCase.wantSection, help.Section())
		})
	}
}

func TestHelp_BackKeys(t *testing.T) {
	t.Parallel()

	for _, msg := range []tea.KeyMsg{keyType(tea.KeyEsc), keyRunes("?")} {
		svc, _ := newTestServices(t)
		help := NewHelp(styles.New(), svc)

		cmd := press(t, help, msg)
		require.NotNil(t, cmd)
		assert.Equal(t, BackMsg{}, cmd())
	}
}

func TestHelp_Resize(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	help := NewHelp(styles.New(), svc)
	help.Update(tea.WindowSizeMsg{Width: 90, Height: 30})

	assert.Equal(t, 90, help.viewport.Width)
	assert.Positive(t, help.viewport.Height)
	assert.Contains(t, ansi.Strip(help.View()), "Help")
}

func TestFooter(t *testing.T) {
	t.Parallel()

	actions := []FooterAction{{Key: "esc", Action: "back"}, {Key: "d", Action: "download"}}

	footer := ansi.Strip(RenderFooter(styles.New(), 0, actions, "help"))
	assert.Contains(t, footer, "[esc] back   [d] download   [?] help")

	footer = ansi.Strip(RenderFooter(styles.New(), 0, actions, ""))
	assert.NotContains(t, footer, "[?]")
}

func TestToast(t *testing.T) {
	t.Parallel()

	styleConfig := styles.New()

	var toast Toast
	assert.Empty(t, toast.View(styleConfig))

	first, cmd := toast.Show(noticeOf("Saved", "app.zip saved"), false)
	require.NotNil(t, cmd)
	assert.Contains(t, ansi.Strip(first.View(styleConfig)), "✓ Saved")
	assert.Contains(t, ansi.Strip(first.View(styleConfig)), "app.zip saved")

	second, _ := first.Show(noticeOf("Error", "boom"), true)
	assert.Contains(t, ansi.Strip(second.View(styleConfig)), "✗ Error")

	// The first toast's tick must not hide its replacement.
	second = second.Update(dismissToastMsg{seq: first.seq})
	assert.True(t, second.Visible())

	second = second.Update(dismissToastMsg{seq: second.seq})
	assert.False(t, second.Visible())
}
