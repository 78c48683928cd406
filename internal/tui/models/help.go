// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/tui/styles"
)

// HelpSection is one tab of the key reference.
type HelpSection struct {
	Title   string
	Content string
}

// Help is the key reference screen.
type Help struct {
	styles         *styles.Styles
	svc            Services
	width          int
	height         int
	sections       []HelpSection
	viewport       viewport.Model
	renderer       *glamour.TermRenderer
	currentSection int
	keyMap         HelpKeyMap
}

// HelpKeyMap holds the help screen's own bindings. Scrolling keys go to the
// viewport's key map.
type HelpKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Cycle   key.Binding
	Reverse key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Back    key.Binding
}

// DefaultHelpKeyMap returns the help screen bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous section")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next section")),
		Cycle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle sections")),
		Reverse: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "cycle back")),
		Top:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Back:    key.NewBinding(key.WithKeys(KeyEsc, KeyHelp), key.WithHelp("esc", "back")),
	}
}

// keyTable renders bindings as a markdown table.
func keyTable(bindings ...key.Binding) string {
	var builder strings.Builder

	builder.WriteString("| Key | Action |\n|-----|--------|\n")

	for _, binding := range bindings {
		help := binding.Help()
		fmt.Fprintf(&builder, "| `%s` | %s |\n", help.Key, help.Desc)
	}

	return builder.String()
}

// helpSections builds the reference from the screens' own key maps.
func helpSections(svc Services) []HelpSection {
	t := svc.Translate
	store := DefaultStoreKeyMap()
	detail := DefaultDetailKeyMap()
	admin := DefaultAdminKeyMap()

	return []HelpSection{
		{
			Title: t("appStore", nil),
			Content: "# " + t("appStore", nil) + "\n\n" + t("footerText", nil) + "\n\n" +
				"Browse by category, search by name or description, and open an application " +
				"to read about it, download it or share its link.\n\n" +
				"## Search and pages\n\n" +
				"Typing in the search field filters the current category as you type. " +
				"Changing the search, the category or the page size returns to the first page. " +
				"Digits jump to any page number shown in the pager.\n\n" +
				keyTable(store.Search, store.Clear, store.NextCategory, store.PrevCategory,
					store.PrevPage, store.NextPage, store.PageSize, store.Up, store.Down,
					store.Open, store.Refresh, store.Admin),
		},
		{
			Title: t("information", nil),
			Content: "# " + t("information", nil) + "\n\n" +
				"Downloads open in your browser. Screenshots wrap around at both ends.\n\n" +
				keyTable(detail.Download, detail.Copy, detail.PrevShot, detail.NextShot,
					detail.NextRelated, detail.OpenRelated, detail.Up, detail.Down, detail.Back),
		},
		{
			Title: t("adminPanel.title", nil),
			Content: "# " + t("adminPanel.title", nil) + "\n\n" +
				"Edit and delete act on the highlighted row. Forms close with `esc`.\n\n" +
				keyTable(admin.Tab, admin.New, admin.Edit, admin.Delete, admin.Refresh, admin.Back),
		},
		{
			Title: "CLI",
			Content: "# Command line\n\n" +
				"Every storefront action is also a command. `--json` prints machine-readable results.\n\n" +
				"```\n" +
				"appstore apps list --category 2 --search editor --page 2\n" +
				"appstore apps show 12\n" +
				"appstore apps download 12 --output ~/Downloads\n" +
				"appstore categories list\n" +
				"appstore admin category create --name Tools --icon Code --color bg-green-500\n" +
				"appstore admin app delete 12 --yes\n" +
				"appstore config show\n" +
				"```\n\n" +
				"| Key | Action |\n|-----|--------|\n" +
				"| `q` | " + t("quit", nil) + " |\n" +
				"| `ctrl+c` | " + t("quit", nil) + " |\n",
		},
	}
}

// NewHelp creates a new help model.
func NewHelp(styleConfig *styles.Styles, svc Services) *Help {
	svc = svc.withDefaults()

	view := viewport.New(defaultWrap, defaultWrap/4)
	view.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styleConfig.Primary).
		PaddingRight(2)

	help := &Help{
		styles:   styleConfig,
		svc:      svc,
		sections: helpSections(svc),
		viewport: view,
		renderer: newRenderer(defaultWrap),
		keyMap:   DefaultHelpKeyMap(),
	}

	help.updateContent()

	return help
}

// Init implements tea.Model.
func (m *Help) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *Help) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *Help) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

// Section returns the index of the shown section.
func (m *Help) Section() int {
	return m.currentSection
}

// handleKeyMsg switches sections, jumps to either end, or scrolls.
func (m *Help) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m, Back
	case key.Matches(msg, m.keyMap.Prev):
		m.showSection(max(m.currentSection-1, 0))
	case key.Matches(msg, m.keyMap.Next):
		m.showSection(min(m.currentSection+1, len(m.sections)-1))
	case key.Matches(msg, m.keyMap.Cycle):
		m.showSection((m.currentSection + 1) % len(m.sections))
	case key.Matches(msg, m.keyMap.Reverse):
		m.showSection((m.currentSection + len(m.sections) - 1) % len(m.sections))
	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
	default:
		var cmd tea.Cmd

		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Help) showSection(index int) {
	if index == m.currentSection {
		return
	}

	m.currentSection = index
	m.updateContent()
}

// handleWindowSizeMsg re-wraps the markdown for the new width.
func (m *Help) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width != m.width {
		m.renderer = newRenderer(max(msg.Width-gridPadding*2, defaultWrap/4))
	}

	m.width = msg.Width
	m.height = msg.Height

	verticalMargins := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())

	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-verticalMargins, 1)

	m.updateContent()

	return m, nil
}

// renderHeader shows the title over the section tabs.
func (m *Help) renderHeader() string {
	tabs := make([]string, 0, len(m.sections))

	for i, section := range m.sections {
		if i == m.currentSection {
			tabs = append(tabs, m.styles.ActiveTab.Render(section.Title))

			continue
		}

		tabs = append(tabs, m.styles.Tab.Render(section.Title))
	}

	title := m.styles.Logo(m.svc.Translate("help", nil))

	return m.styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
}

func (m *Help) renderFooter() string {
	return RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "↑↓", Action: "scroll"},
		{Key: "←→", Action: "sections"},
		{Key: "g/G", Action: "top/bottom"},
		{Key: "esc", Action: m.svc.Translate("back", nil)},
	}, "")
}

// updateContent renders the current section into the viewport.
func (m *Help) updateContent() {
	if m.currentSection >= len(m.sections) {
		return
	}

	section := m.sections[m.currentSection]

	rendered, err := m.renderer.Render(section.Content)
	if err != nil {
		rendered = section.Content
	}

	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}
