// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/stringutil"
	"github.com/janderssonse/appstore/internal/tui/styles"
)

// defaultWrap is the markdown width before the first resize.
const defaultWrap = 80

// DetailKeyMap defines the detail screen key bindings.
type DetailKeyMap struct {
	Back        key.Binding
	Up          key.Binding
	Down        key.Binding
	Download    key.Binding
	Copy        key.Binding
	PrevShot    key.Binding
	NextShot    key.Binding
	NextRelated key.Binding
	OpenRelated key.Binding
	Help        key.Binding
}

// DefaultDetailKeyMap returns the detail screen key bindings.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Back:        key.NewBinding(key.WithKeys(KeyEsc, "backspace"), key.WithHelp("esc", "back")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Download:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		PrevShot:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous screenshot")),
		NextShot:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next screenshot")),
		NextRelated: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "similar app")),
		OpenRelated: key.NewBinding(key.WithKeys(KeyEnter), key.WithHelp("enter", "open similar app")),
		Help:        key.NewBinding(key.WithKeys(KeyHelp), key.WithHelp("?", "help")),
	}
}

type detailLoadedMsg struct {
	id     string
	detail domain.DetailResult
	err    error
}

// Detail shows one application with its gallery and similar apps.
type Detail struct {
	svc    Services
	styles *styles.Styles
	keyMap DetailKeyMap
	width  int
	height int

	id      string
	detail  domain.DetailResult
	loaded  bool
	err     error
	gallery catalog.Gallery
	dots    paginator.Model
	related int // -1 when no similar app is highlighted

	viewport viewport.Model
	renderer *glamour.TermRenderer
	spinner  spinner.Model
	toast    Toast
}

// NewDetail creates the detail screen for the application id.
func NewDetail(styleConfig *styles.Styles, svc Services, id string) *Detail {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = styleConfig.PrimaryText.Render("•")
	dots.InactiveDot = styleConfig.MutedText.Render("•")

	view := viewport.New(defaultWrap, 0)

	return &Detail{
		svc:      svc.withDefaults(),
		styles:   styleConfig,
		keyMap:   DefaultDetailKeyMap(),
		id:       id,
		dots:     dots,
		related:  -1,
		viewport: view,
		renderer: newRenderer(defaultWrap),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleConfig.PrimaryText)),
	}
}

func newRenderer(width int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		renderer, _ = glamour.NewTermRenderer()
	}

	return renderer
}

// Init loads the application.
func (m *Detail) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// ID returns the application id shown by this screen.
func (m *Detail) ID() string {
	return m.id
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width != m.width {
			m.renderer = newRenderer(max(msg.Width-gridPadding*2, defaultWrap/4))
		}

		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport(true)

		return m, nil
	case detailLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}

		m.loaded = true
		m.err = msg.err
		m.detail = msg.detail
		m.gallery = catalog.NewGallery(msg.detail.Application.Screenshots)
		m.dots.SetTotalPages(m.gallery.Len())
		m.dots.Page = 0
		m.related = -1
		m.syncViewport(true)

		return m, nil
	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case NoticeMsg:
		var cmd tea.Cmd

		m.toast, cmd = m.toast.Show(msg.Notice, msg.Err != nil)
		m.syncViewport(false)

		return m, cmd
	case dismissToastMsg:
		m.toast = m.toast.Update(msg)
		m.syncViewport(false)

		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *Detail) View() string {
	if !m.loaded {
		return m.styles.Container.Render(m.spinner.View() + " " + m.svc.Translate("loading", nil))
	}

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderError(), m.renderFooter())
	}

	sections := []string{m.renderHeader(), m.viewport.View()}

	if gallery := m.renderGallery(); gallery != "" {
		sections = append(sections, gallery)
	}

	if related := m.renderRelated(); related != "" {
		sections = append(sections, related)
	}

	if toast := m.toast.View(m.styles); toast != "" {
		sections = append(sections, toast)
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

//nolint:cyclop // one case per key binding
func (m *Detail) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m, Back
	case key.Matches(msg, m.keyMap.Help):
		return m, Navigate(HelpScreen, nil)
	}

	if !m.loaded || m.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Download):
		return m, m.openDownload()
	case key.Matches(msg, m.keyMap.Copy):
		return m, m.copyLink()
	case key.Matches(msg, m.keyMap.PrevShot):
		m.gallery = m.gallery.Prev()
		m.dots.Page = max(m.gallery.Position()-1, 0)
	case key.Matches(msg, m.keyMap.NextShot):
		m.gallery = m.gallery.Next()
		m.dots.Page = max(m.gallery.Position()-1, 0)
	case key.Matches(msg, m.keyMap.NextRelated):
		if n := len(m.detail.Related); n > 0 {
			m.related = (m.related + 1) % n
		}
	case key.Matches(msg, m.keyMap.OpenRelated):
		if m.related >= 0 && m.related < len(m.detail.Related) {
			return m, Navigate(DetailScreen, strconv.Itoa(m.detail.Related[m.related].ID))
		}
	default:
		var cmd tea.Cmd

		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Detail) load() tea.Cmd {
	svc := m.svc
	id := m.id

	return func() tea.Msg {
		ctx, cancel := svc.call()
		defer cancel()

		detail, err := svc.Storefront.Detail(ctx, id)

		return detailLoadedMsg{id: id, detail: detail, err: err}
	}
}

func (m *Detail) openDownload() tea.Cmd {
	svc := m.svc
	app := m.detail.Application

	return func() tea.Msg {
		ctx, cancel := svc.call()
		defer cancel()

		notice, err := svc.Links.OpenDownload(ctx, app)

		return noticeFor(svc, notice, err)
	}
}

func (m *Detail) copyLink() tea.Cmd {
	svc := m.svc
	app := m.detail.Application

	return func() tea.Msg {
		notice, err := svc.Links.CopyLink(app)

		return noticeFor(svc, notice, err)
	}
}

// noticeFor turns an action outcome into a NoticeMsg.
func noticeFor(svc Services, notice application.Notice, err error) NoticeMsg {
	if err != nil {
		return NoticeMsg{
			Notice: application.Notice{Title: svc.Translate("notice.error", nil), Message: err.Error()},
			Err:    err,
		}
	}

	return NoticeMsg{Notice: notice}
}

// syncViewport sizes the viewport to the space left by the header and the
// panels below it. rerender regenerates the markdown body.
func (m *Detail) syncViewport(rerender bool) {
	if !m.loaded || m.err != nil {
		return
	}

	if rerender {
		rendered, err := m.renderer.Render(m.markdown())
		if err != nil {
			rendered = m.markdown()
		}

		m.viewport.SetContent(rendered)
		m.viewport.GotoTop()
	}

	if m.width <= 0 || m.height <= 0 {
		return
	}

	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())

	for _, part := range []string{m.renderGallery(), m.renderRelated(), m.toast.View(m.styles)} {
		if part != "" {
			used += lipgloss.Height(part)
		}
	}

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-used, 1)
}

// markdown builds the scrollable body: description, features, the
// information table and the system requirements.
func (m *Detail) markdown() string {
	app := m.detail.Application
	t := m.svc.Translate
	notSpecified := t("notSpecified", nil)

	var builder strings.Builder

	description := app.FullDescription
	if strings.TrimSpace(description) == "" {
		description = app.Description
	}

	fmt.Fprintf(&builder, "## %s\n\n%s\n\n", t("description", nil), description)

	if len(app.Features) > 0 {
		fmt.Fprintf(&builder, "## %s\n\n", t("features", nil))

		for _, feature := range app.Features {
			fmt.Fprintf(&builder, "- %s\n", feature)
		}

		builder.WriteString("\n")
	}

	category := notSpecified
	if app.Category != nil {
		category = application.CategoryLabel(*app.Category, m.svc.T)
	}

	fmt.Fprintf(&builder, "## %s\n\n| | |\n|---|---|\n", t("information", nil))

	rows := [][2]string{
		{t("version", nil), orNotSpecified(app.Version, notSpecified)},
		{t("size", nil), orNotSpecified(app.FileSize, notSpecified)},
		{t("downloads", nil), app.DownloadsText()},
		{t("rating", nil), app.RatingText()},
		{t("lastUpdated", nil), catalog.FormatDate(app.LastUpdated, notSpecified)},
		{t("category", nil), category},
	}

	for _, row := range rows {
		fmt.Fprintf(&builder, "| **%s** | %s |\n", tableCell(row[0]), tableCell(row[1]))
	}

	if strings.TrimSpace(app.SystemRequirements) != "" {
		fmt.Fprintf(&builder, "\n## %s\n\n%s\n", t("systemRequirements", nil), app.SystemRequirements)
	}

	return builder.String()
}

func orNotSpecified(value, notSpecified string) string {
	if strings.TrimSpace(value) == "" {
		return notSpecified
	}

	return value
}

func tableCell(value string) string {
	return strings.ReplaceAll(strings.ReplaceAll(value, "|", `\|`), "\n", " ")
}

func (m *Detail) renderHeader() string {
	app := m.detail.Application

	meta := make([]string, 0, 2)
	if app.Category != nil {
		meta = append(meta, m.styles.CategoryBadge(*app.Category, application.CategoryLabel(*app.Category, m.svc.T)))
	}

	if app.Version != "" {
		meta = append(meta, m.styles.MutedText.Render(m.svc.Translate("version", nil)+" "+app.Version))
	}

	stats := m.styles.Stars(app.Rating, app.RatingText()) + " " +
		m.styles.MutedText.Render(app.RatingText()) + "   " +
		m.styles.MutedText.Render("⬇ "+app.DownloadsText()+" "+m.svc.Translate("downloads", nil))

	lines := []string{m.styles.Title.Render(app.Name)}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, "  ·  "))
	}

	lines = append(lines, stats)

	return m.styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Detail) renderGallery() string {
	if m.gallery.Len() == 0 {
		return ""
	}

	label := fmt.Sprintf("%s %d/%d", m.svc.Translate("screenshots", nil), m.gallery.Position(), m.gallery.Len())
	width := max(m.width-gridPadding*2-stringutil.Width(label), defaultWrap/4)

	return m.styles.Content.Render(
		m.styles.Subtitle.Render(label) + "  " + m.dots.View() + "\n" +
			m.styles.PrimaryText.Render(stringutil.Truncate(m.gallery.Current(), width)),
	)
}

func (m *Detail) renderRelated() string {
	if len(m.detail.Related) == 0 {
		return ""
	}

	items := make([]string, 0, len(m.detail.Related))

	for i, app := range m.detail.Related {
		label := app.Name + " " + m.styles.Stars(app.Rating, "")
		if i == m.related {
			items = append(items, m.styles.Selected.Render(app.Name))

			continue
		}

		items = append(items, m.styles.Unselected.Render(label))
	}

	return m.styles.Content.Render(
		m.styles.Subtitle.Render(m.svc.Translate("similarApps", nil)) + "  " + strings.Join(items, " "),
	)
}

func (m *Detail) renderError() string {
	if errors.Is(m.err, domain.ErrNotFound) {
		return m.styles.Container.Render(
			m.styles.ErrorText.Bold(true).Render(m.svc.Translate("appNotFound", nil)) + "\n" +
				m.styles.MutedText.Render(m.svc.Translate("appNotFoundMessage", nil)),
		)
	}

	return m.styles.Container.Render(
		m.styles.ErrorText.Render(m.styles.StatusIcon("error") + " " + m.err.Error()),
	)
}

func (m *Detail) renderFooter() string {
	if !m.loaded || m.err != nil {
		return RenderFooter(m.styles, m.width, []FooterAction{
			{Key: "esc", Action: m.svc.Translate("back", nil)},
		}, m.svc.Translate("help", nil))
	}

	return RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "esc", Action: m.svc.Translate("back", nil)},
		{Key: "d", Action: m.svc.Translate("download", nil)},
		{Key: "c", Action: m.svc.Translate("share", nil)},
		{Key: "[ ]", Action: m.svc.Translate("screenshots", nil)},
		{Key: "tab", Action: m.svc.Translate("similarApps", nil)},
	}, m.svc.Translate("help", nil))
}
