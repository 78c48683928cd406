// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/icons"
	"github.com/janderssonse/appstore/internal/tui/forms"
	"github.com/janderssonse/appstore/internal/tui/styles"
)

// Admin tabs.
const (
	CategoriesTab = iota
	ApplicationsTab
)

const maxFormWidth = 80

// AdminKeyMap defines the admin screen key bindings.
type AdminKeyMap struct {
	Back    key.Binding
	Tab     key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Help    key.Binding
}

// DefaultAdminKeyMap returns the admin screen key bindings.
func DefaultAdminKeyMap() AdminKeyMap {
	return AdminKeyMap{
		Back:    key.NewBinding(key.WithKeys(KeyEsc), key.WithHelp("esc", "back to store")),
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch list")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "create")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys(KeyHelp), key.WithHelp("?", "help")),
	}
}

type formMode int

const (
	formNone formMode = iota
	formCreate
	formEdit
	formDelete
)

type adminLoadedMsg struct {
	categories []catalog.Category
	apps       []catalog.Application
	err        error
}

type mutationDoneMsg struct {
	result domain.MutationResult
	err    error
}

// Admin manages categories and applications. Forms and confirmations are
// huh forms embedded in the screen.
type Admin struct {
	svc    Services
	styles *styles.Styles
	keyMap AdminKeyMap
	width  int
	height int

	tab        int
	categories []catalog.Category
	apps       []catalog.Application
	table      table.Model

	form         *huh.Form
	mode         formMode
	target       int
	targetName   string
	categoryForm *application.CategoryForm
	appForm      *application.ApplicationForm
	confirmed    *bool

	spinner spinner.Model
	loading bool
	err     error
	toast   Toast
}

// NewAdmin creates the admin screen.
func NewAdmin(styleConfig *styles.Styles, svc Services) *Admin {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styleConfig.Muted).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(styleConfig.Background).
		Background(styleConfig.Primary)

	admin := &Admin{
		svc:     svc.withDefaults(),
		styles:  styleConfig,
		keyMap:  DefaultAdminKeyMap(),
		table:   table.New(table.WithFocused(true), table.WithStyles(tableStyles)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleConfig.PrimaryText)),
		loading: true,
	}
	admin.syncTable()

	return admin
}

// Init loads both lists.
func (m *Admin) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// CapturesInput reports whether a form owns the keyboard.
func (m *Admin) CapturesInput() bool {
	return m.form != nil
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *Admin) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncTable()

		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-gridPadding, maxFormWidth))
		}

		return m, nil
	case adminLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.categories = storedCategories(msg.categories)
			m.apps = msg.apps
		}

		m.syncTable()

		return m, nil
	case mutationDoneMsg:
		return m.handleMutation(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case RefreshMsg:
		return m, m.reload()
	case NoticeMsg:
		var cmd tea.Cmd

		m.toast, cmd = m.toast.Show(msg.Notice, msg.Err != nil)
		m.syncTable()

		return m, cmd
	case dismissToastMsg:
		m.toast = m.toast.Update(msg)
		m.syncTable()

		return m, nil
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}

		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *Admin) View() string {
	sections := []string{m.renderHeader(), m.renderTabs()}

	switch {
	case m.form != nil:
		sections = append(sections, m.styles.Content.Render(m.form.View()))
	case m.loading:
		sections = append(sections, m.styles.Content.Render(m.spinner.View()+" "+m.svc.Translate("loading", nil)))
	case m.err != nil:
		sections = append(sections, m.styles.Content.Render(
			m.styles.ErrorText.Render(m.styles.StatusIcon("error")+" "+m.err.Error())))
	case len(m.table.Rows()) == 0:
		sections = append(sections, m.styles.Content.Render(m.styles.MutedText.Render(m.svc.Translate("adminPanel.empty", nil))))
	default:
		sections = append(sections, m.styles.Content.Render(m.table.View()))
	}

	if toast := m.toast.View(m.styles); toast != "" {
		sections = append(sections, toast)
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Tab returns the active list.
func (m *Admin) Tab() int {
	return m.tab
}

func (m *Admin) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m, Navigate(StoreScreen, RefreshData)
	case key.Matches(msg, m.keyMap.Tab):
		m.tab = (m.tab + 1) % 2
		m.table.SetCursor(0)
		m.syncTable()

		return m, nil
	case key.Matches(msg, m.keyMap.New):
		return m, m.openForm(formCreate)
	case key.Matches(msg, m.keyMap.Edit):
		return m, m.openForm(formEdit)
	case key.Matches(msg, m.keyMap.Delete):
		return m, m.openForm(formDelete)
	case key.Matches(msg, m.keyMap.Refresh):
		return m, m.reload()
	case key.Matches(msg, m.keyMap.Help):
		return m, Navigate(HelpScreen, nil)
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// openForm starts a create, edit or delete flow on the active list. Edit
// and delete act on the highlighted row.
func (m *Admin) openForm(mode formMode) tea.Cmd {
	t := m.svc.T

	if mode != formCreate && !m.selectTarget() {
		return nil
	}

	m.mode = mode

	switch {
	case mode == formDelete:
		confirmed := false
		m.confirmed = &confirmed
		m.form = forms.Confirm(m.confirmed, t, m.targetName)
	case m.tab == CategoriesTab:
		m.categoryForm = &application.CategoryForm{}
		title := t("adminPanel.newCategory", nil)

		if mode == formEdit {
			m.categoryForm = categoryFormOf(m.categories[m.table.Cursor()])
			title = t("adminPanel.editCategory", nil)
		}

		m.form = forms.Category(m.categoryForm, t, title)
	default:
		m.appForm = &application.ApplicationForm{}
		title := t("adminPanel.newApplication", nil)

		if mode == formEdit {
			m.appForm = applicationFormOf(m.apps[m.table.Cursor()])
			title = t("adminPanel.editApplication", nil)
		}

		m.form = forms.Application(m.appForm, t, title, m.categories)
	}

	m.form = m.form.WithShowHelp(true)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width-gridPadding, maxFormWidth))
	}

	return m.form.Init()
}

func (m *Admin) selectTarget() bool {
	cursor := m.table.Cursor()

	if m.tab == CategoriesTab {
		if cursor < 0 || cursor >= len(m.categories) {
			return false
		}

		m.target, m.targetName = m.categories[cursor].ID, m.categories[cursor].Name

		return true
	}

	if cursor < 0 || cursor >= len(m.apps) {
		return false
	}

	m.target, m.targetName = m.apps[cursor].ID, m.apps[cursor].Name

	return true
}

func (m *Admin) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == KeyEsc {
		m.closeForm()

		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		submit := m.submit()
		m.closeForm()

		return m, tea.Batch(cmd, submit)
	case huh.StateAborted:
		m.closeForm()
	case huh.StateNormal:
	}

	return m, cmd
}

func (m *Admin) closeForm() {
	m.form = nil
	m.mode = formNone
	m.syncTable()
}

// submit runs the mutation the completed form describes.
func (m *Admin) submit() tea.Cmd {
	if m.mode == formDelete && (m.confirmed == nil || !*m.confirmed) {
		return nil
	}

	svc := m.svc
	mode, tab, target := m.mode, m.tab, m.target

	var (
		categoryForm application.CategoryForm
		appForm      application.ApplicationForm
	)

	if m.categoryForm != nil {
		categoryForm = *m.categoryForm
	}

	if m.appForm != nil {
		appForm = *m.appForm
	}

	return func() tea.Msg {
		ctx, cancel := svc.call()
		defer cancel()

		var (
			result domain.MutationResult
			err    error
		)

		switch {
		case tab == CategoriesTab && mode == formCreate:
			result, err = svc.Admin.CreateCategory(ctx, categoryForm)
		case tab == CategoriesTab && mode == formEdit:
			result, err = svc.Admin.UpdateCategory(ctx, target, categoryForm)
		case tab == CategoriesTab:
			result, err = svc.Admin.DeleteCategory(ctx, target)
		case mode == formCreate:
			result, err = svc.Admin.CreateApplication(ctx, appForm)
		case mode == formEdit:
			result, err = svc.Admin.UpdateApplication(ctx, target, appForm)
		default:
			result, err = svc.Admin.DeleteApplication(ctx, target)
		}

		return mutationDoneMsg{result: result, err: err}
	}
}

func (m *Admin) handleMutation(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	var toastCmd tea.Cmd

	if msg.err != nil {
		m.toast, toastCmd = m.toast.Show(m.svc.Admin.ErrorNotice(msg.err), true)
		m.syncTable()

		return m, toastCmd
	}

	m.toast, toastCmd = m.toast.Show(application.Notice{
		Title:   m.svc.Translate("notice.success", nil),
		Message: msg.result.Notice,
	}, false)

	return m, tea.Batch(toastCmd, m.reload())
}

func (m *Admin) reload() tea.Cmd {
	m.loading = true

	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *Admin) load() tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := svc.call()
		defer cancel()

		categories, _, err := svc.Storefront.Categories(ctx)
		if err != nil {
			return adminLoadedMsg{err: err}
		}

		apps, err := svc.Storefront.Entries(ctx, catalog.AllCategories)

		return adminLoadedMsg{categories: categories, apps: apps, err: err}
	}
}

// storedCategories drops the placeholder set shown when the catalog is empty.
func storedCategories(categories []catalog.Category) []catalog.Category {
	stored := make([]catalog.Category, 0, len(categories))

	for _, category := range categories {
		if !category.Placeholder() {
			stored = append(stored, category)
		}
	}

	return stored
}

func categoryFormOf(category catalog.Category) *application.CategoryForm {
	return &application.CategoryForm{Name: category.Name, Icon: category.Icon, Color: category.Color}
}

func applicationFormOf(app catalog.Application) *application.ApplicationForm {
	form := &application.ApplicationForm{
		Name:        app.Name,
		Description: app.Description,
		DownloadURL: app.DownloadURL,
		Logo:        app.Logo,
		Downloads:   app.Downloads,
	}

	if app.Rating != nil {
		form.Rating = strconv.FormatFloat(*app.Rating, 'f', -1, 64)
	}

	if id := app.CategoryID(); id != 0 {
		form.Category = strconv.Itoa(id)
	}

	return form
}

// syncTable loads the active list into the table and sizes it.
func (m *Admin) syncTable() {
	t := m.svc.Translate

	// An empty table leaves the cursor at -1, so remember it before rows change.
	cursor := max(m.table.Cursor(), 0)

	// Rows go first so they never outnumber the columns being set.
	m.table.SetRows(nil)

	if m.tab == CategoriesTab {
		m.table.SetColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: t("adminPanel.name", nil), Width: 24},
			{Title: t("adminPanel.icon", nil), Width: 16},
			{Title: t("adminPanel.color", nil), Width: 10},
		})

		rows := make([]table.Row, 0, len(m.categories))
		for _, category := range m.categories {
			icon := icons.Lookup(category.Icon)
			rows = append(rows, table.Row{
				strconv.Itoa(category.ID), category.Name, icon.Glyph() + " " + icon.Name(), forms.ColorName(category.Color),
			})
		}

		m.table.SetRows(rows)
	} else {
		m.table.SetColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: t("adminPanel.name", nil), Width: 28},
			{Title: t("category", nil), Width: 16},
			{Title: t("rating", nil), Width: 8},
			{Title: t("downloads", nil), Width: 12},
		})

		rows := make([]table.Row, 0, len(m.apps))
		for _, app := range m.apps {
			rows = append(rows, table.Row{
				strconv.Itoa(app.ID), app.Name, app.CategoryName(), app.RatingText(), app.DownloadsText(),
			})
		}

		m.table.SetRows(rows)
	}

	if rows := len(m.table.Rows()); rows > 0 {
		m.table.SetCursor(min(cursor, rows-1))
	}

	if m.height > 0 {
		used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderTabs()) + lipgloss.Height(m.renderFooter())
		if toast := m.toast.View(m.styles); toast != "" {
			used += lipgloss.Height(toast)
		}

		m.table.SetHeight(max(m.height-used, 3))
	}

	if m.width > 0 {
		m.table.SetWidth(m.width - gridPadding)
	}
}

func (m *Admin) renderHeader() string {
	return m.styles.Header.Render(m.styles.Logo(m.svc.Translate("adminPanel.title", nil)))
}

func (m *Admin) renderTabs() string {
	labels := []string{m.svc.Translate("adminPanel.categories", nil), m.svc.Translate("adminPanel.applications", nil)}
	tabs := make([]string, 0, len(labels))

	for i, label := range labels {
		if i == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))

			continue
		}

		tabs = append(tabs, m.styles.Tab.Render(label))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Admin) renderFooter() string {
	if m.form != nil {
		return RenderFooter(m.styles, m.width, []FooterAction{
			{Key: "enter", Action: "confirm"},
			{Key: "esc", Action: "cancel"},
		}, "")
	}

	return RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "tab", Action: "switch"},
		{Key: "n", Action: "new"},
		{Key: "e", Action: "edit"},
		{Key: "x", Action: "delete"},
		{Key: "esc", Action: m.svc.Translate("back", nil)},
	}, m.svc.Translate("help", nil))
}
