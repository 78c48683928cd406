// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/stringutil"
	"github.com/janderssonse/appstore/internal/tui/styles"
)

// Card grid layout.
const (
	cardMinWidth     = 34
	maxCardColumns   = 3
	descriptionLines = 2
	searchCharLimit  = 100
	gridPadding      = 4
)

// StoreKeyMap defines the storefront key bindings.
type StoreKeyMap struct {
	Search       key.Binding
	Clear        key.Binding
	Up           key.Binding
	Down         key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	PageSize     key.Binding
	Open         key.Binding
	Admin        key.Binding
	Refresh      key.Binding
	Help         key.Binding
}

// DefaultStoreKeyMap returns the storefront key bindings.
func DefaultStoreKeyMap() StoreKeyMap {
	return StoreKeyMap{
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:        key.NewBinding(key.WithKeys(KeyEsc), key.WithHelp("esc", "clear search")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous app")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next app")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous page")),
		NextPage:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		NextCategory: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		PrevCategory: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous category")),
		PageSize:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "page size")),
		Open:         key.NewBinding(key.WithKeys(KeyEnter), key.WithHelp("enter", "details")),
		Admin:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "admin")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:         key.NewBinding(key.WithKeys(KeyHelp), key.WithHelp("?", "help")),
	}
}

type categoriesLoadedMsg struct {
	categories []catalog.Category
	err        error
}

type entriesLoadedMsg struct {
	categoryID int
	entries    []catalog.Application
	err        error
}

// Store is the storefront screen: category tabs, search, and a paged card
// grid. Search and paging run locally over the entries of the selected
// category; only a category change goes back to the catalog.
type Store struct {
	svc    Services
	styles *styles.Styles
	keyMap StoreKeyMap
	width  int
	height int

	categories []catalog.Category
	tab        int // 0 is "All"
	query      catalog.Query
	entries    []catalog.Application
	result     catalog.Result
	cursor     int

	search    textinput.Model
	searching bool

	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	err      error
	toast    Toast
}

// NewStore creates the storefront screen.
func NewStore(styleConfig *styles.Styles, svc Services) *Store {
	svc = svc.withDefaults()

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = svc.Translate("search", nil)
	input.CharLimit = searchCharLimit

	query := catalog.NewQuery()
	if slices.Contains(catalog.PageSizes, svc.PageSize) {
		query = query.WithPageSize(svc.PageSize)
	}

	store := &Store{
		svc:        svc,
		styles:     styleConfig,
		keyMap:     DefaultStoreKeyMap(),
		categories: catalog.DefaultCategories,
		query:      query,
		search:     input,
		viewport:   viewport.New(0, 0),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleConfig.PrimaryText)),
		loading:    true,
	}
	store.refreshView()

	return store
}

// Init loads the categories and the first listing.
func (m *Store) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCategories(), m.loadEntries())
}

// CapturesInput reports whether the search field owns the keyboard.
func (m *Store) CapturesInput() bool {
	return m.searching
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *Store) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-gridPadding*4, searchCharLimit/10)
		m.syncViewport()

		return m, nil
	case categoriesLoadedMsg:
		return m.handleCategories(msg)
	case entriesLoadedMsg:
		return m.handleEntries(msg)
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
		m.syncViewport()

		return m, cmd
	case dismissToastMsg:
		m.toast = m.toast.Update(msg)
		m.syncViewport()

		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}

		return m.handleKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *Store) View() string {
	sections := []string{m.renderHeader(), m.renderTabs(), m.renderBody()}

	if toast := m.toast.View(m.styles); toast != "" {
		sections = append(sections, toast)
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Store) handleCategories(msg categoriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var cmd tea.Cmd

		m.toast, cmd = m.toast.Show(application.Notice{
			Title:   m.svc.Translate("notice.error", nil),
			Message: msg.err.Error(),
		}, true)

		return m, cmd
	}

	selected := m.query.CategoryID
	m.categories = msg.categories
	m.tab = 0

	for i, category := range m.categories {
		if category.ID == selected {
			m.tab = i + 1
		}
	}

	if m.tab == 0 && selected != catalog.AllCategories {
		// The selected category disappeared.
		m.query = m.query.WithCategory(catalog.AllCategories)

		return m, m.reload()
	}

	m.syncViewport()

	return m, nil
}

func (m *Store) handleEntries(msg entriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.categoryID != m.query.CategoryID {
		return m, nil
	}

	m.loading = false
	m.err = msg.err
	m.entries = msg.entries
	m.refreshView()

	return m, nil
}

func (m *Store) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		m.searching = false
		m.search.Blur()
		m.syncViewport()

		return m, nil
	case KeyEsc:
		m.searching = false
		m.search.Blur()
		m.clearSearch()

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != m.query.Search {
		m.query = m.query.WithSearch(m.search.Value())
		m.cursor = 0
		m.refreshView()
	}

	return m, cmd
}

//nolint:cyclop // one case per key binding
func (m *Store) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Search):
		m.searching = true
		m.syncViewport()

		return m, m.search.Focus()
	case key.Matches(msg, m.keyMap.Clear):
		m.clearSearch()
	case key.Matches(msg, m.keyMap.NextCategory):
		return m, m.selectTab(m.tab + 1)
	case key.Matches(msg, m.keyMap.PrevCategory):
		return m, m.selectTab(m.tab - 1)
	case key.Matches(msg, m.keyMap.PrevPage):
		m.setQuery(m.query.PrevPage(m.result))
	case key.Matches(msg, m.keyMap.NextPage):
		m.setQuery(m.query.NextPage(m.result))
	case key.Matches(msg, m.keyMap.PageSize):
		m.setQuery(m.query.NextPageSize())
	case key.Matches(msg, m.keyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keyMap.Open):
		if app, ok := m.Selected(); ok {
			return m, Navigate(DetailScreen, strconv.Itoa(app.ID))
		}
	case key.Matches(msg, m.keyMap.Admin):
		return m, Navigate(AdminScreen, RefreshData)
	case key.Matches(msg, m.keyMap.Refresh):
		return m, m.reload()
	case key.Matches(msg, m.keyMap.Help):
		return m, Navigate(HelpScreen, nil)
	default:
		m.jumpTo(msg.String())
	}

	return m, nil
}

// Selected returns the highlighted application on the current page.
func (m *Store) Selected() (catalog.Application, bool) {
	if m.cursor < 0 || m.cursor >= len(m.result.Items) {
		return catalog.Application{}, false
	}

	return m.result.Items[m.cursor], true
}

// Query returns the current listing query.
func (m *Store) Query() catalog.Query {
	return m.query
}

func (m *Store) clearSearch() {
	if m.query.Search == "" && m.search.Value() == "" {
		return
	}

	m.search.SetValue("")
	m.setQuery(m.query.WithSearch(""))
}

// jumpTo moves to page n when a digit names one of the visible pages.
func (m *Store) jumpTo(digit string) {
	n, err := strconv.Atoi(digit)
	if err != nil || n < 1 || n > 9 {
		return
	}

	for _, marker := range m.result.Pages {
		if !marker.IsEllipsis() && marker.Page() == n {
			m.setQuery(m.query.WithPage(n))

			return
		}
	}
}

func (m *Store) moveCursor(delta int) {
	if len(m.result.Items) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.result.Items)-1)
	m.syncViewport()
}

func (m *Store) setQuery(query catalog.Query) {
	if query == m.query {
		return
	}

	m.query = query
	m.cursor = 0
	m.refreshView()
}

// selectTab switches category, wrapping around, and fetches its entries.
func (m *Store) selectTab(tab int) tea.Cmd {
	count := len(m.categories) + 1
	m.tab = (tab%count + count) % count

	categoryID := catalog.AllCategories
	if m.tab > 0 {
		categoryID = m.categories[m.tab-1].ID
	}

	m.query = m.query.WithCategory(categoryID)

	return m.reload()
}

func (m *Store) reload() tea.Cmd {
	m.loading = true
	m.entries = nil
	m.cursor = 0
	m.refreshView()

	return tea.Batch(m.spinner.Tick, m.loadCategories(), m.loadEntries())
}

func (m *Store) loadCategories() tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := svc.call()
		defer cancel()

		categories, _, err := svc.Storefront.Categories(ctx)

		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m *Store) loadEntries() tea.Cmd {
	svc := m.svc
	categoryID := m.query.CategoryID

	return func() tea.Msg {
		ctx, cancel := svc.call()
		defer cancel()

		entries, err := svc.Storefront.Entries(ctx, categoryID)

		return entriesLoadedMsg{categoryID: categoryID, entries: entries, err: err}
	}
}

// refreshView reruns the search and paging pipeline over the loaded entries.
func (m *Store) refreshView() {
	result, err := catalog.View(m.entries, m.query)
	if err != nil {
		m.err = err
		result = catalog.Result{}
	} else {
		m.query = m.query.WithPage(result.Window.Page)
	}

	m.result = result
	m.cursor = min(m.cursor, max(len(result.Items)-1, 0))
	m.syncViewport()
}

// syncViewport lays the card grid out into the viewport and keeps the
// highlighted card visible.
func (m *Store) syncViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	chrome := []string{m.renderHeader(), m.renderTabs(), m.renderSummary(), m.renderPager(), m.renderFooter()}
	if toast := m.toast.View(m.styles); toast != "" {
		chrome = append(chrome, toast)
	}

	used := 0
	for _, part := range chrome {
		used += lipgloss.Height(part)
	}

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-used, 1)

	grid, rowTop, rowBottom := m.renderGrid()
	m.viewport.SetContent(grid)

	switch {
	case rowTop < m.viewport.YOffset:
		m.viewport.SetYOffset(rowTop)
	case rowBottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(rowBottom - m.viewport.Height)
	}
}

func (m *Store) columns() int {
	return min(max((m.width-gridPadding)/cardMinWidth, 1), maxCardColumns)
}

// renderGrid returns the card rows plus the line span of the row holding
// the cursor.
func (m *Store) renderGrid() (string, int, int) {
	columns := m.columns()
	cardWidth := max((m.width-gridPadding)/columns, cardMinWidth/2)

	rows := make([]string, 0, len(m.result.Items)/columns+1)
	lines, rowTop, rowBottom := 0, 0, 0

	for start := 0; start < len(m.result.Items); start += columns {
		end := min(start+columns, len(m.result.Items))
		cards := make([]string, 0, columns)

		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.result.Items[i], cardWidth, i == m.cursor))
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
		height := lipgloss.Height(row)

		if m.cursor >= start && m.cursor < end {
			rowTop, rowBottom = lines, lines+height
		}

		lines += height
		rows = append(rows, row)
	}

	return lipgloss.NewStyle().PaddingLeft(gridPadding/2).Render(strings.Join(rows, "\n")), rowTop, rowBottom
}

func (m *Store) renderCard(app catalog.Application, width int, selected bool) string {
	style := m.styles.Card
	if selected {
		style = m.styles.SelectedCard
	}

	inner := max(width-style.GetHorizontalFrameSize(), 1)

	lines := []string{m.styles.Title.Render(stringutil.Truncate(app.Name, inner))}

	if app.Category != nil {
		label := application.CategoryLabel(*app.Category, m.svc.T)
		lines = append(lines, m.styles.CategoryBadge(*app.Category, stringutil.Truncate(label, inner-2)))
	}

	description := lipgloss.NewStyle().
		Width(inner).
		Height(descriptionLines).
		Render(stringutil.Truncate(app.Description, inner*descriptionLines-descriptionLines))

	stats := m.styles.Stars(app.Rating, app.RatingText()) + "  " +
		m.styles.MutedText.Render("⬇ "+app.DownloadsText())

	lines = append(lines, description, stats)

	return style.Width(width - style.GetHorizontalBorderSize()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Store) renderHeader() string {
	title := m.styles.Logo(m.svc.Translate("appStore", nil))

	search := m.search.View()
	if !m.searching && m.query.Search != "" {
		search = m.styles.PrimaryText.Render(m.svc.Translate("searchResults", map[string]any{"query": m.query.Search}))
	}

	return m.styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left, title, search))
}

func (m *Store) renderTabs() string {
	tabs := make([]string, 0, len(m.categories)+1)

	style := m.styles.Tab
	if m.tab == 0 {
		style = m.styles.ActiveTab
	}

	tabs = append(tabs, style.Render(m.svc.Translate("allCategories", nil)))

	for i, category := range m.categories {
		label := application.CategoryLabel(category, m.svc.T)

		if m.tab == i+1 {
			tabs = append(tabs, m.styles.ActiveTab.Render(m.styles.CategoryBadge(category, label)))

			continue
		}

		tabs = append(tabs, m.styles.Tab.Render(m.styles.CategoryBadge(category, label)))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Store) renderBody() string {
	content := m.styles.Content

	switch {
	case m.loading && len(m.entries) == 0:
		return content.Render(m.spinner.View() + " " + m.svc.Translate("loading", nil))
	case m.err != nil && len(m.entries) == 0:
		return content.Render(m.styles.ErrorText.Render(m.styles.StatusIcon("error")+" "+m.err.Error()) + "\n" +
			m.styles.Keybinding("r", "retry"))
	case m.result.Empty():
		title, message := m.svc.Storefront.EmptyMessage(m.query)

		body := m.styles.Subtitle.Render(title)
		if message != "" {
			body += "\n" + m.styles.MutedText.Render(message)
		}

		return content.Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderSummary(), m.viewport.View(), m.renderPager())
}

func (m *Store) renderSummary() string {
	if m.result.Empty() {
		return ""
	}

	return m.styles.Content.Render(m.styles.MutedText.Render(m.svc.Storefront.Summary(m.result.Window)))
}

// renderPager renders the previous/next controls, the visible page numbers
// and the page-size selector.
func (m *Store) renderPager() string {
	if m.result.Empty() {
		return ""
	}

	parts := make([]string, 0, len(m.result.Pages)+3)

	if len(m.result.Pages) > 0 {
		parts = append(parts, m.pagerLink("← "+m.svc.Translate("previous", nil), m.result.Window.HasPrevious()))

		for _, marker := range m.result.Pages {
			switch {
			case marker.IsEllipsis():
				parts = append(parts, m.styles.MutedText.Render(marker.String()))
			case marker.Page() == m.result.Window.Page:
				parts = append(parts, m.styles.Selected.Render(marker.String()))
			default:
				parts = append(parts, m.styles.Unselected.Render(marker.String()))
			}
		}

		parts = append(parts, m.pagerLink(m.svc.Translate("next", nil)+" →", m.result.Window.HasNext()))
	}

	sizes := make([]string, 0, len(catalog.PageSizes))

	for _, size := range catalog.PageSizes {
		label := strconv.Itoa(size)
		if size == m.query.PageSize {
			sizes = append(sizes, m.styles.Selected.Render(label))

			continue
		}

		sizes = append(sizes, m.styles.Unselected.Render(label))
	}

	selector := m.styles.MutedText.Render(m.svc.Translate("showPerPage", nil)) + " " + strings.Join(sizes, "") +
		" " + m.styles.MutedText.Render(m.svc.Translate("perPage", map[string]any{"count": m.query.PageSize}))

	if len(parts) == 0 {
		return m.styles.Content.Render(selector)
	}

	return m.styles.Content.Render(strings.Join(parts, " ") + "    " + selector)
}

func (m *Store) pagerLink(label string, enabled bool) string {
	if !enabled {
		return m.styles.MutedText.Faint(true).Render(label)
	}

	return m.styles.PrimaryText.Render(label)
}

func (m *Store) renderFooter() string {
	if m.searching {
		return RenderFooter(m.styles, m.width, []FooterAction{
			{Key: "enter", Action: "keep"},
			{Key: "esc", Action: m.svc.Translate("clearSearch", nil)},
		}, "")
	}

	return RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "/", Action: "search"},
		{Key: "tab", Action: m.svc.Translate("category", nil)},
		{Key: "←→", Action: "page"},
		{Key: "s", Action: "size"},
		{Key: "enter", Action: "open"},
		{Key: "a", Action: m.svc.Translate("admin", nil)},
		{Key: "q", Action: m.svc.Translate("quit", nil)},
	}, m.svc.Translate("help", nil))
}
