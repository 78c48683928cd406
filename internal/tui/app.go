// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui is the interactive storefront: a Bubble Tea root model that
// owns navigation and delegates each screen to a model in tui/models.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/tui/models"
	"github.com/janderssonse/appstore/internal/tui/styles"
	"golang.org/x/term"
)

// Screen represents different TUI screens.
type Screen int

// Screen constants mirror the models package.
const (
	StoreScreen  = Screen(models.StoreScreen)
	DetailScreen = Screen(models.DetailScreen)
	AdminScreen  = Screen(models.AdminScreen)
	HelpScreen   = Screen(models.HelpScreen)
)

// Services is what the screens need from the application layer.
type Services = models.Services

// helpPreloadedMsg is sent when help content has been pre-rendered.
type helpPreloadedMsg struct {
	model tea.Model
}

// frame is a screen left on the way to the current one.
type frame struct {
	screen Screen
	model  tea.Model
}

// App is the root model following the tree-of-models pattern. Store, admin
// and help models are cached; every detail view is a fresh model kept on the
// history stack until the user goes back past it.
type App struct {
	width         int
	height        int
	styles        *styles.Styles
	services      Services
	currentScreen Screen
	contentModel  tea.Model
	models        map[Screen]tea.Model
	history       []frame
	quitting      bool
}

// NewApp creates the root model starting on the storefront.
func NewApp(services Services) *App {
	app := &App{
		styles:        styles.New(),
		services:      services,
		currentScreen: StoreScreen,
		models:        make(map[Screen]tea.Model),
	}

	store := models.NewStore(app.styles, services)
	app.contentModel = store
	app.models[StoreScreen] = store

	return app
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// Run launches the storefront on the current terminal.
func Run(ctx context.Context, services Services) error {
	if !isTerminal() {
		return fmt.Errorf("terminal check failed: %w", domain.ErrNoTerminal)
	}

	return NewApp(services.WithContext(ctx)).Run(ctx)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	styleConfig, services := a.styles, a.services

	preloadCmd := func() tea.Msg {
		return helpPreloadedMsg{model: models.NewHelp(styleConfig, services)}
	}

	return tea.Batch(a.contentModel.Init(), preloadCmd)
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case helpPreloadedMsg:
		if _, exists := a.models[HelpScreen]; !exists {
			a.models[HelpScreen] = msg.model
		}

		return a, nil
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		return a, a.updateCurrent(msg)
	case models.NavigateMsg:
		return a.handleNavigation(msg)
	case models.BackMsg:
		return a.navigateBack()
	case models.NoticeMsg:
		return a, a.updateCurrent(msg)
	case tea.KeyMsg:
		return a.handleKeyMessage(msg)
	default:
		return a, a.broadcast(msg)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	return a.contentModel.View()
}

// CurrentScreen returns the screen being shown.
func (a *App) CurrentScreen() Screen {
	return a.currentScreen
}

// ContentModel returns the model of the current screen.
//
//nolint:ireturn // screens are heterogeneous tea.Models
func (a *App) ContentModel() tea.Model {
	return a.contentModel
}

// Depth is the number of screens behind the current one.
func (a *App) Depth() int {
	return len(a.history)
}

// handleKeyMessage handles the global quit keys and delegates the rest.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) handleKeyMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true

		return a, tea.Quit
	case "q":
		if capturer, ok := a.contentModel.(models.InputCapturer); !ok || !capturer.CapturesInput() {
			a.quitting = true

			return a, tea.Quit
		}
	}

	return a, a.updateCurrent(msg)
}

// handleNavigation handles navigation messages between screens.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) handleNavigation(msg models.NavigateMsg) (tea.Model, tea.Cmd) {
	target := Screen(msg.Screen)

	switch target {
	case DetailScreen:
		id, _ := msg.Data.(string)

		return a, a.show(DetailScreen, models.NewDetail(a.styles, a.services, id), true, nil)
	case StoreScreen:
		a.history = nil
		a.currentScreen = StoreScreen
		a.contentModel = a.models[StoreScreen]

		return a, a.activate(false, msg.Data)
	case AdminScreen, HelpScreen:
		if a.currentScreen == target {
			return a, nil
		}

		if cached, exists := a.models[target]; exists {
			return a, a.show(target, cached, false, msg.Data)
		}

		model := a.createModelForScreen(target)
		a.models[target] = model

		return a, a.show(target, model, true, nil)
	}

	return a, nil
}

func (a *App) createModelForScreen(screen Screen) tea.Model {
	if screen == AdminScreen {
		return models.NewAdmin(a.styles, a.services)
	}

	return models.NewHelp(a.styles, a.services)
}

// show pushes the current screen onto the history and switches to model.
func (a *App) show(screen Screen, model tea.Model, fresh bool, data any) tea.Cmd {
	a.history = append(a.history, frame{screen: a.currentScreen, model: a.contentModel})
	a.currentScreen = screen
	a.contentModel = model

	return a.activate(fresh, data)
}

// navigateBack returns to the previous screen, or the store when there is
// none.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) navigateBack() (tea.Model, tea.Cmd) {
	if len(a.history) == 0 {
		if a.currentScreen == StoreScreen {
			return a, nil
		}

		return a.handleNavigation(models.NavigateMsg{Screen: int(StoreScreen)})
	}

	previous := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.currentScreen = previous.screen
	a.contentModel = previous.model

	return a, a.activate(false, nil)
}

// activate sizes the current model and initializes or refreshes it.
func (a *App) activate(fresh bool, data any) tea.Cmd {
	var cmds []tea.Cmd

	if fresh {
		cmds = append(cmds, a.contentModel.Init())
	}

	if a.width > 0 && a.height > 0 {
		cmds = append(cmds, a.updateCurrent(tea.WindowSizeMsg{Width: a.width, Height: a.height}))
	}

	if !fresh && data == models.RefreshData {
		cmds = append(cmds, a.updateCurrent(models.RefreshMsg{}))
	}

	return tea.Batch(cmds...)
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	model, cmd := a.contentModel.Update(msg)
	a.contentModel = model

	if _, cached := a.models[a.currentScreen]; cached && a.currentScreen != DetailScreen {
		a.models[a.currentScreen] = model
	}

	return cmd
}

// broadcast delivers background results to every live screen, since the
// screen that started the work may no longer be current. Screens ignore
// messages that are not theirs.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{a.updateCurrent(msg)}
	seen := map[tea.Model]bool{a.contentModel: true}

	for i := range a.history {
		if seen[a.history[i].model] {
			continue
		}

		seen[a.history[i].model] = true

		var cmd tea.Cmd

		a.history[i].model, cmd = a.history[i].model.Update(msg)
		cmds = append(cmds, cmd)
	}

	for screen, model := range a.models {
		if seen[model] {
			continue
		}

		seen[model] = true

		updated, cmd := model.Update(msg)
		a.models[screen] = updated
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

// isTerminal checks that both stdin and stdout are terminals.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
}
