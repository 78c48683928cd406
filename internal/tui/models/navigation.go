// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models implements the storefront screens using Bubble Tea.
package models

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/i18n"
)

// Screen constants for navigation.
const (
	StoreScreen = iota
	DetailScreen
	AdminScreen
	HelpScreen
)

// Key constants shared by the screens.
const (
	KeyEnter = "enter"
	KeyEsc   = "esc"
	KeyHelp  = "?"
)

// NavigateMsg is a message sent to request navigation to a specific screen.
type NavigateMsg struct {
	Screen int
	Data   any // Optional data to pass to the new screen
}

// BackMsg returns to the previous screen.
type BackMsg struct{}

// Back returns a command emitting a BackMsg.
func Back() tea.Msg {
	return BackMsg{}
}

// RefreshData asks a screen to reload its content when navigated to.
const RefreshData = "refresh"

// RefreshMsg tells the receiving screen to reload from the catalog.
type RefreshMsg struct{}

// Navigate returns a command emitting a NavigateMsg.
func Navigate(screen int, data any) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen, Data: data}
	}
}

// InputCapturer is implemented by screens that own the keyboard while a text
// field or form is focused, so global keys pass through.
type InputCapturer interface {
	CapturesInput() bool
}

// Services is what the screens need from the application layer.
//
//nolint:containedctx // the TUI event loop owns the run context
type Services struct {
	Storefront *application.StorefrontService
	Admin      *application.AdminService
	Links      *application.LinkService
	T          i18n.Lookup
	PageSize   int
	Timeout    time.Duration

	ctx context.Context
}

// WithContext binds the run context used by background commands.
func (s Services) WithContext(ctx context.Context) Services {
	s.ctx = ctx

	return s
}

// Translate looks up key, falling back to the key when no lookup is set.
func (s Services) Translate(key string, params i18n.Params) string {
	if s.T == nil {
		return key
	}

	return s.T(key, params)
}

// withDefaults fills in a passthrough lookup and the default page size.
func (s Services) withDefaults() Services {
	if s.T == nil {
		s.T = i18n.Passthrough()
	}

	if s.PageSize <= 0 {
		s.PageSize = catalog.DefaultPageSize
	}

	return s
}

// call returns a context for one service call, bounded by Timeout.
func (s Services) call() (context.Context, context.CancelFunc) {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.Timeout)
}
