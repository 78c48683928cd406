// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/tui/styles"
)

// ToastDuration is how long a notice stays on screen.
const ToastDuration = 3 * time.Second

// NoticeMsg carries the outcome of a background action.
type NoticeMsg struct {
	Notice application.Notice
	Err    error
}

type dismissToastMsg struct {
	seq int64
}

// toastSeq numbers toasts across screens so a dismiss tick only ever matches
// the toast that scheduled it.
var toastSeq atomic.Int64 //nolint:gochecknoglobals

// Toast shows one notice at a time and dismisses it after ToastDuration.
type Toast struct {
	notice  application.Notice
	isError bool
	visible bool
	seq     int64
}

// Show displays notice, replacing any visible one.
func (t Toast) Show(notice application.Notice, isError bool) (Toast, tea.Cmd) {
	t.notice = notice
	t.isError = isError
	t.visible = true
	t.seq = toastSeq.Add(1)

	seq := t.seq

	return t, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return dismissToastMsg{seq: seq}
	})
}

// Update hides the toast when its own dismiss tick arrives.
func (t Toast) Update(msg tea.Msg) Toast {
	if dismiss, ok := msg.(dismissToastMsg); ok && dismiss.seq == t.seq {
		t.visible = false
	}

	return t
}

// Visible reports whether a notice is showing.
func (t Toast) Visible() bool {
	return t.visible
}

// Notice returns the current notice.
func (t Toast) Notice() application.Notice {
	return t.notice
}

// View renders the toast, or "" when hidden.
func (t Toast) View(styleConfig *styles.Styles) string {
	if !t.visible {
		return ""
	}

	style := styleConfig.Toast
	title := styleConfig.SuccessText.Bold(true).Render(styleConfig.StatusIcon("success") + " " + t.notice.Title)

	if t.isError {
		style = styleConfig.ErrorToast
		title = styleConfig.ErrorText.Bold(true).Render(styleConfig.StatusIcon("error") + " " + t.notice.Title)
	}

	if t.notice.Message == "" {
		return style.Render(title)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, t.notice.Message))
}
