// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles holds the storefront palette and the lipgloss styles built from it.
package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/icons"
)

// maxStars is the number of stars in a rating.
const maxStars = 5

// Styles is the shared style sheet passed to every screen.
type Styles struct {
	// Color palette
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Cards, tabs and toasts
	Header       lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Selected     lipgloss.Style
	Unselected   lipgloss.Style
	Border       lipgloss.Style
	Toast        lipgloss.Style
	ErrorToast   lipgloss.Style

	// Text
	MutedText   lipgloss.Style
	PrimaryText lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style

	// Layout
	Container lipgloss.Style
	Content   lipgloss.Style
}

// New builds the style sheet from the Tokyo Night palette.
func New() *Styles {
	// Tokyo Night color palette
	primary := lipgloss.Color("#7aa2f7")    // Blue
	secondary := lipgloss.Color("#bb9af7")  // Purple
	success := lipgloss.Color("#9ece6a")    // Green
	warning := lipgloss.Color("#e0af68")    // Yellow
	errorColor := lipgloss.Color("#f7768e") // Red
	info := lipgloss.Color("#7dcfff")       // Cyan
	muted := lipgloss.Color("#565f89")      // Gray

	background := lipgloss.Color("#1a1b26") // Dark background
	foreground := lipgloss.Color("#c0caf5") // Light foreground

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	return &Styles{
		Primary:    primary,
		Secondary:  secondary,
		Success:    success,
		Warning:    warning,
		Error:      errorColor,
		Info:       info,
		Muted:      muted,
		Background: background,
		Foreground: foreground,

		Header: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), false, false, true, false).
			BorderForeground(primary),

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),

		Card:         card,
		SelectedCard: card.BorderForeground(primary),

		Tab: lipgloss.NewStyle().
			Foreground(foreground).
			Padding(0, 1).
			MarginRight(1).
			Faint(true),

		ActiveTab: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Bold(true).
			Padding(0, 1).
			MarginRight(1),

		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Padding(0, 1),

		Unselected: lipgloss.NewStyle().
			Foreground(foreground).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary),

		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Padding(0, 1),

		ErrorToast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1),

		// Text
		MutedText: lipgloss.NewStyle().
			Foreground(muted),

		PrimaryText: lipgloss.NewStyle().
			Foreground(primary),

		SuccessText: lipgloss.NewStyle().
			Foreground(success),

		ErrorText: lipgloss.NewStyle().
			Foreground(errorColor),

		WarningText: lipgloss.NewStyle().
			Foreground(warning),

		Container: lipgloss.NewStyle().
			Padding(1, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 2),
	}
}

// Logo returns the styled storefront title.
func (s *Styles) Logo(title string) string {
	return s.Title.Render("▣ " + title)
}

// CategoryBadge renders a category with its icon in its color.
func (s *Styles) CategoryBadge(category catalog.Category, label string) string {
	icon := icons.Lookup(category.Icon)

	return lipgloss.NewStyle().
		Foreground(icons.Color(category.Color)).
		Render(icon.Glyph() + " " + label)
}

// Stars renders a rating as five stars, or the muted fallback when unset.
func (s *Styles) Stars(rating *float64, fallback string) string {
	if rating == nil || *rating <= 0 {
		return s.MutedText.Render(fallback)
	}

	filled := min(int(math.Round(*rating)), maxStars)

	return lipgloss.NewStyle().Foreground(s.Warning).Render(strings.Repeat("★", filled)) +
		s.MutedText.Render(strings.Repeat("☆", maxStars-filled))
}

// StatusIcon returns a single colored status glyph with no padding.
func (s *Styles) StatusIcon(status string) string {
	style := s.MutedText

	var icon string

	switch status {
	case "success":
		style = s.SuccessText
		icon = "✓"
	case "error":
		style = s.ErrorText
		icon = "✗"
	case "warning":
		style = s.WarningText
		icon = "!"
	case "info":
		style = lipgloss.NewStyle().Foreground(s.Info)
		icon = "i"
	default:
		icon = "•"
	}

	return style.Render(icon)
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Muted)

	return keyStyle.Render("["+key+"]") + " " + descStyle.Render(desc)
}
