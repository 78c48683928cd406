// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package icons maps category icon and color names stored in the catalog to
// symbols and colors the terminal can render.
package icons

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/appstore/internal/catalog"
)

// Icon identifies one of the category icons the storefront knows how to draw.
type Icon int

// Known category icons. Settings is the fallback for unknown names.
const (
	Settings Icon = iota
	Gamepad
	MessageCircle
	BookOpen
	Briefcase
	Camera
	Music
	Code
	Globe
	Heart
)

type iconInfo struct {
	name  string
	glyph string
}

// The name is the Lucide identifier used by the content service.
var iconTable = map[Icon]iconInfo{ //nolint:gochecknoglobals
	Settings:      {"Settings", "⚙"},
	Gamepad:       {"Gamepad2", "🎮"},
	MessageCircle: {"MessageCircle", "💬"},
	BookOpen:      {"BookOpen", "📖"},
	Briefcase:     {"Briefcase", "💼"},
	Camera:        {"Camera", "📷"},
	Music:         {"Music", "🎵"},
	Code:          {"Code", "⌨"},
	Globe:         {"Globe", "🌐"},
	Heart:         {"Heart", "♥"},
}

var iconsByName = func() map[string]Icon { //nolint:gochecknoglobals
	byName := make(map[string]Icon, len(iconTable))
	for icon, info := range iconTable {
		byName[strings.ToLower(info.name)] = icon
	}

	return byName
}()

// Find resolves an icon name case-insensitively.
func Find(name string) (Icon, bool) {
	icon, ok := iconsByName[strings.ToLower(strings.TrimSpace(name))]

	return icon, ok
}

// Lookup resolves an icon name, falling back to Settings.
func Lookup(name string) Icon {
	if icon, ok := Find(name); ok {
		return icon
	}

	return Settings
}

// Glyph returns the symbol drawn for icon.
func (i Icon) Glyph() string {
	if info, ok := iconTable[i]; ok {
		return info.glyph
	}

	return iconTable[Settings].glyph
}

// Name returns the catalog name of icon.
func (i Icon) Name() string {
	if info, ok := iconTable[i]; ok {
		return info.name
	}

	return iconTable[Settings].name
}

// Names lists every known icon name in declaration order, for form options.
func Names() []string {
	names := make([]string, 0, len(iconTable))
	for icon := Settings; icon <= Heart; icon++ {
		names = append(names, icon.Name())
	}

	return names
}

// DefaultColor is the color class used when a category has none or an unknown one.
const DefaultColor = catalog.DefaultColor

type swatch struct {
	class string
	color lipgloss.Color
}

// palette is the single source for both the selectable classes and their
// terminal colors.
var palette = []swatch{ //nolint:gochecknoglobals
	{"bg-blue-500", lipgloss.Color("#3b82f6")},
	{"bg-green-500", lipgloss.Color("#22c55e")},
	{"bg-purple-500", lipgloss.Color("#a855f7")},
	{"bg-orange-500", lipgloss.Color("#f97316")},
	{"bg-pink-500", lipgloss.Color("#ec4899")},
	{"bg-gray-500", lipgloss.Color("#6b7280")},
	{"bg-red-500", lipgloss.Color("#ef4444")},
	{"bg-yellow-500", lipgloss.Color("#eab308")},
}

var colorTable = func() map[string]lipgloss.Color { //nolint:gochecknoglobals
	table := make(map[string]lipgloss.Color, len(palette))
	for _, entry := range palette {
		table[entry.class] = entry.color
	}

	return table
}()

// ColorClasses lists the selectable color classes in display order.
var ColorClasses = func() []string { //nolint:gochecknoglobals
	classes := make([]string, 0, len(palette))
	for _, entry := range palette {
		classes = append(classes, entry.class)
	}

	return classes
}()

// Color returns the terminal color for a stored color class, falling back
// to DefaultColor.
func Color(class string) lipgloss.Color {
	if color, ok := colorTable[strings.TrimSpace(class)]; ok {
		return color
	}

	return colorTable[DefaultColor]
}

// KnownColor reports whether class is one of the mapped color classes.
func KnownColor(class string) bool {
	_, ok := colorTable[class]

	return ok
}
