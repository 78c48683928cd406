// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package styles_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/icons"
	"github.com/janderssonse/appstore/internal/tui/styles"
	"github.com/stretchr/testify/assert"
)

func ptr(value float64) *float64 {
	return &value
}

func TestStars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rating *float64
		want   string
	}{
		{"unset shows the fallback", nil, "N/A"},
		{"zero shows the fallback", ptr(0), "N/A"},
		{"rounds half up", ptr(3.5), "★★★★☆"},
		{"rounds down", ptr(2.2), "★★☆☆☆"},
		{"caps at five", ptr(7), "★★★★★"},
	}

	styleConfig := styles.New()

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, ansi.Strip(styleConfig.Stars(testCase.rating, "N/A")))
		})
	}
}

func TestCategoryBadge(t *testing.T) {
	t.Parallel()

	styleConfig := styles.New()

	badge := ansi.Strip(styleConfig.CategoryBadge(catalog.Category{Icon: "Code", Color: "bg-green-500"}, "Tools"))
	assert.Equal(t, icons.Lookup("Code").Glyph()+" Tools", badge)

	unknown := ansi.Strip(styleConfig.CategoryBadge(catalog.Category{Icon: "NoSuchIcon"}, "Misc"))
	assert.True(t, strings.HasSuffix(unknown, " Misc"))
	assert.Equal(t, icons.Lookup("NoSuchIcon").Glyph()+" Misc", unknown)
}

func TestStatusIcon(t *testing.T) {
	t.Parallel()

	styleConfig := styles.New()

	for status, want := range map[string]string{"success": "✓", "error": "✗", "warning": "!", "info": "i", "other": "•"} {
		icon := ansi.Strip(styleConfig.StatusIcon(status))
		assert.Equal(t, want, icon, status)
		assert.Equal(t, 1, ansi.StringWidth(icon), "%s icon is unpadded", status)
	}
}

func TestLogoAndKeybinding(t *testing.T) {
	t.Parallel()

	styleConfig := styles.New()

	assert.Equal(t, "▣ App Store", strings.TrimSpace(ansi.Strip(styleConfig.Logo("App Store"))))
	assert.Equal(t, "[r] retry", ansi.Strip(styleConfig.Keybinding("r", "retry")))
}
