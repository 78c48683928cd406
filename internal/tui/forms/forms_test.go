// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package forms_test

import (
	"testing"

	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/icons"
	"github.com/janderssonse/appstore/internal/tui/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class string
		want  string
	}{
		{"bg-blue-500", "blue"},
		{"bg-green-500", "green"},
		{"purple", "purple"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, forms.ColorName(testCase.class), testCase.class)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	assert.Len(t, forms.IconOptions(""), len(icons.Names()))
	assert.Len(t, forms.IconOptions("Code"), len(icons.Names()))
	assert.Len(t, forms.ColorOptions(""), len(icons.ColorClasses))
	assert.Len(t, forms.ColorOptions("bg-red-500"), len(icons.ColorClasses))

	custom := forms.ColorOptions("bg-teal-700")
	require.Len(t, custom, len(icons.ColorClasses)+1)
	assert.Equal(t, "bg-teal-700", custom[len(custom)-1].Value)

	unknownIcon := forms.IconOptions("Rocket")
	require.Len(t, unknownIcon, len(icons.Names())+1)
	assert.Equal(t, "Rocket", unknownIcon[len(unknownIcon)-1].Value)

	categories := append([]catalog.Category{{ID: 4, Name: "Tools"}}, catalog.DefaultCategories...)
	options := forms.CategoryOptions(categories, "None")

	require.Len(t, options, 2, "placeholders are skipped")
	assert.Equal(t, "None", options[0].Key)
	assert.Empty(t, options[0].Value)
	assert.Equal(t, "4", options[1].Value)
}

func TestRequired(t *testing.T) {
	t.Parallel()

	validate := forms.Required("name is required")

	require.EqualError(t, validate("  "), "name is required")
	require.NoError(t, validate("Tools"))
}

func TestCategoryFormDefaults(t *testing.T) {
	t.Parallel()

	form := &application.CategoryForm{Name: "Tools"}
	assert.NotNil(t, forms.Category(form, i18n.Passthrough(), "New"))

	assert.Equal(t, icons.Settings.Name(), form.Icon)
	assert.Equal(t, icons.DefaultColor, form.Color)

	tests := []struct {
		name      string
		icon      string
		color     string
		wantIcon  string
		wantColor string
	}{
		{"blue stays blue", "Code", "bg-blue-500", "Code", "bg-blue-500"},
		{"red survives editing", "Code", "bg-red-500", "Code", "bg-red-500"},
		{"yellow survives editing", "Music", "bg-yellow-500", "Music", "bg-yellow-500"},
		{"unknown color is kept", "Code", "bg-teal-700", "Code", "bg-teal-700"},
		{"icon case is normalized", "code", " bg-pink-500 ", "Code", "bg-pink-500"},
		{"unknown icon is kept", "Rocket", "bg-gray-500", "Rocket", "bg-gray-500"},
	}

	for _, testCase := range tests {
		kept := &application.CategoryForm{Icon: testCase.icon, Color: testCase.color}
		forms.Category(kept, i18n.Passthrough(), "Edit")

		assert.Equal(t, testCase.wantIcon, kept.Icon, testCase.name)
		assert.Equal(t, testCase.wantColor, kept.Color, testCase.name)
	}
}

func TestColorClassesMatchPalette(t *testing.T) {
	t.Parallel()

	assert.Contains(t, icons.ColorClasses, "bg-red-500")
	assert.Contains(t, icons.ColorClasses, "bg-yellow-500")

	for _, class := range icons.ColorClasses {
		assert.True(t, icons.KnownColor(class), class)
	}
}

func TestApplicationAndConfirmForms(t *testing.T) {
	t.Parallel()

	form := &application.ApplicationForm{}
	assert.NotNil(t, forms.Application(form, i18n.Passthrough(), "New", nil))
	assert.NotNil(t, forms.Application(form, i18n.Passthrough(), "New", []catalog.Category{{ID: 1, Name: "Tools"}}))

	confirmed := false
	assert.NotNil(t, forms.Confirm(&confirmed, i18n.Passthrough(), "Tools"))
}
