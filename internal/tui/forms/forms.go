// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package forms builds the huh forms used to edit the catalog, both as
// standalone prompts and embedded in the admin screen.
package forms

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/icons"
)

// IconOptions lists every known icon with its glyph. A stored name outside
// the set is listed too, so editing never swaps it for the first option.
func IconOptions(current string) []huh.Option[string] {
	names := icons.Names()
	options := make([]huh.Option[string], 0, len(names)+1)

	for _, name := range names {
		options = append(options, huh.NewOption(icons.Lookup(name).Glyph()+"  "+name, name))
	}

	if _, known := icons.Find(current); !known && current != "" {
		options = append(options, huh.NewOption(icons.Lookup(current).Glyph()+"  "+current, current))
	}

	return options
}

// ColorOptions lists the category color classes by their short name. A
// stored class outside the palette is kept as an extra option.
func ColorOptions(current string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(icons.ColorClasses)+1)
	for _, class := range icons.ColorClasses {
		options = append(options, huh.NewOption(ColorName(class), class))
	}

	if !icons.KnownColor(current) && current != "" {
		options = append(options, huh.NewOption(ColorName(current), current))
	}

	return options
}

// ColorName strips the class prefix and shade: "bg-blue-500" is "blue".
func ColorName(class string) string {
	return strings.TrimSuffix(strings.TrimPrefix(class, "bg-"), "-500")
}

// CategoryOptions lists stored categories by name, led by a "none" entry.
// Placeholder categories cannot own applications and are skipped.
func CategoryOptions(categories []catalog.Category, none string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(categories)+1)
	options = append(options, huh.NewOption(none, ""))

	for _, category := range categories {
		if category.Placeholder() {
			continue
		}

		options = append(options, huh.NewOption(category.Name, strconv.Itoa(category.ID)))
	}

	return options
}

// Required rejects blank input with message.
func Required(message string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(message) //nolint:err113 // shown inline by the form
		}

		return nil
	}
}

// Category builds the category form. Unset icon and color start at the
// defaults and stored ones are kept as they are.
func Category(form *application.CategoryForm, t i18n.Lookup, title string) *huh.Form {
	if form.Icon == "" {
		form.Icon = icons.Settings.Name()
	}

	if icon, ok := icons.Find(form.Icon); ok {
		form.Icon = icon.Name()
	}

	form.Color = strings.TrimSpace(form.Color)

	if form.Color == "" {
		form.Color = icons.DefaultColor
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(t("adminPanel.name", nil)).
				Value(&form.Name).
				Validate(Required(t("notice.categoryNameRequired", nil))),
			huh.NewSelect[string]().
				Title(t("adminPanel.icon", nil)).
				Options(IconOptions(form.Icon)...).
				Value(&form.Icon),
			huh.NewSelect[string]().
				Title(t("adminPanel.color", nil)).
				Options(ColorOptions(form.Color)...).
				Value(&form.Color),
		).Title(title),
	)
}

// Application builds the application form. With stored categories the
// category is picked from a list, otherwise its id is typed.
func Application(
	form *application.ApplicationForm, t i18n.Lookup, title string, categories []catalog.Category,
) *huh.Form {
	requiredMessage := t("notice.applicationFieldsRequired", nil)

	var category huh.Field = huh.NewInput().Title(t("category", nil)).Value(&form.Category)

	if options := CategoryOptions(categories, t("notSpecified", nil)); len(options) > 1 {
		category = huh.NewSelect[string]().Title(t("category", nil)).Options(options...).Value(&form.Category)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(t("adminPanel.name", nil)).Value(&form.Name).Validate(Required(requiredMessage)),
			huh.NewText().Title(t("description", nil)).Value(&form.Description).Validate(Required(requiredMessage)),
			huh.NewInput().Title(t("adminPanel.downloadUrl", nil)).Value(&form.DownloadURL).Validate(Required(requiredMessage)),
		).Title(title),
		huh.NewGroup(
			huh.NewInput().Title(t("adminPanel.logo", nil)).Value(&form.Logo),
			huh.NewInput().Title(t("rating", nil)).Value(&form.Rating).Validate(rating),
			huh.NewInput().Title(t("downloads", nil)).Value(&form.Downloads),
			category,
		),
	)
}

// Confirm builds the delete confirmation for name.
func Confirm(confirmed *bool, t i18n.Lookup, name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(t("adminPanel.confirmDelete", i18n.Params{"name": name})).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	)
}

var errRatingRange = errors.New("rating must be a number between 0 and 5")

func rating(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 5 {
		return errRatingRange
	}

	return nil
}
