// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/icons"
	"github.com/janderssonse/appstore/internal/tui/forms"
	"github.com/urfave/cli/v3"
)

func categoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "category name"},
		&cli.StringFlag{Name: "icon", Usage: "icon name: " + strings.Join(icons.Names(), ", ")},
		&cli.StringFlag{Name: "color", Usage: "color class: " + strings.Join(icons.ColorClasses, ", ")},
	}
}

func applicationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "application name"},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "short description"},
		&cli.StringFlag{Name: "download-url", Aliases: []string{"u"}, Usage: "download link"},
		&cli.StringFlag{Name: "logo", Usage: "logo URL"},
		&cli.StringFlag{Name: "rating", Usage: "rating, e.g. 4.5"},
		&cli.StringFlag{Name: "downloads", Usage: "download count label, e.g. 1M+"},
		&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "category id"},
	}
}

func (app *CLI) createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Create, update and delete catalog records",
		Description: `Write access to the catalog. Requires an API token with write permissions
(api_token in the config file or APPSTORE_API_TOKEN).

Missing required fields are prompted for in a terminal; pass --yes to
skip prompts and confirmations in scripts.`,
		Commands: []*cli.Command{
			{
				Name:    "category",
				Aliases: []string{"categories"},
				Usage:   "Manage categories",
				Commands: []*cli.Command{
					{Name: "create", Usage: "Create a category", Flags: categoryFlags(), Action: app.runCategoryCreate},
					{Name: "update", Usage: "Update a category", ArgsUsage: "<id>", Flags: categoryFlags(), Action: app.runCategoryUpdate},
					{Name: "delete", Usage: "Delete a category", ArgsUsage: "<id>", Action: app.runCategoryDelete},
				},
			},
			{
				Name:    "app",
				Aliases: []string{"apps", "application"},
				Usage:   "Manage applications",
				Commands: []*cli.Command{
					{Name: "create", Usage: "Create an application", Flags: applicationFlags(), Action: app.runApplicationCreate},
					{Name: "update", Usage: "Update an application", ArgsUsage: "<id>", Flags: applicationFlags(), Action: app.runApplicationUpdate},
					{Name: "delete", Usage: "Delete an application", ArgsUsage: "<id>", Action: app.runApplicationDelete},
				},
			},
		},
	}
}

// canPrompt reports whether huh forms may be shown.
func (app *CLI) canPrompt() bool {
	return !app.yes && !app.json && app.interactive()
}

func categoryFormFrom(cmd *cli.Command) application.CategoryForm {
	return application.CategoryForm{
		Name:  cmd.String("name"),
		Icon:  cmd.String("icon"),
		Color: cmd.String("color"),
	}
}

func applicationFormFrom(cmd *cli.Command) application.ApplicationForm {
	return application.ApplicationForm{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		DownloadURL: cmd.String("download-url"),
		Logo:        cmd.String("logo"),
		Rating:      cmd.String("rating"),
		Downloads:   cmd.String("downloads"),
		Category:    cmd.String("category"),
	}
}

func (app *CLI) report(result domain.MutationResult, err error, action, subject string) error {
	if err != nil {
		return app.handler.Fail(err, action, subject, domain.ExitCatalogError)
	}

	return app.handler.Output.Success(result.Notice, result)
}

func (app *CLI) runCategoryCreate(ctx context.Context, cmd *cli.Command) error {
	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	form := categoryFormFrom(cmd)

	if strings.TrimSpace(form.Name) == "" && app.canPrompt() {
		if err := promptCategory(&form, deps.t); err != nil {
			return promptError(err)
		}
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	result, err := deps.admin.CreateCategory(ctx, form)

	return app.report(result, err, "create category", form.Name)
}

func (app *CLI) runCategoryUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	result, err := deps.admin.UpdateCategory(ctx, id, categoryFormFrom(cmd))

	return app.report(result, err, "update category", cmd.Args().First())
}

func (app *CLI) runCategoryDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	if err := app.confirmDelete(deps.t, "#"+cmd.Args().First()); err != nil {
		return err
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	result, err := deps.admin.DeleteCategory(ctx, id)

	return app.report(result, err, "delete category", cmd.Args().First())
}

func (app *CLI) runApplicationCreate(ctx context.Context, cmd *cli.Command) error {
	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	form := applicationFormFrom(cmd)

	missing := strings.TrimSpace(form.Name) == "" ||
		strings.TrimSpace(form.Description) == "" ||
		strings.TrimSpace(form.DownloadURL) == ""

	if missing && app.canPrompt() {
		lookupCtx, cancelLookup := app.handler.WithTimeout(ctx)
		categories, _, _ := deps.storefront.Categories(lookupCtx)

		cancelLookup()

		if err := promptApplication(&form, deps.t, categories); err != nil {
			return promptError(err)
		}
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	result, err := deps.admin.CreateApplication(ctx, form)

	return app.report(result, err, "create application", form.Name)
}

func (app *CLI) runApplicationUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	result, err := deps.admin.UpdateApplication(ctx, id, applicationFormFrom(cmd))

	return app.report(result, err, "update application", cmd.Args().First())
}

func (app *CLI) runApplicationDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	if err := app.confirmDelete(deps.t, "#"+cmd.Args().First()); err != nil {
		return err
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	result, err := deps.admin.DeleteApplication(ctx, id)

	return app.report(result, err, "delete application", cmd.Args().First())
}

// confirmDelete asks before a delete unless --yes was given. Without a
// terminal the delete is refused.
func (app *CLI) confirmDelete(t i18n.Lookup, name string) error {
	if app.yes {
		return nil
	}

	if !app.interactive() || app.json {
		return domain.NewExitError(domain.ExitUsageError, ErrConfirmationRequired.Error(), ErrConfirmationRequired)
	}

	confirmed := false

	if err := forms.Confirm(&confirmed, t, name).Run(); err != nil {
		return promptError(err)
	}

	if !confirmed {
		return domain.NewExitError(domain.ExitInterruptError, "delete cancelled", nil)
	}

	return nil
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return domain.NewExitError(domain.ExitInterruptError, "cancelled", err)
	}

	return domain.NewExitError(domain.ExitGeneralError, "prompt failed", err)
}

func promptCategory(form *application.CategoryForm, t i18n.Lookup) error {
	return forms.Category(form, t, t("adminPanel.newCategory", nil)).Run()
}

func promptApplication(form *application.ApplicationForm, t i18n.Lookup, categories []catalog.Category) error {
	return forms.Application(form, t, t("adminPanel.newApplication", nil), categories).Run()
}
