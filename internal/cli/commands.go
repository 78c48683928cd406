// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/janderssonse/appstore/internal/adapters/network"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/icons"
	"github.com/janderssonse/appstore/internal/stringutil"
	"github.com/urfave/cli/v3"
)

// descriptionWidth caps descriptions in list tables.
const descriptionWidth = 40

func (app *CLI) createAppsCommand() *cli.Command {
	return &cli.Command{
		Name:    "apps",
		Aliases: []string{"app"},
		Usage:   "List, inspect and download applications",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List applications, optionally within a category and matching a search",
				Description: `Fetches the category's applications and searches and pages them locally,
like the storefront does.

Examples:
  appstore apps list --category 2
  appstore apps list --search "photo" --page 2 --page-size 12
  appstore --json apps list | jq '.items[].name'`,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "category", Aliases: []string{"c"}, Usage: "category id (0 = all)"},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "case-insensitive name or description match"},
					&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Usage: "page number", Value: 1},
					&cli.IntFlag{Name: "page-size", Usage: "applications per page (default from config)"},
				},
				Action: app.runAppsList,
			},
			{
				Name:      "search",
				Usage:     "Search applications on the server",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Usage: "page number", Value: 1},
					&cli.IntFlag{Name: "page-size", Usage: "applications per page (default from config)"},
				},
				Action: app.runAppsSearch,
			},
			{
				Name:      "show",
				Usage:     "Show an application with similar apps",
				ArgsUsage: "<id>",
				Action:    app.runAppsShow,
			},
			{
				Name:      "download",
				Usage:     "Save an application's download to disk",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "target directory", Value: "."},
				},
				Action: app.runAppsDownload,
			},
			{
				Name:      "open",
				Usage:     "Open an application's download link in the browser",
				ArgsUsage: "<id>",
				Action:    app.runAppsOpen,
			},
			{
				Name:      "share",
				Usage:     "Copy an application's download link to the clipboard",
				ArgsUsage: "<id>",
				Action:    app.runAppsShare,
			},
		},
	}
}

func (app *CLI) createCategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:    "categories",
		Aliases: []string{"category"},
		Usage:   "List categories",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List categories (the default set when the catalog has none)",
				Action: app.runCategoriesList,
			},
		},
	}
}

func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the merged configuration with the token masked",
				Action: func(_ context.Context, _ *cli.Command) error {
					data, err := app.cfg.Marshal()
					if err != nil {
						return app.handler.Fail(err, "render configuration", "", domain.ExitConfigError)
					}

					return app.handler.Output.Success(strings.TrimRight(string(data), "\n"), app.cfg.Redacted())
				},
			},
			{
				Name:  "path",
				Usage: "Print the configuration file location",
				Action: func(_ context.Context, _ *cli.Command) error {
					return app.handler.Output.Success(app.configPath, map[string]string{"path": app.configPath})
				},
			},
		},
	}
}

func (app *CLI) pageSize(cmd *cli.Command) int {
	if cmd.IsSet("page-size") {
		return int(cmd.Int("page-size"))
	}

	return app.cfg.PageSize
}

func (app *CLI) runAppsList(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	query := catalog.NewQuery().
		WithCategory(int(cmd.Int("category"))).
		WithSearch(cmd.String("search")).
		WithPageSize(app.pageSize(cmd)).
		WithPage(int(cmd.Int("page")))

	_ = app.handler.Output.Progress("Fetching applications")

	result, err := deps.storefront.BrowseResult(ctx, query)
	if err != nil {
		return app.handler.Fail(err, "list applications", "", domain.ExitGeneralError)
	}

	if app.json {
		return app.handler.Output.Success("", result)
	}

	if result.Matched == 0 {
		title, message := deps.storefront.EmptyMessage(query)

		return app.handler.Output.Success(strings.TrimSpace(title+"\n"+message), nil)
	}

	if err := app.handler.Output.Table(applicationHeaders(deps.t), applicationRows(result.Items)); err != nil {
		return err
	}

	footer := result.Summary
	if pager := renderPager(result.Pages, result.Pagination.Page); pager != "" {
		footer += "\n" + pager
	}

	return app.handler.Output.Success(footer, nil)
}

func (app *CLI) runAppsSearch(ctx context.Context, cmd *cli.Command) error {
	search := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if search == "" {
		return domain.NewExitError(domain.ExitUsageError, "search needs a query", ErrInvalidArgument)
	}

	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	apps, window, err := deps.storefront.Search(ctx, search, int(cmd.Int("page")), app.pageSize(cmd))
	if err != nil {
		return app.handler.Fail(err, "search applications", search, domain.ExitGeneralError)
	}

	result := domain.BrowseResult{
		Items:      apps,
		Pagination: window,
		Pages:      catalog.VisiblePages(window.Page, window.PageCount),
		Matched:    window.Total,
		Search:     search,
		Summary:    deps.storefront.Summary(window),
	}

	if app.json {
		return app.handler.Output.Success("", result)
	}

	if len(apps) == 0 {
		title, message := deps.storefront.EmptyMessage(catalog.NewQuery().WithSearch(search))

		return app.handler.Output.Success(title+"\n"+message, nil)
	}

	if err := app.handler.Output.Table(applicationHeaders(deps.t), applicationRows(apps)); err != nil {
		return err
	}

	return app.handler.Output.Success(strings.TrimSpace(result.Summary+"\n"+renderPager(result.Pages, window.Page)), nil)
}

func (app *CLI) fetchDetail(ctx context.Context, cmd *cli.Command) (*dependencies, domain.DetailResult, error) {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return nil, domain.DetailResult{}, err
	}

	deps, err := app.dependencies()
	if err != nil {
		return nil, domain.DetailResult{}, err
	}

	detail, err := deps.storefront.Detail(ctx, id)
	if err != nil {
		return nil, domain.DetailResult{}, app.handler.Fail(err, "load application", id, domain.ExitGeneralError)
	}

	return deps, detail, nil
}

func (app *CLI) runAppsShow(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, detail, err := app.fetchDetail(ctx, cmd)
	if err != nil {
		return err
	}

	return app.handler.Output.Success(app.renderDetail(detail, deps.t), detail)
}

// runAppsDownload bounds only the catalog lookup by --timeout. The transfer
// runs until it completes or the command is interrupted.
func (app *CLI) runAppsDownload(ctx context.Context, cmd *cli.Command) error {
	lookupCtx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, detail, err := app.fetchDetail(lookupCtx, cmd)
	if err != nil {
		return err
	}

	target := detail.Application
	fileName := network.FileName(target.DownloadURL, target.Name)

	_ = app.handler.Output.Progress(fmt.Sprintf("Downloading %s from %s", target.Name, target.DownloadURL))

	result, err := deps.links.Download(ctx, target, cmd.String("output"), fileName)
	if err != nil {
		return app.handler.Fail(err, "download", target.Name, domain.ExitGeneralError)
	}

	return app.handler.Output.Success(deps.links.SavedNotice(result).String(), result)
}

func (app *CLI) runAppsOpen(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, detail, err := app.fetchDetail(ctx, cmd)
	if err != nil {
		return err
	}

	notice, err := deps.links.OpenDownload(ctx, detail.Application)
	if err != nil {
		return app.handler.Fail(err, "open download link", detail.Application.Name, domain.ExitSystemError)
	}

	return app.handler.Output.Success(notice.String(), notice)
}

func (app *CLI) runAppsShare(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, detail, err := app.fetchDetail(ctx, cmd)
	if err != nil {
		return err
	}

	notice, err := deps.links.CopyLink(detail.Application)
	if err != nil {
		return app.handler.Fail(err, "copy link", detail.Application.Name, domain.ExitSystemError)
	}

	return app.handler.Output.Success(notice.String(), notice)
}

func (app *CLI) runCategoriesList(ctx context.Context, _ *cli.Command) error {
	ctx, cancel := app.handler.WithTimeout(ctx)
	defer cancel()

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	result, err := deps.storefront.CategoriesResult(ctx)
	if err != nil {
		return app.handler.Fail(err, "list categories", "", domain.ExitGeneralError)
	}

	if app.json {
		return app.handler.Output.Success("", result)
	}

	if result.Defaults {
		_ = app.handler.Output.Info("The catalog has no categories yet; showing the default set.")
	}

	rows := make([][]string, 0, len(result.Categories))
	for _, category := range result.Categories {
		id := strconv.Itoa(category.ID)
		if category.Placeholder() {
			id = "-"
		}

		rows = append(rows, []string{
			id,
			icons.Lookup(category.Icon).Glyph(),
			application.CategoryLabel(category, deps.t),
			category.Color,
		})
	}

	return app.handler.Output.Table([]string{"ID", "ICON", "NAME", "COLOR"}, rows)
}

func applicationHeaders(t i18n.Lookup) []string {
	return []string{
		"ID",
		strings.ToUpper(t("adminPanel.name", nil)),
		strings.ToUpper(t("category", nil)),
		strings.ToUpper(t("rating", nil)),
		strings.ToUpper(t("downloads", nil)),
		strings.ToUpper(t("description", nil)),
	}
}

func applicationRows(apps []catalog.Application) [][]string {
	rows := make([][]string, 0, len(apps))

	for _, entry := range apps {
		category := entry.CategoryName()
		if category == "" {
			category = "-"
		}

		rows = append(rows, []string{
			strconv.Itoa(entry.ID),
			entry.Name,
			category,
			entry.RatingText(),
			entry.DownloadsText(),
			stringutil.Truncate(entry.Description, descriptionWidth),
		})
	}

	return rows
}

// renderPager prints page markers with the current page in brackets.
func renderPager(pages []catalog.PageMarker, current int) string {
	if len(pages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(pages))

	for _, marker := range pages {
		if !marker.IsEllipsis() && marker.Page() == current {
			parts = append(parts, "["+marker.String()+"]")

			continue
		}

		parts = append(parts, marker.String())
	}

	return strings.Join(parts, " ")
}

func (app *CLI) renderDetail(detail domain.DetailResult, t i18n.Lookup) string {
	entry := detail.Application
	out := app.handler.Console

	var builder strings.Builder

	header := entry.Name
	if entry.Version != "" {
		header += "  v" + entry.Version
	}

	if name := entry.CategoryName(); name != "" {
		header += " · " + name
	}

	builder.WriteString(out.Header(header) + "\n")
	fmt.Fprintf(&builder, "★ %s   ⬇ %s\n", entry.RatingText(), entry.DownloadsText())

	builder.WriteString("\n" + out.Header(t("description", nil)) + "\n")

	if entry.FullDescription != "" {
		builder.WriteString(strings.TrimSpace(entry.FullDescription) + "\n")
	} else {
		builder.WriteString(entry.Description + "\n")
	}

	if len(entry.Features) > 0 {
		builder.WriteString("\n" + out.Header(t("features", nil)) + "\n")

		for _, feature := range entry.Features {
			builder.WriteString("  • " + feature + "\n")
		}
	}

	notSpecified := t("notSpecified", nil)
	info := [][2]string{
		{t("version", nil), orDefault(entry.Version, notSpecified)},
		{t("size", nil), orDefault(entry.FileSize, notSpecified)},
		{t("downloads", nil), entry.DownloadsText()},
		{t("rating", nil), entry.RatingText()},
		{t("lastUpdated", nil), catalog.FormatDate(entry.LastUpdated, notSpecified)},
		{t("category", nil), orDefault(entry.CategoryName(), notSpecified)},
	}

	width := 0
	for _, row := range info {
		width = max(width, stringutil.Width(row[0]))
	}

	builder.WriteString("\n" + out.Header(t("information", nil)) + "\n")

	for _, row := range info {
		builder.WriteString("  " + stringutil.PadRight(row[0], width) + "  " + row[1] + "\n")
	}

	if entry.SystemRequirements != "" {
		builder.WriteString("\n" + out.Header(t("systemRequirements", nil)) + "\n")
		builder.WriteString(strings.TrimSpace(entry.SystemRequirements) + "\n")
	}

	if len(entry.Screenshots) > 0 {
		builder.WriteString("\n" + out.Header(t("screenshots", nil)) + "\n")

		for _, screenshot := range entry.Screenshots {
			builder.WriteString("  " + screenshot + "\n")
		}
	}

	if len(detail.Related) > 0 {
		builder.WriteString("\n" + out.Header(t("similarApps", nil)) + "\n")

		for _, related := range detail.Related {
			fmt.Fprintf(&builder, "  #%d %s  %s\n", related.ID, related.Name, stringutil.Truncate(related.Description, descriptionWidth))
		}
	}

	builder.WriteString("\n" + t("download", nil) + ": " + entry.DownloadURL)

	return builder.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	value := strings.TrimSpace(cmd.Args().First())
	if value == "" {
		return "", domain.NewExitError(domain.ExitUsageError,
			fmt.Sprintf("missing <%s> argument", name), ErrInvalidArgument)
	}

	return value, nil
}

func requireID(cmd *cli.Command) (int, error) {
	value, err := requireArg(cmd, "id")
	if err != nil {
		return 0, err
	}

	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, domain.NewExitError(domain.ExitUsageError,
			fmt.Sprintf("invalid id %q: must be a positive number", value), ErrInvalidArgument)
	}

	return id, nil
}
