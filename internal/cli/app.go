// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/cli/handlers"
	"github.com/janderssonse/appstore/internal/config"
	"github.com/janderssonse/appstore/internal/console"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/logging"
	"github.com/janderssonse/appstore/internal/tui"
	"github.com/urfave/cli/v3"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=v1.2.3".
var Version = "" //nolint:gochecknoglobals

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

var (
	// ErrConflictingFlags is returned for --json together with --plain.
	ErrConflictingFlags = errors.New("cannot use both --json and --plain flags simultaneously")
	// ErrInvalidArgument is returned when a command argument is invalid.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConfirmationRequired is returned for deletes that cannot be confirmed.
	ErrConfirmationRequired = errors.New("confirmation required: rerun with --yes")
)

// CLI wires the command tree to the storefront services.
type CLI struct {
	app *cli.Command

	verbose    bool
	json       bool
	quiet      bool
	plain      bool
	color      string
	timeout    time.Duration
	configPath string
	apiURL     string
	lang       string
	yes        bool

	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	interactive func() bool
	launchTUI   func(ctx context.Context, services tui.Services) error

	cfg     *config.Config
	handler *handlers.BaseHandler
	deps    *dependencies
	inject  dependencyOverrides
}

// Option customises a CLI, mostly for tests.
type Option func(*CLI)

// WithWriters redirects standard output and error.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(app *CLI) {
		app.stdout = stdout
		app.stderr = stderr
	}
}

// WithEnv replaces the environment lookup used for language detection.
func WithEnv(getenv func(string) string) Option {
	return func(app *CLI) {
		app.getenv = getenv
	}
}

// WithInteractive overrides terminal detection for prompts.
func WithInteractive(interactive bool) Option {
	return func(app *CLI) {
		app.interactive = func() bool { return interactive }
	}
}

// WithCatalogSource replaces the REST client and cache.
func WithCatalogSource(source domain.CatalogSource) Option {
	return func(app *CLI) {
		app.inject.source = source
	}
}

// WithLinkService replaces the opener, clipboard and downloader.
func WithLinkService(links *application.LinkService) Option {
	return func(app *CLI) {
		app.inject.links = links
	}
}

// WithTUILauncher replaces the full-screen storefront.
func WithTUILauncher(launch func(ctx context.Context, services tui.Services) error) Option {
	return func(app *CLI) {
		app.launchTUI = launch
	}
}

// NewCLI creates the appstore command tree.
func NewCLI(opts ...Option) *CLI {
	app := &CLI{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		getenv:      os.Getenv,
		interactive: console.Interactive,
		launchTUI:   tui.Run,
	}

	for _, opt := range opts {
		opt(app)
	}

	app.app = &cli.Command{
		Name:      "appstore",
		Usage:     "Browse and manage an application catalog from the terminal",
		Version:   app.getVersion(),
		Suggest:   true,
		Writer:    app.stdout,
		ErrWriter: app.stderr,
		Description: `A storefront for the applications published in a headless content service.
Run without arguments to open the interactive storefront.

QUICK START:
  appstore                              # Open the storefront
  appstore apps list --search editor    # Search from the shell
  appstore apps show 12                 # Details and similar apps
  appstore apps download 12 -o ~/Downloads

ADMINISTRATION:
  appstore admin category create --name Tools --icon Code
  appstore admin app delete 12 --yes

CONFIGURATION:
  ` + config.DefaultPath() + `
  APPSTORE_API_URL, APPSTORE_API_TOKEN and the other APPSTORE_* variables
  override the file; a .env file in the working directory is read too.`,
		Flags:           app.globalFlags(),
		Before:          app.initConfig,
		Action:          app.defaultAction,
		Commands:        app.createAllCommands(),
		CommandNotFound: app.commandNotFound,
	}

	return app
}

func (app *CLI) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "show progress messages and debug logs on stderr",
			Aliases:     []string{"v"},
			Destination: &app.verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output structured JSON results",
			Aliases:     []string{"j"},
			Destination: &app.json,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Usage:       "suppress non-essential output",
			Aliases:     []string{"q"},
			Destination: &app.quiet,
		},
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "output plain text without formatting for scripts",
			Destination: &app.plain,
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "color output mode: auto, always, never",
			Value:       string(console.ColorAuto),
			Destination: &app.color,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "deadline for each command's API calls (0 = use the configured request timeout only)",
			Destination: &app.timeout,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to the TOML configuration file",
			Value:       config.DefaultPath(),
			Destination: &app.configPath,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "content service root URL, e.g. http://localhost:1337",
			Destination: &app.apiURL,
		},
		&cli.StringFlag{
			Name:        "lang",
			Usage:       "interface language (fr, en)",
			Destination: &app.lang,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "automatically answer yes to all prompts",
			Destination: &app.yes,
		},
	}
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	defer logging.Close()

	return app.app.Run(ctx, args)
}

func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createBrowseCommand(),
		app.createAppsCommand(),
		app.createCategoriesCommand(),
		app.createAdminCommand(),
		app.createConfigCommand(),
		app.createVersionCommand(),
	}
}

// initConfig validates the global flags, loads the configuration and sets
// up logging.
func (app *CLI) initConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(domain.ExitUsageError, ErrConflictingFlags.Error(), ErrConflictingFlags)
	}

	color, err := console.ParseColorMode(app.color)
	if err != nil {
		return ctx, domain.NewExitError(domain.ExitUsageError, err.Error(), err)
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:     app.configPath,
		Explicit: cmd.IsSet("config"),
		EnvFile:  DefaultEnvFile,
	})
	if err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	overrides := config.Overrides{APIURL: app.apiURL, Language: app.lang}
	if app.verbose {
		overrides.LogLevel = "debug"
	}

	if err := cfg.Apply(overrides); err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	app.cfg = cfg
	app.handler = handlers.NewBaseHandler(handlers.Flags{
		Verbose: app.verbose,
		JSON:    app.json,
		Quiet:   app.quiet,
		Plain:   app.plain,
		Color:   color,
		Timeout: app.timeout,
		Yes:     app.yes,
	}, app.stdout, app.stderr)

	if err := logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: app.verbose,
		Stderr:  app.stderr,
	}); err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	return ctx, nil
}

// defaultAction opens the storefront when no command is given.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		app.commandNotFound(ctx, cmd, cmd.Args().First())

		return domain.NewExitError(domain.ExitUsageError, "unknown command: "+cmd.Args().First(), nil)
	}

	return app.runBrowse(ctx, cmd)
}

func (app *CLI) createBrowseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Open the interactive storefront",
		Description: `Full-screen storefront with category tabs, live search, pagination,
application details and an admin screen.

Press ? inside the storefront for the key reference.`,
		Action: app.runBrowse,
	}
}

func (app *CLI) runBrowse(ctx context.Context, _ *cli.Command) error {
	if !app.interactive() {
		return domain.NewExitError(domain.ExitUsageError,
			"the storefront needs a terminal; use 'appstore apps list' in scripts", domain.ErrNoTerminal)
	}

	// The alt screen owns the terminal: log to the file only.
	if err := logging.Init(logging.Options{Level: app.cfg.LogLevel, File: app.cfg.LogFile}); err != nil {
		return domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	deps, err := app.dependencies()
	if err != nil {
		return err
	}

	services := tui.Services{
		Storefront: deps.storefront,
		Admin:      deps.admin,
		Links:      deps.links,
		T:          deps.t,
		PageSize:   app.cfg.PageSizeOrDefault(catalog.PageSizes),
		Timeout:    app.cfg.TimeoutDuration(),
	}

	if err := app.launchTUI(ctx, services); err != nil {
		if errors.Is(err, domain.ErrNoTerminal) {
			return domain.NewExitError(domain.ExitUsageError, "Failed to launch interactive interface (terminal required)", err)
		}

		return app.handler.Fail(err, "run the storefront", "", domain.ExitGeneralError)
	}

	return nil
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			version := app.getVersion()

			return app.handler.Output.Success(version, map[string]string{"version": version})
		},
	}
}

// getVersion prefers the stamped Version, then the module build info.
func (app *CLI) getVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// commandNotFound reports an unknown command with the closest suggestion.
func (app *CLI) commandNotFound(_ context.Context, cmd *cli.Command, command string) {
	_, _ = fmt.Fprintf(app.stderr, "✗ '%s' is not a command.\n", command)

	names := make([]string, 0, len(cmd.Commands))
	for _, sub := range cmd.Commands {
		if strings.HasPrefix(sub.Name, command[:min(1, len(command))]) {
			names = append(names, sub.Name)
		}
	}

	if len(names) > 0 {
		_, _ = fmt.Fprintf(app.stderr, "Did you mean: %s?\n", strings.Join(names, ", "))
	}

	_, _ = fmt.Fprintln(app.stderr, "Run 'appstore --help' to see available commands.")
}
