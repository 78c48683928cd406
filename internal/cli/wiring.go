// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"github.com/janderssonse/appstore/internal/adapters/cache"
	"github.com/janderssonse/appstore/internal/adapters/network"
	"github.com/janderssonse/appstore/internal/adapters/platform"
	"github.com/janderssonse/appstore/internal/adapters/strapi"
	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/janderssonse/appstore/internal/logging"
)

// dependencyOverrides are test doubles set through Options.
type dependencyOverrides struct {
	source domain.CatalogSource
	links  *application.LinkService
}

// dependencies are built once per run, after the configuration is loaded.
type dependencies struct {
	t          i18n.Lookup
	source     domain.CatalogSource
	storefront *application.StorefrontService
	admin      *application.AdminService
	links      *application.LinkService
}

// dependencies builds config → REST client → cache → services.
func (app *CLI) dependencies() (*dependencies, error) {
	if app.deps != nil {
		return app.deps, nil
	}

	log := logging.Get()
	t := app.translator()

	apiClient := network.NewHTTPClient(app.cfg.TimeoutDuration())

	source := app.inject.source
	if source == nil {
		client, err := strapi.New(strapi.Config{
			BaseURL:    app.cfg.APIURL,
			Token:      app.cfg.APIToken,
			HTTPClient: apiClient.Client(),
			RateLimit:  app.cfg.RateLimit,
			Burst:      app.cfg.RateBurst,
			Retry:      strapi.DefaultRetryConfig(),
			Logger:     log,
		})
		if err != nil {
			return nil, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
		}

		source = cache.NewCachedSource(client, cache.DefaultSize, app.cfg.CacheTTLDuration(), log)
	}

	links := app.inject.links
	if links == nil {
		runner := platform.NewCommandRunner(false, log)
		links = application.NewLinkService(
			platform.NewOpener(runner),
			platform.NewClipboard(),
			network.NewDownloadClient(app.cfg.TimeoutDuration()),
			platform.NewFileManager(log),
			t,
		)
	}

	app.deps = &dependencies{
		t:          t,
		source:     source,
		storefront: application.NewStorefrontService(source, t),
		admin:      application.NewAdminService(source, t),
		links:      links,
	}

	return app.deps, nil
}

// translator resolves --lang, the config and the locale environment. A
// broken catalog degrades to untranslated keys.
func (app *CLI) translator() i18n.Lookup {
	bundle, err := i18n.Load()
	if err != nil {
		log := logging.Get()
		log.Warn().Err(err).Msg("translations unavailable")

		return i18n.Passthrough()
	}

	return bundle.Lookup(i18n.Detect(app.cfg.Language, app.getenv))
}
