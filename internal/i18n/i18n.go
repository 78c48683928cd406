// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package i18n loads the storefront message catalogs and resolves the user's
// language. Callers receive a Lookup rather than touching package state.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Fallback is the language used when nothing better matches.
const Fallback = "fr"

// ErrNoCatalogs is returned when no locale file could be loaded.
var ErrNoCatalogs = errors.New("no locale catalogs found")

// Lookup translates key, replacing {{name}} placeholders with params.
type Lookup func(key string, params map[string]any) string

// Params is shorthand for placeholder values.
type Params = map[string]any

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string         `yaml:"locale"`
	Messages map[string]any `yaml:"messages"`
}

// Bundle holds the flattened messages of every loaded locale and the
// x/text catalog built from them.
type Bundle struct {
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	catalog  *catalog.Builder
}

// Load reads the catalogs embedded in the binary.
func Load() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS reads every locales/*.yaml file from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}

	if len(paths) == 0 {
		return nil, ErrNoCatalogs
	}

	sort.Strings(paths)

	bundle := &Bundle{messages: make(map[string]map[string]string, len(paths))}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}

		locale := strings.TrimSpace(file.Locale)
		if locale != strings.TrimSuffix(path.Base(p), path.Ext(p)) {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", p, locale)
		}

		flat := make(map[string]string)
		flatten("", file.Messages, flat)
		bundle.messages[locale] = flat
	}

	if _, ok := bundle.messages[Fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s is not defined: %w", Fallback, ErrNoCatalogs)
	}

	// The matcher treats the first tag as the default.
	bundle.tags = []language.Tag{language.Make(Fallback)}

	for _, locale := range bundle.Locales() {
		if locale != Fallback {
			bundle.tags = append(bundle.tags, language.Make(locale))
		}
	}

	bundle.matcher = language.NewMatcher(bundle.tags)

	if bundle.catalog, err = buildCatalog(bundle.messages); err != nil {
		return nil, err
	}

	return bundle, nil
}

// buildCatalog registers every locale in a private catalog. Keys a locale
// lacks are filled from the fallback locale, so a printer never needs a
// second lookup.
func buildCatalog(messages map[string]map[string]string) (*catalog.Builder, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.Make(Fallback)))
	base := messages[Fallback]

	for locale, own := range messages {
		tag := language.Make(locale)

		merged := make(map[string]string, len(base)+len(own))
		for key, text := range base {
			merged[key] = text
		}

		for key, text := range own {
			merged[key] = text
		}

		for key, text := range merged {
			// Printers treat messages as format strings.
			if err := builder.SetString(tag, key, strings.ReplaceAll(text, "%", "%%")); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", locale, key, err)
			}
		}
	}

	return builder, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Locales lists the loaded locale codes in sorted order.
func (b *Bundle) Locales() []string {
	locales := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		locales = append(locales, locale)
	}

	sort.Strings(locales)

	return locales
}

// Match picks the best supported locale for the preferred values, which may
// be BCP 47 tags or POSIX locale strings such as "en_US.UTF-8".
func (b *Bundle) Match(preferred ...string) string {
	tags := make([]language.Tag, 0, len(preferred))

	for _, value := range preferred {
		for _, candidate := range strings.Split(value, ":") {
			if tag, ok := parseLocale(candidate); ok {
				tags = append(tags, tag)
			}
		}
	}

	if len(tags) == 0 {
		return Fallback
	}

	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return Fallback
	}

	base, _ := b.tags[index].Base()

	return base.String()
}

func parseLocale(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}

	if value == "" || value == "C" || value == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return language.Und, false
	}

	return tag, true
}

// Lookup returns the translator for locale. Missing keys fall back to the
// fallback locale and then to the key itself.
func (b *Bundle) Lookup(locale string) Lookup {
	printer := message.NewPrinter(language.Make(b.Match(locale)), message.Catalog(b.catalog))

	return func(key string, params map[string]any) string {
		return Interpolate(printer.Sprintf(key), params)
	}
}

// Keys lists every key defined for locale.
func (b *Bundle) Keys(locale string) []string {
	messages := b.messages[locale]

	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Interpolate replaces {{name}} placeholders in text. Placeholders without a
// value are left as they are.
func Interpolate(text string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(text, "{{") {
		return text
	}

	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{{"+name+"}}", fmt.Sprint(value))
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// Detect resolves the preferred language from an explicit setting, then the
// LANGUAGE, LC_ALL and LANG environment variables.
func Detect(configured string, getenv func(string) string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}

	for _, name := range []string{"LANGUAGE", "LC_ALL", "LANG"} {
		if value := strings.TrimSpace(getenv(name)); value != "" {
			if _, ok := parseLocale(strings.Split(value, ":")[0]); ok {
				return value
			}
		}
	}

	return Fallback
}

// Passthrough returns a Lookup that only interpolates the key. It is handy
// in tests and when catalogs failed to load.
func Passthrough() Lookup {
	return func(key string, params map[string]any) string {
		return Interpolate(key, params)
	}
}
