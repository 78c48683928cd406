// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/janderssonse/appstore/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBundle(t *testing.T) *i18n.Bundle {
	t.Helper()

	bundle, err := i18n.Load()
	require.NoError(t, err)

	return bundle
}

func TestLoad_EmbeddedCatalogs(t *testing.T) {
	t.Parallel()

	bundle := loadBundle(t)

	assert.Equal(t, []string{"en", "fr"}, bundle.Locales())
	assert.Equal(t, bundle.Keys("fr"), bundle.Keys("en"), "locales must define the same keys")
}

func TestMatch(t *testing.T) {
	t.Parallel()

	bundle := loadBundle(t)

	tests := []struct {
		name      string
		preferred []string
		expected  string
	}{
		{"english tag", []string{"en"}, "en"},
		{"posix locale", []string{"en_GB.UTF-8"}, "en"},
		{"french region", []string{"fr-CA"}, "fr"},
		{"colon list", []string{"de:en"}, "en"},
		{"unsupported", []string{"ja"}, "fr"},
		{"C locale", []string{"C"}, "fr"},
		{"nothing", nil, "fr"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, bundle.Match(testCase.preferred...))
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	bundle := loadBundle(t)
	en := bundle.Lookup("en")
	fr := bundle.Lookup("fr")

	assert.Equal(t, "Home", en("home", nil))
	assert.Equal(t, "Accueil", fr("home", nil))
	assert.Equal(t, "Games", en("categories.games", nil))
	assert.Equal(t, "Showing 7 to 12 of 13 applications",
		en("showing", i18n.Params{"start": 7, "end": 12, "total": 13}))
	assert.Equal(t, "12 par page", fr("perPage", i18n.Params{"count": 12}))
	assert.Equal(t, "missing.key", en("missing.key", nil))
}

func TestLookup_FallsBackToFrench(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/fr.yaml": {Data: []byte("locale: fr\nmessages:\n  home: Accueil\n  back: Retour\n")},
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  home: Home\n")},
	}

	bundle, err := i18n.LoadFromFS(fsys)
	require.NoError(t, err)

	en := bundle.Lookup("en")
	assert.Equal(t, "Home", en("home", nil))
	assert.Equal(t, "Retour", en("back", nil))
}

func TestLookup_LiteralText(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/fr.yaml": {Data: []byte("locale: fr\nmessages:\n  discount: \"{{value}}% de remise\"\n  free: 100% gratuit\n")},
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  free: 100% free\n")},
	}

	bundle, err := i18n.LoadFromFS(fsys)
	require.NoError(t, err)

	en := bundle.Lookup("en")
	assert.Equal(t, "100% free", en("free", nil))
	assert.Equal(t, "50% de remise", en("discount", i18n.Params{"value": 50}))
	assert.Equal(t, "100% gratuit", bundle.Lookup("ja")("free", nil))
}

func TestLoadFromFS_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.LoadFromFS(fstest.MapFS{})
	require.ErrorIs(t, err, i18n.ErrNoCatalogs)

	_, err = i18n.LoadFromFS(fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  home: Home\n")},
	})
	require.ErrorIs(t, err, i18n.ErrNoCatalogs)

	_, err = i18n.LoadFromFS(fstest.MapFS{
		"locales/fr.yaml": {Data: []byte("locale: de\nmessages: {}\n")},
	})
	require.Error(t, err)
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `Results for "vlc"`, i18n.Interpolate(`Results for "{{query}}"`, i18n.Params{"query": "vlc"}))
	assert.Equal(t, "{{name}} kept", i18n.Interpolate("{{name}} kept", i18n.Params{"other": 1}))
	assert.Equal(t, "plain", i18n.Interpolate("plain", nil))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	env := map[string]string{"LANG": "en_US.UTF-8"}
	getenv := func(name string) string { return env[name] }

	assert.Equal(t, "fr", i18n.Detect("fr", getenv))
	assert.Equal(t, "en_US.UTF-8", i18n.Detect("", getenv))
	assert.Equal(t, i18n.Fallback, i18n.Detect("", func(string) string { return "" }))
	assert.Equal(t, i18n.Fallback, i18n.Detect("", func(string) string { return "C" }))
}

func TestPassthrough(t *testing.T) {
	t.Parallel()

	lookup := i18n.Passthrough()
	assert.Equal(t, "home", lookup("home", nil))
}
