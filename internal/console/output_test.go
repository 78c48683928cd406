// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func tty(isTerminal bool) func(uintptr) bool {
	return func(uintptr) bool { return isTerminal }
}

func TestParseColorMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"ALWAYS", ColorAlways, false},
		{" never ", ColorNever, false},
		{"sometimes", "", true},
	}

	for _, testCase := range tests {
		got, err := ParseColorMode(testCase.input)
		if testCase.wantErr {
			require.ErrorIs(t, err, ErrInvalidColorMode)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, testCase.want, got)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     ColorMode
		plain    bool
		env      map[string]string
		terminal bool
		want     bool
	}{
		{name: "auto on terminal", mode: ColorAuto, terminal: true, want: true},
		{name: "auto piped", mode: ColorAuto, terminal: false, want: false},
		{name: "NO_COLOR wins in auto", mode: ColorAuto, env: map[string]string{"NO_COLOR": "1"}, terminal: true},
		{name: "dumb terminal", mode: ColorAuto, env: map[string]string{"TERM": "dumb"}, terminal: true},
		{name: "always beats NO_COLOR", mode: ColorAlways, env: map[string]string{"NO_COLOR": "1"}, want: true},
		{name: "never on terminal", mode: ColorNever, terminal: true},
		{name: "plain disables", mode: ColorAlways, plain: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			state := NewOutputState(false, false, testCase.plain, testCase.mode).
				WithEnv(env(testCase.env), tty(testCase.terminal))

			assert.Equal(t, testCase.want, state.ColorEnabled())
		})
	}
}

func TestBold(t *testing.T) {
	t.Parallel()

	colored := NewOutputState(false, false, false, ColorAlways)
	assert.Equal(t, "\033[1mApps\033[0m", colored.Bold("Apps"))

	piped := NewOutputState(false, false, false, ColorAuto).WithEnv(env(nil), tty(false))
	assert.Equal(t, "APPS", piped.Header("Apps"))

	plain := NewOutputState(false, false, true, ColorAuto)
	assert.Equal(t, "Apps", plain.Bold("Apps"))
}

func TestStatusLines(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	state := NewOutputState(true, false, false, ColorNever)
	state.Stderr = &stderr
	state.Stdout = os.Stdout

	state.Progressf("fetching %d apps", 3)
	state.Successf("saved %s", "vlc.deb")
	state.Warningf("cache disabled")
	state.Errorf("boom")

	assert.Equal(t, "fetching 3 apps\n✓ saved vlc.deb\n⚠ cache disabled\n✗ boom\n", stderr.String())
}

func TestStatusLines_Plain(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	state := NewOutputState(true, false, true, ColorNever)
	state.Stderr = &stderr

	state.Progressf("hidden")
	state.Successf("hidden")
	state.Warningf("careful")
	state.Errorf("failed")

	assert.Equal(t, "warning: careful\nerror: failed\n", stderr.String())
}
