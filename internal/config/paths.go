// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user config and state directories.
const AppName = "appstore"

// XDGConfigHome returns the XDG config directory.
func XDGConfigHome() string {
	return XDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// XDGConfigHomeWithEnv returns the XDG config directory with a custom environment override for testing.
func XDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// XDGStateHome returns the XDG state directory, where logs go.
func XDGStateHome() string {
	return XDGStateHomeWithEnv(os.Getenv("XDG_STATE_HOME"))
}

// XDGStateHomeWithEnv returns the XDG state directory with a custom environment override for testing.
func XDGStateHomeWithEnv(xdgStateHome string) string {
	if xdgStateHome != "" {
		return xdgStateHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state")
	}

	return ""
}

// DefaultPath returns $XDG_CONFIG_HOME/appstore/config.toml.
func DefaultPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "config.toml")
}

// DefaultLogFile returns $XDG_STATE_HOME/appstore/appstore.log.
func DefaultLogFile() string {
	return filepath.Join(XDGStateHome(), AppName, AppName+".log")
}

// ExpandPath expands a leading ~/ and the $XDG_CONFIG_HOME and
// $XDG_STATE_HOME prefixes.
func ExpandPath(path string) string {
	return ExpandPathWithEnv(path, "", "")
}

// ExpandPathWithEnv expands paths with custom XDG environment variables for testing.
func ExpandPathWithEnv(path, xdgConfigHome, xdgStateHome string) string {
	if after, found := strings.CutPrefix(path, "~/"); found {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, after)
		}
	}

	if after, found := strings.CutPrefix(path, "$XDG_CONFIG_HOME"); found {
		if xdgConfigHome == "" {
			xdgConfigHome = XDGConfigHome()
		}

		return xdgConfigHome + after
	}

	if after, found := strings.CutPrefix(path, "$XDG_STATE_HOME"); found {
		if xdgStateHome == "" {
			xdgStateHome = XDGStateHome()
		}

		return xdgStateHome + after
	}

	return path
}
