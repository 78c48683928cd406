// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime"

	"github.com/janderssonse/appstore/internal/domain"
)

// ErrUnsupportedURL is returned for links that are not http(s).
var ErrUnsupportedURL = errors.New("only http and https links can be opened")

// Runner is the part of CommandRunner the opener needs.
type Runner interface {
	Execute(ctx context.Context, name string, args ...string) error
}

// Opener opens links in the desktop browser.
type Opener struct {
	runner Runner
	goos   string
}

var _ domain.URLOpener = (*Opener)(nil)

// NewOpener creates an opener for the current operating system.
func NewOpener(runner Runner) *Opener {
	return NewOpenerFor(runner, runtime.GOOS)
}

// NewOpenerFor creates an opener for goos, for tests.
func NewOpenerFor(runner Runner, goos string) *Opener {
	return &Opener{runner: runner, goos: goos}
}

// Command returns the program and arguments used to open link.
func (o *Opener) Command(link string) (string, []string) {
	switch o.goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}

// Open launches the browser on link.
func (o *Opener) Open(ctx context.Context, link string) error {
	parsed, err := url.Parse(link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, link)
	}

	name, args := o.Command(link)

	if err := o.runner.Execute(ctx, name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", link, err)
	}

	return nil
}
