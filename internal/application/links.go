// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/i18n"
)

// maxNameAttempts bounds the search for a free download file name.
const maxNameAttempts = 100

// ErrNoDownloadURL is returned for applications without a download link.
var ErrNoDownloadURL = fmt.Errorf("%w: application has no download URL", domain.ErrValidation)

// ErrNoFreeFileName is returned when every candidate file name is taken.
var ErrNoFreeFileName = errors.New("no free file name in download directory")

// Notice is a short translated message for the user, the terminal analog
// of a toast.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

func (n Notice) String() string {
	if n.Message == "" {
		return n.Title
	}

	return n.Title + ": " + n.Message
}

// LinkService acts on an application's download link.
type LinkService struct {
	opener    domain.URLOpener
	clipboard domain.Clipboard
	network   domain.NetworkClient
	files     domain.FileManager
	t         i18n.Lookup
	now       func() time.Time
}

// NewLinkService creates a LinkService.
func NewLinkService(
	opener domain.URLOpener,
	clipboard domain.Clipboard,
	network domain.NetworkClient,
	files domain.FileManager,
	t i18n.Lookup,
) *LinkService {
	if t == nil {
		t = i18n.Passthrough()
	}

	return &LinkService{
		opener:    opener,
		clipboard: clipboard,
		network:   network,
		files:     files,
		t:         t,
		now:       time.Now,
	}
}

// OpenDownload hands the download link to the desktop browser.
func (s *LinkService) OpenDownload(ctx context.Context, app catalog.Application) (Notice, error) {
	if strings.TrimSpace(app.DownloadURL) == "" {
		return Notice{}, ErrNoDownloadURL
	}

	if err := s.opener.Open(ctx, app.DownloadURL); err != nil {
		return Notice{}, fmt.Errorf("failed to open %s: %w", app.DownloadURL, err)
	}

	return Notice{
		Title:   s.t("downloadStarted", nil),
		Message: s.t("downloadMessage", i18n.Params{"name": app.Name}),
	}, nil
}

// CopyLink puts the download link on the clipboard.
func (s *LinkService) CopyLink(app catalog.Application) (Notice, error) {
	if strings.TrimSpace(app.DownloadURL) == "" {
		return Notice{}, ErrNoDownloadURL
	}

	if err := s.clipboard.Copy(app.DownloadURL); err != nil {
		return Notice{}, fmt.Errorf("failed to copy link: %w", err)
	}

	return Notice{Title: s.t("linkCopied", nil), Message: s.t("linkCopiedMessage", nil)}, nil
}

// Download saves the application's file as fileName inside dir. An existing
// file is never overwritten; a numeric suffix is added instead.
func (s *LinkService) Download(
	ctx context.Context, app catalog.Application, dir, fileName string,
) (domain.DownloadResult, error) {
	if strings.TrimSpace(app.DownloadURL) == "" {
		return domain.DownloadResult{}, ErrNoDownloadURL
	}

	if err := s.files.EnsureDir(dir); err != nil {
		return domain.DownloadResult{}, err
	}

	dest, err := s.freePath(dir, fileName)
	if err != nil {
		return domain.DownloadResult{}, err
	}

	start := s.now()

	if err := s.network.DownloadFile(ctx, app.DownloadURL, dest); err != nil {
		return domain.DownloadResult{}, fmt.Errorf("failed to download %s: %w", app.Name, err)
	}

	finished := s.now()

	return domain.DownloadResult{
		ID:        app.ID,
		Name:      app.Name,
		URL:       app.DownloadURL,
		Path:      dest,
		Duration:  finished.Sub(start),
		Timestamp: finished,
	}, nil
}

// SavedNotice describes a finished download.
func (s *LinkService) SavedNotice(result domain.DownloadResult) Notice {
	return Notice{Title: s.t("downloadSaved", i18n.Params{"name": result.Name, "path": result.Path})}
}

func (s *LinkService) freePath(dir, fileName string) (string, error) {
	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)

	for attempt := range maxNameAttempts {
		candidate := fileName
		if attempt > 0 {
			candidate = stem + "-" + strconv.Itoa(attempt) + ext
		}

		path := filepath.Join(dir, candidate)
		if !s.files.FileExists(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoFreeFileName, dir)
}
