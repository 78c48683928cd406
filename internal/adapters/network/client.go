// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network provides the shared HTTP client and file downloads.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/janderssonse/appstore/internal/domain"
)

// ErrDownloadStatus is wrapped when a download answers with a non-200 status.
var ErrDownloadStatus = errors.New("unexpected download status")

// HTTPClient implements domain.NetworkClient interface.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new HTTP client with timeout. Proxy settings come
// from HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(0),
		},
	}
}

// NewDownloadClient creates a client for file transfers. The body may take
// as long as it needs; only the wait for response headers is bounded by
// headerTimeout, and the request context bounds the rest.
func NewDownloadClient(headerTimeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Transport: newTransport(headerTimeout)},
	}
}

func newTransport(headerTimeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: headerTimeout,
	}
}

// Client exposes the underlying client for API adapters sharing the transport.
func (c *HTTPClient) Client() *http.Client {
	return c.client
}

// DownloadFile downloads a file from a URL to a destination path. The file
// appears at destPath only once the body was fully written.
func (c *HTTPClient) DownloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w: %w", domain.ErrNetworkFailure, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrDownloadStatus, resp.StatusCode)
	}

	out, err := os.CreateTemp(filepath.Dir(destPath), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	tmpName := out.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()

		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName picks a local file name for a download: the last path segment of
// the URL when it looks like a file, otherwise the application name.
func FileName(rawURL, fallback string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		base := path.Base(parsed.Path)
		if strings.Contains(base, ".") && base != "." && base != "/" {
			return sanitize(base)
		}
	}

	name := sanitize(fallback)
	if name == "" {
		return "download"
	}

	return name
}

func sanitize(name string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(name, "-"), "-.")
}
