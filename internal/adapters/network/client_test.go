// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package network_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/janderssonse/appstore/internal/adapters/network"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	client := network.NewHTTPClient(7 * time.Second).Client()
	assert.Equal(t, 7*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.Proxy)
}

func TestDownloadFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte("binary payload"))
	}))
	t.Cleanup(server.Close)

	client := network.NewHTTPClient(5 * time.Second)
	dir := t.TempDir()

	dest := filepath.Join(dir, "app.tar.gz")
	require.NoError(t, client.DownloadFile(context.Background(), server.URL+"/app.tar.gz", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "binary payload", string(data))

	missing := filepath.Join(dir, "missing")
	err = client.DownloadFile(context.Background(), server.URL+"/missing", missing)
	require.ErrorIs(t, err, network.ErrDownloadStatus)
	assert.NoFileExists(t, missing)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestNewDownloadClient(t *testing.T) {
	t.Parallel()

	client := network.NewDownloadClient(7 * time.Second).Client()
	assert.Zero(t, client.Timeout, "transfers are bounded by the context")

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, transport.ResponseHeaderTimeout)
}

func TestDownloadFile_SlowBodyOutlivesHeaderTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return
		}

		for range 3 {
			_, _ = w.Write([]byte("chunk "))
			flusher.Flush()
			time.Sleep(150 * time.Millisecond)
		}
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "slow.bin")
	client := network.NewDownloadClient(100 * time.Millisecond)

	require.NoError(t, client.DownloadFile(context.Background(), server.URL+"/slow.bin", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "chunk chunk chunk ", string(data))
}

func TestDownloadFile_HeaderTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	dest := filepath.Join(t.TempDir(), "never.bin")
	err := network.NewDownloadClient(50*time.Millisecond).DownloadFile(context.Background(), server.URL+"/never.bin", dest)

	require.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.NoFileExists(t, dest)
}

func TestDownloadFile_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := network.NewHTTPClient(time.Second).DownloadFile(context.Background(), url+"/x.bin", filepath.Join(t.TempDir(), "x.bin"))
	require.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url      string
		fallback string
		expected string
	}{
		{"https://example.org/releases/krita-5.2.AppImage", "Krita", "krita-5.2.AppImage"},
		{"https://example.org/download?id=3", "VLC media player", "VLC-media-player"},
		{"https://example.org/", "", "download"},
		{"::", "GIMP", "GIMP"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.expected, network.FileName(testCase.url, testCase.fallback), testCase.url)
	}
}
