// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/janderssonse/appstore/internal/application"
	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type linkMocks struct {
	opener    *testutil.MockURLOpener
	clipboard *testutil.MockClipboard
	network   *testutil.MockNetworkClient
	files     *testutil.MockFileManager
}

func newLinks(t *testing.T) (*application.LinkService, linkMocks) {
	t.Helper()

	mocks := linkMocks{
		opener:    &testutil.MockURLOpener{},
		clipboard: &testutil.MockClipboard{},
		network:   &testutil.MockNetworkClient{},
		files:     &testutil.MockFileManager{},
	}

	t.Cleanup(func() {
		mocks.opener.AssertExpectations(t)
		mocks.clipboard.AssertExpectations(t)
		mocks.network.AssertExpectations(t)
		mocks.files.AssertExpectations(t)
	})

	service := application.NewLinkService(mocks.opener, mocks.clipboard, mocks.network, mocks.files, english(t))

	return service, mocks
}

var vlc = catalog.Application{ID: 1, Name: "VLC", DownloadURL: "https://get.videolan.org/vlc.deb"} //nolint:gochecknoglobals

func TestOpenDownload(t *testing.T) {
	t.Parallel()

	service, mocks := newLinks(t)
	ctx := context.Background()

	mocks.opener.On("Open", ctx, vlc.DownloadURL).Return(nil)

	notice, err := service.OpenDownload(ctx, vlc)
	require.NoError(t, err)
	assert.Equal(t, "Download started", notice.Title)
	assert.Equal(t, "VLC will be downloaded from the official store.", notice.Message)
	assert.Equal(t, "Download started: VLC will be downloaded from the official store.", notice.String())
}

func TestOpenDownload_NoURL(t *testing.T) {
	t.Parallel()

	service, _ := newLinks(t)

	_, err := service.OpenDownload(context.Background(), catalog.Application{Name: "Ghost"})
	require.ErrorIs(t, err, application.ErrNoDownloadURL)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCopyLink(t *testing.T) {
	t.Parallel()

	service, mocks := newLinks(t)

	mocks.clipboard.On("Copy", vlc.DownloadURL).Return(nil).Once()
	mocks.clipboard.On("Copy", vlc.DownloadURL).Return(errors.New("no clipboard")).Once()

	notice, err := service.CopyLink(vlc)
	require.NoError(t, err)
	assert.Equal(t, "Link copied", notice.Title)

	_, err = service.CopyLink(vlc)
	require.ErrorContains(t, err, "no clipboard")
}

func TestDownload_PicksFreeName(t *testing.T) {
	t.Parallel()

	service, mocks := newLinks(t)
	ctx := context.Background()
	dir := filepath.Join("tmp", "downloads")

	mocks.files.On("EnsureDir", dir).Return(nil)
	mocks.files.On("FileExists", filepath.Join(dir, "vlc.deb")).Return(true)
	mocks.files.On("FileExists", filepath.Join(dir, "vlc-1.deb")).Return(true)
	mocks.files.On("FileExists", filepath.Join(dir, "vlc-2.deb")).Return(false)
	mocks.network.On("DownloadFile", ctx, vlc.DownloadURL, filepath.Join(dir, "vlc-2.deb")).Return(nil)

	result, err := service.Download(ctx, vlc, dir, "vlc.deb")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vlc-2.deb"), result.Path)
	assert.Equal(t, "VLC", result.Name)
	assert.Equal(t, vlc.DownloadURL, result.URL)

	assert.Equal(t, "VLC saved to "+result.Path, service.SavedNotice(result).Title)
}

func TestDownload_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		service, mocks := newLinks(t)
		mocks.files.On("EnsureDir", "ro").Return(errors.New("read-only"))

		_, err := service.Download(ctx, vlc, "ro", "vlc.deb")
		require.ErrorContains(t, err, "read-only")
	})

	t.Run("every name taken", func(t *testing.T) {
		t.Parallel()

		service, mocks := newLinks(t)
		mocks.files.On("EnsureDir", "full").Return(nil)
		mocks.files.On("FileExists", mock.Anything).Return(true)

		_, err := service.Download(ctx, vlc, "full", "vlc.deb")
		require.ErrorIs(t, err, application.ErrNoFreeFileName)
	})

	t.Run("network", func(t *testing.T) {
		t.Parallel()

		service, mocks := newLinks(t)
		mocks.files.On("EnsureDir", "dl").Return(nil)
		mocks.files.On("FileExists", mock.Anything).Return(false)
		mocks.network.On("DownloadFile", ctx, vlc.DownloadURL, filepath.Join("dl", "vlc.deb")).Return(domain.ErrNetworkFailure)

		_, err := service.Download(ctx, vlc, "dl", "vlc.deb")
		require.ErrorIs(t, err, domain.ErrNetworkFailure)
	})
}
