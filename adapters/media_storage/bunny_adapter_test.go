package media_storage

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/bunny-go/internal/bunnytest"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny"
	"github.com/khoahotran/bunny-go/pkg/bunny/storage"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

func newAdapter(t *testing.T, pullZone string) (*bunnytest.Server, *bunnyStorageAdapter) {
	t.Helper()
	srv := bunnytest.NewServer(t)
	client := bunny.New("zone-key", bunny.WithHTTPClient(srv.Client()), bunny.WithEndpoint(storage.NewYork))
	up, err := NewBunnyStorageAdapter(client.CreateClient("assets"), pullZone, logger.NewNopLogger())
	require.NoError(t, err)
	return srv, up.(*bunnyStorageAdapter)
}

func TestUploadReturnsPullZoneURL(t *testing.T) {
	srv, up := newAdapter(t, "cdn.example.b-cdn.net")
	srv.Handle(http.MethodPut, "/assets/avatars/me 1.png", bunnytest.Reply(http.StatusCreated, nil))

	url, err := up.Upload(context.Background(), strings.NewReader("png"), "/avatars/", "me 1.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.b-cdn.net/avatars/me%201.png", url)
	assert.Equal(t, "png", string(srv.Last().Body))
	assert.Equal(t, "ny.storage.bunnycdn.com", srv.Last().Host)
}

func TestUploadWithoutPullZone(t *testing.T) {
	srv, up := newAdapter(t, "")
	srv.Handle(http.MethodPut, "/assets/a.txt", bunnytest.Reply(http.StatusCreated, nil))

	url, err := up.Upload(context.Background(), strings.NewReader("a"), "", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://ny.storage.bunnycdn.com/assets/a.txt", url)
}

func TestUploadRejected(t *testing.T) {
	srv, up := newAdapter(t, "")
	srv.Handle(http.MethodPut, "/assets/a.txt", bunnytest.Reply(http.StatusBadRequest, nil))

	_, err := up.Upload(context.Background(), strings.NewReader("a"), "", "a.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStatus)
	assert.Equal(t, http.StatusBadRequest, apperror.Code(err))
}

func TestDelete(t *testing.T) {
	srv, up := newAdapter(t, "")
	srv.Handle(http.MethodDelete, "/assets/old.txt", bunnytest.Reply(http.StatusOK, nil))
	srv.Handle(http.MethodDelete, "/assets/missing.txt", bunnytest.Reply(http.StatusNotFound, nil))

	require.NoError(t, up.Delete(context.Background(), "old.txt"))

	err := up.Delete(context.Background(), "missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStatus)
	assert.Equal(t, http.StatusNotFound, apperror.Code(err))
}

func TestUploadUnrecognizedStatusKeepsHTTPCode(t *testing.T) {
	srv, up := newAdapter(t, "")
	srv.Handle(http.MethodPut, "/assets/a.txt", bunnytest.Reply(http.StatusForbidden, map[string]any{"Message": "wrong key"}))

	_, err := up.Upload(context.Background(), strings.NewReader("a"), "", "a.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStatus)
	assert.Equal(t, http.StatusForbidden, apperror.Code(err))
	assert.Contains(t, err.Error(), "wrong key")
}
