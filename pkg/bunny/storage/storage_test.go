package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/bunny-go/internal/bunnytest"
	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

type staticCreds struct {
	key      string
	endpoint Endpoint
}

func (s staticCreds) AccessKey() string  { return s.key }
func (s staticCreds) Endpoint() Endpoint { return s.endpoint }

func newTestClient(t *testing.T, endpoint Endpoint) (*Client, *bunnytest.Server) {
	srv := bunnytest.NewServer(t)
	c := NewClient(staticCreds{key: "zone-key", endpoint: endpoint}, transport.New(srv.Client(), nil, nil), "my-zone")
	return c, srv
}

func TestListFiles(t *testing.T) {
	c, srv := newTestClient(t, NewYork)
	guid := bunnytest.NewGUID()
	srv.Handle(http.MethodGet, "/my-zone/videos/2024/", bunnytest.Reply(http.StatusOK, []map[string]any{
		{
			"Guid":            guid,
			"StorageZoneName": "my-zone",
			"Path":            "/my-zone/videos/2024/",
			"ObjectName":      "intro.mp4",
			"Length":          1048576,
			"LastChanged":     "2024-01-01T00:00:00Z",
			"IsDirectory":     false,
			"ServerId":        12,
			"UserId":          "user-1",
			"DateCreated":     "2023-12-31T10:20:30.5",
			"StorageZoneId":   99,
		},
	}))

	files, err := c.ListFiles(context.Background(), "videos/2024")
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, guid, f.GUID)
	assert.Equal(t, "intro.mp4", f.ObjectName)
	assert.Equal(t, int64(1048576), f.Length)
	assert.Equal(t, int64(99), f.StorageZoneID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.LastChanged.UTC())
	assert.Equal(t, 2023, f.DateCreated.Year())

	last := srv.Last()
	assert.Equal(t, "ny.storage.bunnycdn.com", last.Host)
	assert.Equal(t, "application/json", last.Header.Get("Accept"))
	assert.Equal(t, "zone-key", last.Header.Get("AccessKey"))
}

func TestListFilesErrorShapedBody(t *testing.T) {
	c, srv := newTestClient(t, Falkenstein)
	srv.Handle(http.MethodGet, "/my-zone/missing/", bunnytest.Reply(http.StatusNotFound, map[string]any{
		"HttpCode": 404,
		"Message":  "Object Not Found",
	}))

	_, err := c.ListFiles(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDecode)
	assert.Equal(t, http.StatusNotFound, apperror.Code(err))
}

func TestListFilesEmptyBody(t *testing.T) {
	c, srv := newTestClient(t, Falkenstein)
	srv.Handle(http.MethodGet, "/my-zone/", bunnytest.Reply(http.StatusOK, nil))

	files, err := c.ListFiles(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDownloadFilePassesBodyThrough(t *testing.T) {
	c, srv := newTestClient(t, Falkenstein)
	srv.Handle(http.MethodGet, "/my-zone/a.txt", bunnytest.Reply(http.StatusOK, []byte("hello")))
	srv.Handle(http.MethodGet, "/my-zone/b.txt", bunnytest.Reply(http.StatusNotFound, map[string]any{
		"HttpCode": 404,
		"Message":  "Object Not Found",
	}))

	ok, err := c.DownloadFile(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 200, ok.Code)
	assert.Equal(t, "hello", string(ok.Body))
	assert.Equal(t, "*/*", srv.Last().Header.Get("Accept"))

	missing, err := c.DownloadFile(context.Background(), "b.txt")
	require.NoError(t, err)
	assert.Equal(t, 404, missing.Code)

	var payload struct{ Message string }
	require.NoError(t, missing.JSON(&payload))
	assert.Equal(t, "Object Not Found", payload.Message)
}

func TestUploadFile(t *testing.T) {
	cases := []struct {
		code int
		want result.Status
	}{
		{http.StatusCreated, result.Created},
		{http.StatusBadRequest, result.BadRequest},
		{http.StatusForbidden, result.Undefined},
		{http.StatusOK, result.Undefined},
		{http.StatusInternalServerError, result.Undefined},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.code), func(t *testing.T) {
			c, srv := newTestClient(t, Falkenstein)
			srv.Handle(http.MethodPut, "/my-zone/dir/my clip.mp4", bunnytest.Reply(tc.code, nil))

			res, err := c.UploadFile(context.Background(), "dir/my clip.mp4", []byte{0x00, 0x01})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Status)
			assert.Equal(t, tc.code, res.Code)

			last := srv.Last()
			assert.Equal(t, "/my-zone/dir/my%20clip.mp4", last.RawPath)
			assert.Equal(t, "application/octet-stream", last.Header.Get("Content-Type"))
			assert.Equal(t, []byte{0x00, 0x01}, last.Body)
		})
	}
}

func TestDeleteFile(t *testing.T) {
	cases := []struct {
		code int
		want result.Status
	}{
		{http.StatusOK, result.OK},
		{http.StatusBadRequest, result.BadRequest},
		{http.StatusNotFound, result.Undefined},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.code), func(t *testing.T) {
			c, srv := newTestClient(t, Sydney)
			srv.Handle(http.MethodDelete, "/my-zone/old.txt", bunnytest.Reply(tc.code, nil))

			res, err := c.DeleteFile(context.Background(), "old.txt")
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Status)
			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, "syd.storage.bunnycdn.com", srv.Last().Host)
		})
	}
}

func TestDeleteFileDirectoryKeepsTrailingSlash(t *testing.T) {
	c, srv := newTestClient(t, Falkenstein)
	srv.Handle(http.MethodDelete, "/my-zone/videos/2024/", bunnytest.Reply(http.StatusOK, nil))

	res, err := c.DeleteFile(context.Background(), "/videos/2024/")
	require.NoError(t, err)
	assert.Equal(t, result.OK, res.Status)
	assert.Equal(t, "/my-zone/videos/2024/", srv.Last().Path)
}

func TestDeleteFileRefusesZoneRoot(t *testing.T) {
	for _, path := range []string{"", "/", "//"} {
		c, srv := newTestClient(t, Falkenstein)

		_, err := c.DeleteFile(context.Background(), path)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		assert.Empty(t, srv.Requests())
	}
}

func TestListFilesKeepsSingleTrailingSlash(t *testing.T) {
	c, srv := newTestClient(t, Falkenstein)
	srv.Handle(http.MethodGet, "/my-zone/videos/", bunnytest.Reply(http.StatusOK, []any{}))

	_, err := c.ListFiles(context.Background(), "videos/")
	require.NoError(t, err)
	assert.Equal(t, "/my-zone/videos/", srv.Last().Path)
}

func TestUploadFileTransportFailure(t *testing.T) {
	c := NewClient(staticCreds{key: "k", endpoint: Falkenstein}, transport.New(bunnytest.FailingDoer{Err: errors.New("offline")}, nil, nil), "z")

	res, err := c.UploadFile(context.Background(), "a", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, result.Undefined, res.Status)
	assert.Equal(t, 0, apperror.Code(err))
}

func TestParseEndpoint(t *testing.T) {
	e, err := ParseEndpoint("ny")
	require.NoError(t, err)
	assert.Equal(t, NewYork, e)

	e, err = ParseEndpoint("syd.storage.bunnycdn.com")
	require.NoError(t, err)
	assert.Equal(t, Sydney, e)

	_, err = ParseEndpoint("mars")
	assert.Error(t, err)
}
