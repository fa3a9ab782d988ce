package transport

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/khoahotran/bunny-go/internal/bunnytest"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

func TestDoSendsHeadersAndBody(t *testing.T) {
	srv := bunnytest.NewServer(t)
	srv.Handle(http.MethodPost, "/library/1/videos", bunnytest.Reply(http.StatusOK, map[string]any{"ok": true}))

	c := New(srv.Client(), nil, nil)
	header := http.Header{}
	header.Set("AccessKey", "secret")
	header.Set("content-type", "application/*+json")

	rsp, err := c.Do(context.Background(), Request{
		Operation: "test.Post",
		Method:    http.MethodPost,
		URL:       "https://video.bunnycdn.com/library/1/videos",
		Header:    header,
		Body:      []byte(`{"title":"x"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rsp.Code)
	assert.JSONEq(t, `{"ok":true}`, string(rsp.Body))

	last := srv.Last()
	assert.Equal(t, "video.bunnycdn.com", last.Host)
	assert.Equal(t, "secret", last.Header.Get("AccessKey"))
	assert.Equal(t, "application/*+json", last.Header.Get("Content-Type"))
	assert.Equal(t, `{"title":"x"}`, string(last.Body))
}

func TestDoTransportFailureHasCodeZero(t *testing.T) {
	c := New(bunnytest.FailingDoer{Err: errors.New("network unreachable")}, nil, nil)

	_, err := c.Do(context.Background(), Request{
		Operation: "test.Get",
		Method:    http.MethodGet,
		URL:       "https://api.bunny.net/country",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrTransport)
	assert.Equal(t, 0, apperror.Code(err))
}

func TestClassify(t *testing.T) {
	table := result.Recognize(result.OK, result.Unauthorized, result.NotFound)
	decode := JSON[map[string]int]

	ok, err := Classify("op", &Response{Code: 200, Body: []byte(`{"a":1}`)}, table, decode)
	require.NoError(t, err)
	assert.Equal(t, result.OK, ok.Status)
	assert.Equal(t, 1, ok.Data["a"])

	nf, err := Classify("op", &Response{Code: 404, Body: []byte(`{"Message":"gone"}`)}, table, decode)
	require.NoError(t, err)
	assert.Equal(t, result.NotFound, nf.Status)
	assert.Nil(t, nf.Data)
	assert.Equal(t, "gone", nf.Message)

	teapot, err := Classify("op", &Response{Code: 418, Body: []byte("not json")}, table, decode)
	require.NoError(t, err)
	assert.Equal(t, result.Undefined, teapot.Status)
	assert.Equal(t, 418, teapot.Code)

	_, err = Classify("op", &Response{Code: 200, Body: []byte("{")}, table, decode)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDecode)
	assert.Equal(t, 200, apperror.Code(err))
}

func TestParamsDropsFalsyAndKeepsOrder(t *testing.T) {
	p := NewParams().
		Set("page", 1).
		Set("itemsPerPage", 100).
		Set("orderBy", "date").
		Set("search", "").
		Set("lowPriority", false).
		Set("thumbnailTime", 0).
		Set("collection", (*string)(nil))

	assert.Equal(t, "page=1&itemsPerPage=100&orderBy=date", p.Encode())

	p.Set("page", 3).Set("search", "cats & dogs")
	assert.Equal(t, "page=3&itemsPerPage=100&orderBy=date&search=cats+%26+dogs", p.Encode())

	hourly := true
	assert.Equal(t, "hourly=true", NewParams().Set("hourly", &hourly).Encode())
	assert.Equal(t, "https://x/y", WithQuery("https://x/y", NewParams()))
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "videos/my%20clip%3F.mp4", EscapePath("videos/my clip?.mp4"))
	assert.Equal(t, "dir/sub/", EscapePath("dir/sub/"))
}

func TestParseTime(t *testing.T) {
	ts, err := ParseTime("2024-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.January, ts.Month())
	assert.Equal(t, 1, ts.Day())

	ts, err = ParseTime("2023-03-09T15:32:31.983")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, 15, ts.Hour())

	zero, err := ParseTime("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseTime("yesterday-ish")
	assert.Error(t, err)
}

func TestDoRecordsSpan(t *testing.T) {
	srv := bunnytest.NewServer(t)
	srv.Handle(http.MethodGet, "/country", bunnytest.Reply(http.StatusUnauthorized, map[string]any{"Message": "bad key"}))

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	c := New(srv.Client(), nil, tp)

	_, err := c.Do(context.Background(), Request{
		Operation: "account.ListCountries",
		Method:    http.MethodGet,
		URL:       "https://api.bunny.net/country",
	})
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "account.ListCountries", spans[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "api.bunny.net", attrs["server.address"].AsString())
	assert.Equal(t, int64(401), attrs["http.response.status_code"].AsInt64())
}
