// Package storage talks to BunnyCDN Edge Storage: one client per storage
// zone, addressed through the regional endpoint chosen on the root client.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

var (
	uploadTable = result.Recognize(result.Created, result.BadRequest)
	deleteTable = result.Recognize(result.OK, result.BadRequest)
)

// Credentials is the shared account state a zone client reads on every
// call. The root client implements it; changing the endpoint or key there
// affects every zone client created from it.
type Credentials interface {
	AccessKey() string
	Endpoint() Endpoint
}

type Client struct {
	creds Credentials
	http  *transport.Client
	zone  string
}

// NewClient is used by the root client's CreateClient.
func NewClient(creds Credentials, t *transport.Client, zone string) *Client {
	return &Client{creds: creds, http: t, zone: zone}
}

func (c *Client) StorageZoneName() string { return c.zone }

// Endpoint is the endpoint the next call will use.
func (c *Client) Endpoint() Endpoint { return c.creds.Endpoint() }

func (c *Client) url(path string, dir bool) string {
	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(string(c.creds.Endpoint()))
	b.WriteByte('/')
	b.WriteString(transport.EscapePath(c.zone))
	b.WriteByte('/')

	path = strings.TrimLeft(path, "/")
	if path != "" {
		b.WriteString(transport.EscapePath(path))
		if dir && !strings.HasSuffix(path, "/") {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func (c *Client) header(kv ...string) http.Header {
	h := http.Header{}
	h.Set("AccessKey", c.creds.AccessKey())
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

// ListFiles lists the directory at path. The status code is not inspected:
// whatever body comes back is decoded as a listing, so an error-shaped body
// surfaces as a decoding error carrying the status code and an empty body
// as an empty listing.
func (c *Client) ListFiles(ctx context.Context, path string) ([]Entity, error) {
	const op = "storage.ListFiles"

	rsp, err := c.http.Do(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodGet,
		URL:       c.url(path, true),
		Header:    c.header("accept", "application/json"),
	})
	if err != nil {
		return nil, err
	}

	entities, err := decodeEntities(rsp.Body)
	if err != nil {
		return nil, apperror.NewDecode(rsp.Code, op, err)
	}
	return entities, nil
}

// Download is the raw outcome of DownloadFile.
type Download struct {
	Code int
	Body []byte
}

// JSON decodes the body, which is how BunnyCDN error payloads arrive.
func (d *Download) JSON(v any) error {
	return json.Unmarshal(d.Body, v)
}

// DownloadFile returns the response body whatever the status: a 404 body
// (BunnyCDN's error payload) comes back exactly like file content. Check
// Code to tell them apart.
func (c *Client) DownloadFile(ctx context.Context, path string) (*Download, error) {
	rsp, err := c.http.Do(ctx, transport.Request{
		Operation: "storage.DownloadFile",
		Method:    http.MethodGet,
		URL:       c.url(path, false),
		Header:    c.header("accept", "*/*"),
	})
	if err != nil {
		return nil, err
	}
	return &Download{Code: rsp.Code, Body: rsp.Body}, nil
}

// UploadFile stores content at path: Created on 201, BadRequest on 400,
// Undefined otherwise. Code keeps the raw HTTP status.
func (c *Client) UploadFile(ctx context.Context, path string, content []byte) (result.Result[struct{}], error) {
	const op = "storage.UploadFile"

	if content == nil {
		content = []byte{}
	}
	rsp, err := c.http.Do(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodPut,
		URL:       c.url(path, false),
		Header:    c.header("content-type", "application/octet-stream"),
		Body:      content,
	})
	if err != nil {
		return result.Result[struct{}]{}, err
	}
	return transport.Classify[struct{}](op, rsp, uploadTable, nil)
}

// DeleteFile removes the file at path, or the directory when path ends in
// a slash: OK on 200, BadRequest on 400, Undefined otherwise. The zone root
// itself is never deleted.
func (c *Client) DeleteFile(ctx context.Context, path string) (result.Result[struct{}], error) {
	const op = "storage.DeleteFile"

	if strings.Trim(path, "/") == "" {
		return result.Result[struct{}]{}, apperror.NewInvalidInput(op, errors.New("refusing to delete the storage zone root"))
	}
	rsp, err := c.http.Do(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodDelete,
		URL:       c.url(path, false),
		Header:    c.header(),
	})
	if err != nil {
		return result.Result[struct{}]{}, err
	}
	return transport.Classify[struct{}](op, rsp, deleteTable, nil)
}
