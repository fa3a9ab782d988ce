// Package account wraps the account-level BunnyCDN API at api.bunny.net:
// reference lists (countries, regions, languages) and Stream video library
// management.
//
// Every call returns a result.Result. Transport and decoding failures come
// back as an *apperror.AppError whose Code is the HTTP status, or 0 when no
// response was received.
package account

import (
	"context"
	"net/http"
	"strconv"

	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

const baseURL = "https://api.bunny.net"

// Credentials supplies the account API key on every call.
type Credentials interface {
	AccountKey() string
}

type Client struct {
	creds Credentials
	http  *transport.Client
}

// NewClient is used by the root client's Account.
func NewClient(creds Credentials, t *transport.Client) *Client {
	return &Client{creds: creds, http: t}
}

type request struct {
	op          string
	method      string
	url         string
	body        any
	raw         []byte
	contentType string
}

func send[T any](ctx context.Context, c *Client, r request, table result.Table, decode func(body []byte) (T, error)) (result.Result[T], error) {
	header := http.Header{}
	header.Set("accept", "application/json")
	header.Set("AccessKey", c.creds.AccountKey())

	payload := r.raw
	if r.body != nil {
		var err error
		if payload, err = transport.EncodeJSON(r.op, r.body); err != nil {
			return result.Result[T]{}, err
		}
		header.Set("content-type", "application/json")
	}
	if r.contentType != "" {
		header.Set("content-type", r.contentType)
	}

	rsp, err := c.http.Do(ctx, transport.Request{
		Operation: r.op,
		Method:    r.method,
		URL:       r.url,
		Header:    header,
		Body:      payload,
	})
	if err != nil {
		return result.Result[T]{}, err
	}
	return transport.Classify(r.op, rsp, table, decode)
}

func (c *Client) ListCountries(ctx context.Context) (result.Result[[]Country], error) {
	return send(ctx, c, request{op: "account.ListCountries", method: http.MethodGet, url: baseURL + "/country"},
		listCountriesTable, transport.JSON[[]Country])
}

func (c *Client) ListRegions(ctx context.Context) (result.Result[[]Region], error) {
	return send(ctx, c, request{op: "account.ListRegions", method: http.MethodGet, url: baseURL + "/region"},
		listRegionsTable, transport.JSON[[]Region])
}

func (c *Client) ListLanguages(ctx context.Context) (result.Result[[]Language], error) {
	return send(ctx, c, request{op: "account.ListLanguages", method: http.MethodGet, url: baseURL + "/videolibrary/languages"},
		listLanguagesTable, transport.JSON[[]Language])
}

type ListVideoLibrariesParams struct {
	Page    int
	PerPage int
	Search  string
}

// ListVideoLibraries sends only the set params; the API pages from 1.
func (c *Client) ListVideoLibraries(ctx context.Context, p ListVideoLibrariesParams) (result.Result[*VideoLibraryList], error) {
	q := transport.NewParams().
		Set("page", p.Page).
		Set("perPage", p.PerPage).
		Set("search", p.Search)

	return send(ctx, c, request{
		op:     "account.ListVideoLibraries",
		method: http.MethodGet,
		url:    transport.WithQuery(baseURL+"/videolibrary", q),
	}, listVideoLibrariesTable, func(body []byte) (*VideoLibraryList, error) {
		w, err := transport.JSON[struct {
			CurrentPage  int                `json:"CurrentPage"`
			TotalItems   int                `json:"TotalItems"`
			HasMoreItems bool               `json:"HasMoreItems"`
			Items        []wireVideoLibrary `json:"Items"`
		}](body)
		if err != nil {
			return nil, err
		}
		list := &VideoLibraryList{
			CurrentPage:  w.CurrentPage,
			TotalItems:   w.TotalItems,
			HasMoreItems: w.HasMoreItems,
			Items:        make([]*VideoLibrary, 0, len(w.Items)),
		}
		for _, item := range w.Items {
			data, err := item.library()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, newVideoLibrary(c, data))
		}
		return list, nil
	})
}

func (c *Client) GetVideoLibrary(ctx context.Context, id int64) (result.Result[*VideoLibrary], error) {
	return send(ctx, c, request{
		op:     "account.GetVideoLibrary",
		method: http.MethodGet,
		url:    libraryURL(id),
	}, getVideoLibraryTable, c.decodeHandle)
}

type addVideoLibraryBody struct {
	Name               string   `json:"Name"`
	ReplicationRegions []string `json:"ReplicationRegions,omitempty"`
}

// AddVideoLibrary creates a library replicated to the given region codes.
func (c *Client) AddVideoLibrary(ctx context.Context, name string, replicationRegions []string) (result.Result[*VideoLibrary], error) {
	return send(ctx, c, request{
		op:     "account.AddVideoLibrary",
		method: http.MethodPost,
		url:    baseURL + "/videolibrary",
		body:   addVideoLibraryBody{Name: name, ReplicationRegions: replicationRegions},
	}, addVideoLibraryTable, c.decodeHandle)
}

func (c *Client) decodeHandle(body []byte) (*VideoLibrary, error) {
	data, err := decodeVideoLibrary(body)
	if err != nil {
		return nil, err
	}
	return newVideoLibrary(c, data), nil
}

func libraryURL(id int64, segments ...string) string {
	u := baseURL + "/videolibrary/" + strconv.FormatInt(id, 10)
	for _, s := range segments {
		u += "/" + transport.EscapePath(s)
	}
	return u
}
