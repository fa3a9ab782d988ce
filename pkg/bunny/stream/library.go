// Package stream wraps the BunnyCDN Stream API for one video library.
//
// Library issues library-level calls and hands out Video and Collection
// handles. Handles keep a cached copy of the entity and update it only after
// a successful mutating call.
package stream

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

const baseURL = "https://video.bunnycdn.com/library"

type Library struct {
	id   int64
	key  string
	http *transport.Client
}

// NewLibrary is used by the root client's GetLibrary.
func NewLibrary(id int64, key string, t *transport.Client) *Library {
	return &Library{id: id, key: key, http: t}
}

func (l *Library) ID() int64 { return l.id }

func (l *Library) AccessKey() string { return l.key }

func (l *Library) url(segments ...string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteByte('/')
	b.WriteString(strconv.FormatInt(l.id, 10))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(transport.EscapePath(s))
	}
	return b.String()
}

// call sends one request and classifies the response. A nil body sends no
// payload and no content-type.
func call[T any](
	ctx context.Context,
	l *Library,
	op, method, url string,
	body any,
	table result.Table,
	decode func(body []byte) (T, error),
) (result.Result[T], error) {
	header := http.Header{}
	header.Set("accept", "application/json")
	header.Set("AccessKey", l.key)

	var payload []byte
	if body != nil {
		var err error
		if payload, err = transport.EncodeJSON(op, body); err != nil {
			return result.Result[T]{}, err
		}
		header.Set("content-type", "application/*+json")
	}

	rsp, err := l.http.Do(ctx, transport.Request{
		Operation: op,
		Method:    method,
		URL:       url,
		Header:    header,
		Body:      payload,
	})
	if err != nil {
		return result.Result[T]{}, err
	}
	return transport.Classify(op, rsp, table, decode)
}

// GetVideo fetches one video and binds it to this library.
func (l *Library) GetVideo(ctx context.Context, videoID int64) (result.Result[*Video], error) {
	id := strconv.FormatInt(videoID, 10)
	return call(ctx, l, "stream.GetVideo", http.MethodGet, l.url("videos", id), nil, getVideoTable,
		func(body []byte) (*Video, error) {
			data, err := decodeVideo(body)
			if err != nil {
				return nil, err
			}
			return NewVideo(l, *data, videoID), nil
		})
}

type StatisticsParams struct {
	DateFrom  string
	DateTo    string
	Hourly    bool
	VideoGUID string
}

// GetVideoStatistics sends only the non-empty params.
func (l *Library) GetVideoStatistics(ctx context.Context, p StatisticsParams) (result.Result[*VideoStatistics], error) {
	q := transport.NewParams().
		Set("dateFrom", p.DateFrom).
		Set("dateTo", p.DateTo).
		Set("hourly", p.Hourly).
		Set("videoGuid", p.VideoGUID)

	return call(ctx, l, "stream.GetVideoStatistics", http.MethodGet,
		transport.WithQuery(l.url("statistics"), q), nil, videoStatisticsTable, jsonPtr[VideoStatistics])
}

type ListVideosParams struct {
	Page         int
	ItemsPerPage int
	Search       string
	Collection   string
	OrderBy      string
}

// listDefaults seeds every paginated listing.
func listDefaults() *transport.Params {
	return transport.NewParams().
		Set("page", 1).
		Set("itemsPerPage", 100).
		Set("orderBy", "date")
}

// ListVideos defaults to page=1, itemsPerPage=100, orderBy=date; set params
// override those in place and the rest are appended.
func (l *Library) ListVideos(ctx context.Context, p ListVideosParams) (result.Result[*VideoList], error) {
	q := listDefaults().
		Set("page", p.Page).
		Set("itemsPerPage", p.ItemsPerPage).
		Set("search", p.Search).
		Set("collection", p.Collection).
		Set("orderBy", p.OrderBy)

	return call(ctx, l, "stream.ListVideos", http.MethodGet,
		transport.WithQuery(l.url("videos"), q), nil, listVideosTable, decodeVideoList)
}

type CreateVideoParams struct {
	Title         string `json:"title"`
	CollectionID  string `json:"collectionId,omitempty"`
	ThumbnailTime *int   `json:"thumbnailTime,omitempty"`
}

// CreateVideo creates the video object; upload the content with
// Video.Upload or FetchVideo afterwards.
func (l *Library) CreateVideo(ctx context.Context, p CreateVideoParams) (result.Result[*VideoData], error) {
	return call(ctx, l, "stream.CreateVideo", http.MethodPost, l.url("videos"), p, createVideoTable, decodeVideo)
}

type FetchVideoBody struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
}

type FetchVideoQuery struct {
	CollectionID  string
	LowPriority   bool
	ThumbnailTime int
}

// FetchVideo asks BunnyCDN to pull a video from a remote URL.
func (l *Library) FetchVideo(ctx context.Context, body FetchVideoBody, query FetchVideoQuery) (result.Result[*ActionResult], error) {
	if body.Headers == nil {
		body.Headers = map[string]string{}
	}
	q := transport.NewParams().
		Set("collectionId", query.CollectionID).
		Set("lowPriority", query.LowPriority).
		Set("thumbnailTime", query.ThumbnailTime)

	return call(ctx, l, "stream.FetchVideo", http.MethodPost,
		transport.WithQuery(l.url("videos", "fetch"), q), body, fetchVideoTable, jsonPtr[ActionResult])
}

func (l *Library) GetCollection(ctx context.Context, collectionID string) (result.Result[*Collection], error) {
	return call(ctx, l, "stream.GetCollection", http.MethodGet, l.url("collections", collectionID), nil, getCollectionTable,
		func(body []byte) (*Collection, error) {
			data, err := transport.JSON[CollectionData](body)
			if err != nil {
				return nil, err
			}
			return NewCollection(data, collectionID, l), nil
		})
}

type ListCollectionsParams struct {
	Page         int
	ItemsPerPage int
	Search       string
	OrderBy      string
}

// GetCollectionList uses the same defaults as ListVideos.
func (l *Library) GetCollectionList(ctx context.Context, p ListCollectionsParams) (result.Result[*CollectionList], error) {
	q := listDefaults().
		Set("page", p.Page).
		Set("itemsPerPage", p.ItemsPerPage).
		Set("search", p.Search).
		Set("orderBy", p.OrderBy)

	return call(ctx, l, "stream.GetCollectionList", http.MethodGet,
		transport.WithQuery(l.url("collections"), q), nil, listCollectionsTable,
		func(body []byte) (*CollectionList, error) {
			w, err := transport.JSON[struct {
				TotalItems   int              `json:"totalItems"`
				CurrentPage  int              `json:"currentPage"`
				ItemsPerPage int              `json:"itemsPerPage"`
				Items        []CollectionData `json:"items"`
			}](body)
			if err != nil {
				return nil, err
			}
			list := &CollectionList{
				TotalItems:   w.TotalItems,
				CurrentPage:  w.CurrentPage,
				ItemsPerPage: w.ItemsPerPage,
			}
			for _, item := range w.Items {
				list.Items = append(list.Items, NewCollection(item, item.GUID, l))
			}
			return list, nil
		})
}

// CreateCollection sends {name} only when name is non-empty.
func (l *Library) CreateCollection(ctx context.Context, name string) (result.Result[*Collection], error) {
	var body any
	if name != "" {
		body = map[string]string{"name": name}
	}
	return call(ctx, l, "stream.CreateCollection", http.MethodPost, l.url("collections"), body, createCollectionTable,
		func(b []byte) (*Collection, error) {
			data, err := transport.JSON[CollectionData](b)
			if err != nil {
				return nil, err
			}
			return NewCollection(data, data.GUID, l), nil
		})
}
