package account

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"sync"

	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

// VideoLibrary is a handle on one library's account-level settings. Its
// cached data changes only after a successful call, under the handle's
// lock.
type VideoLibrary struct {
	client *Client
	id     int64

	mu   sync.RWMutex
	data VideoLibraryData
}

func newVideoLibrary(c *Client, data VideoLibraryData) *VideoLibrary {
	return &VideoLibrary{client: c, id: data.ID, data: data}
}

func (l *VideoLibrary) ID() int64 { return l.id }

// Data returns a snapshot of the cached settings.
func (l *VideoLibrary) Data() VideoLibraryData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data.clone()
}

func (l *VideoLibrary) update(fn func(d *VideoLibraryData)) {
	l.mu.Lock()
	fn(&l.data)
	l.mu.Unlock()
}

// Update sends the set fields of e. On OK the returned settings replace the
// cached data.
func (l *VideoLibrary) Update(ctx context.Context, e EditableVideoLibrary) (result.Result[*VideoLibraryData], error) {
	res, err := send(ctx, l.client, request{
		op:     "account.VideoLibrary.Update",
		method: http.MethodPost,
		url:    libraryURL(l.id),
		body:   e,
	}, updateLibraryTable, func(body []byte) (*VideoLibraryData, error) {
		d, err := decodeVideoLibrary(body)
		if err != nil {
			return nil, err
		}
		return &d, nil
	})
	if err != nil {
		return res, err
	}
	if res.Succeeded() && res.Data != nil && res.Data.ID != 0 {
		fresh := res.Data.clone()
		l.update(func(d *VideoLibraryData) { *d = fresh })
	}
	return res, nil
}

func (l *VideoLibrary) Delete(ctx context.Context) (result.Result[struct{}], error) {
	return send[struct{}](ctx, l.client, request{
		op:     "account.VideoLibrary.Delete",
		method: http.MethodDelete,
		url:    libraryURL(l.id),
	}, deleteLibraryTable, nil)
}

// ResetAPIKey rotates the library's API key. Fetch the library again to
// read the new key.
func (l *VideoLibrary) ResetAPIKey(ctx context.Context) (result.Result[struct{}], error) {
	return send[struct{}](ctx, l.client, request{
		op:     "account.VideoLibrary.ResetAPIKey",
		method: http.MethodGet,
		url:    libraryURL(l.id, "resetApiKey"),
	}, resetAPIKeyTable, nil)
}

// AddWatermark uploads image as the library watermark in a multipart form
// field named "image".
func (l *VideoLibrary) AddWatermark(ctx context.Context, image io.Reader) (result.Result[struct{}], error) {
	const op = "account.VideoLibrary.AddWatermark"

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", "watermark")
	if err != nil {
		return result.Result[struct{}]{}, apperror.NewEncode(op, err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return result.Result[struct{}]{}, apperror.NewEncode(op, err)
	}
	if err := form.Close(); err != nil {
		return result.Result[struct{}]{}, apperror.NewEncode(op, err)
	}

	res, err := send[struct{}](ctx, l.client, request{
		op:          op,
		method:      http.MethodPut,
		url:         libraryURL(l.id, "watermark"),
		raw:         buf.Bytes(),
		contentType: form.FormDataContentType(),
	}, addWatermarkTable, nil)
	if err != nil {
		return res, err
	}
	if res.Succeeded() {
		l.update(func(d *VideoLibraryData) { d.HasWatermark = true })
	}
	return res, nil
}

func (l *VideoLibrary) DeleteWatermark(ctx context.Context) (result.Result[struct{}], error) {
	res, err := send[struct{}](ctx, l.client, request{
		op:     "account.VideoLibrary.DeleteWatermark",
		method: http.MethodDelete,
		url:    libraryURL(l.id, "watermark"),
	}, deleteWatermarkTable, nil)
	if err != nil {
		return res, err
	}
	if res.Succeeded() {
		l.update(func(d *VideoLibraryData) { d.HasWatermark = false })
	}
	return res, nil
}

func (l *VideoLibrary) AddAllowedReferrer(ctx context.Context, hostname string) (result.Result[struct{}], error) {
	return l.referrer(ctx, "addAllowedReferrer", hostname, func(d *VideoLibraryData) {
		d.AllowedReferrers = addHost(d.AllowedReferrers, hostname)
	})
}

func (l *VideoLibrary) RemoveAllowedReferrer(ctx context.Context, hostname string) (result.Result[struct{}], error) {
	return l.referrer(ctx, "removeAllowedReferrer", hostname, func(d *VideoLibraryData) {
		d.AllowedReferrers = removeHost(d.AllowedReferrers, hostname)
	})
}

func (l *VideoLibrary) AddBlockedReferrer(ctx context.Context, hostname string) (result.Result[struct{}], error) {
	return l.referrer(ctx, "addBlockedReferrer", hostname, func(d *VideoLibraryData) {
		d.BlockedReferrers = addHost(d.BlockedReferrers, hostname)
	})
}

func (l *VideoLibrary) RemoveBlockedReferrer(ctx context.Context, hostname string) (result.Result[struct{}], error) {
	return l.referrer(ctx, "removeBlockedReferrer", hostname, func(d *VideoLibraryData) {
		d.BlockedReferrers = removeHost(d.BlockedReferrers, hostname)
	})
}

func (l *VideoLibrary) referrer(ctx context.Context, action, hostname string, apply func(d *VideoLibraryData)) (result.Result[struct{}], error) {
	if hostname == "" {
		return result.Result[struct{}]{}, apperror.NewInvalidInput("hostname is required", nil)
	}
	res, err := send[struct{}](ctx, l.client, request{
		op:     "account.VideoLibrary." + action,
		method: http.MethodPost,
		url:    libraryURL(l.id, action),
		body:   map[string]string{"Hostname": hostname},
	}, referrerTable, nil)
	if err != nil {
		return res, err
	}
	if res.Succeeded() {
		l.update(apply)
	}
	return res, nil
}

func addHost(hosts []string, h string) []string {
	if slices.Contains(hosts, h) {
		return hosts
	}
	return append(slices.Clone(hosts), h)
}

func removeHost(hosts []string, h string) []string {
	return slices.DeleteFunc(slices.Clone(hosts), func(s string) bool { return s == h })
}
