package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

// Video is a handle on one video of a library. The library and id never
// change; the cached data is replaced or merged only after a successful
// mutating call, under the handle's lock. Deleting the remote video leaves
// the handle intact and further mutations will fail server-side.
type Video struct {
	library *Library
	videoID int64

	mu   sync.RWMutex
	data VideoData
}

// NewVideo is used by Library; callers get handles from GetVideo.
func NewVideo(library *Library, data VideoData, videoID int64) *Video {
	return &Video{library: library, data: data, videoID: videoID}
}

func (v *Video) ID() int64 { return v.videoID }

func (v *Video) Library() *Library { return v.library }

// Data returns a snapshot of the cached state.
func (v *Video) Data() VideoData {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.data.clone()
}

func (v *Video) url(segments ...string) string {
	return v.library.url(append([]string{"videos", strconv.FormatInt(v.videoID, 10)}, segments...)...)
}

// UpdateParams holds the only fields Update sends. Nil fields are left out
// of the request.
type UpdateParams struct {
	Title        *string
	CollectionID *string
	Chapters     []Chapter
	Moments      []Moment
	MetaTags     []MetaTag
}

var updatableFields = map[string]bool{
	"title":        true,
	"collectionId": true,
	"chapters":     true,
	"moments":      true,
	"metaTags":     true,
}

// UpdateParamsFromMap keeps the whitelisted keys of props (title,
// collectionId, chapters, moments, metaTags) and drops everything else.
func UpdateParamsFromMap(props map[string]any) (UpdateParams, error) {
	filtered := make(map[string]any, len(props))
	for k, val := range props {
		if updatableFields[k] {
			filtered[k] = val
		}
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return UpdateParams{}, apperror.NewInvalidInput("video update props", err)
	}
	var wire struct {
		Title        *string   `json:"title"`
		CollectionID *string   `json:"collectionId"`
		Chapters     []Chapter `json:"chapters"`
		Moments      []Moment  `json:"moments"`
		MetaTags     []MetaTag `json:"metaTags"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return UpdateParams{}, apperror.NewInvalidInput("video update props", err)
	}
	return UpdateParams(wire), nil
}

func (p UpdateParams) payload() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.CollectionID != nil {
		m["collectionId"] = *p.CollectionID
	}
	if p.Chapters != nil {
		m["chapters"] = p.Chapters
	}
	if p.Moments != nil {
		m["moments"] = p.Moments
	}
	if p.MetaTags != nil {
		m["metaTags"] = p.MetaTags
	}
	return m
}

func (p UpdateParams) mergeInto(d *VideoData) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.CollectionID != nil {
		d.CollectionID = *p.CollectionID
	}
	if p.Chapters != nil {
		d.Chapters = append([]Chapter(nil), p.Chapters...)
	}
	if p.Moments != nil {
		d.Moments = append([]Moment(nil), p.Moments...)
	}
	if p.MetaTags != nil {
		d.MetaTags = append([]MetaTag(nil), p.MetaTags...)
	}
}

// Update sends the set fields of p. On OK the same fields are merged into
// the cached data before returning.
func (v *Video) Update(ctx context.Context, p UpdateParams) (result.Result[*ActionResult], error) {
	res, err := call(ctx, v.library, "stream.Video.Update", http.MethodPost, v.url(), p.payload(), updateVideoTable, jsonPtr[ActionResult])
	if err != nil {
		return res, err
	}
	if res.Succeeded() {
		v.mu.Lock()
		p.mergeInto(&v.data)
		v.mu.Unlock()
	}
	return res, nil
}

// Delete removes the remote video. The handle's cached data is kept.
func (v *Video) Delete(ctx context.Context) (result.Result[*ActionResult], error) {
	return call(ctx, v.library, "stream.Video.Delete", http.MethodDelete, v.url(), nil, deleteVideoTable, jsonPtr[ActionResult])
}

// Upload triggers processing of the video's uploaded content, optionally
// restricted to a comma separated list of resolutions.
func (v *Video) Upload(ctx context.Context, enabledResolutions string) (result.Result[*ActionResult], error) {
	q := transport.NewParams().Set("enabledResolutions", enabledResolutions)
	return call(ctx, v.library, "stream.Video.Upload", http.MethodPut, transport.WithQuery(v.url(), q), nil, uploadVideoTable, jsonPtr[ActionResult])
}

func (v *Video) GetHeatmap(ctx context.Context) (result.Result[*Heatmap], error) {
	return call(ctx, v.library, "stream.Video.GetHeatmap", http.MethodGet, v.url("heatmap"), nil, heatmapTable, decodeHeatmap)
}

// Reencode restarts transcoding. On OK the fields present in the returned
// video are merged into the cached data; absent fields keep their value.
func (v *Video) Reencode(ctx context.Context) (result.Result[*VideoData], error) {
	var raw []byte
	decode := func(body []byte) (*VideoData, error) {
		raw = body
		return decodeVideo(body)
	}
	res, err := call(ctx, v.library, "stream.Video.Reencode", http.MethodPost, v.url("reencode"), nil, reencodeTable, decode)
	if err != nil {
		return res, err
	}
	if res.Succeeded() && raw != nil {
		v.mu.Lock()
		if merged, err := overlayVideo(v.data, raw); err == nil {
			v.data = merged
		}
		v.mu.Unlock()
	}
	return res, nil
}

type ThumbnailParams struct {
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// SetThumbnail sets the thumbnail from a URL. On OK the URL is recorded in
// the cached data.
func (v *Video) SetThumbnail(ctx context.Context, p ThumbnailParams) (result.Result[*ActionResult], error) {
	res, err := call(ctx, v.library, "stream.Video.SetThumbnail", http.MethodPost, v.url("thumbnail"), p, setThumbnailTable, jsonPtr[ActionResult])
	if err != nil {
		return res, err
	}
	if res.Succeeded() && p.ThumbnailURL != "" {
		v.mu.Lock()
		v.data.ThumbnailURL = p.ThumbnailURL
		v.mu.Unlock()
	}
	return res, nil
}

type CaptionParams struct {
	SrcLang string `json:"srclang,omitempty"`
	Label   string `json:"label,omitempty"`
	// CaptionsFile is the base64 encoded caption file.
	CaptionsFile string `json:"captionsFile,omitempty"`
}

func (v *Video) AddCaption(ctx context.Context, srclang string, p CaptionParams) (result.Result[*ActionResult], error) {
	if srclang == "" {
		return result.Result[*ActionResult]{}, apperror.NewInvalidInput("srclang is required", nil)
	}
	return call(ctx, v.library, "stream.Video.AddCaption", http.MethodPost, v.url("captions", srclang), p, addCaptionTable, jsonPtr[ActionResult])
}

func (v *Video) DeleteCaption(ctx context.Context, srclang string) (result.Result[*ActionResult], error) {
	if srclang == "" {
		return result.Result[*ActionResult]{}, apperror.NewInvalidInput("srclang is required", nil)
	}
	return call(ctx, v.library, "stream.Video.DeleteCaption", http.MethodDelete, v.url("captions", srclang), nil, deleteCaptionTable, jsonPtr[ActionResult])
}

func (v *Video) String() string {
	return fmt.Sprintf("Video(library=%d, id=%d)", v.library.id, v.videoID)
}
