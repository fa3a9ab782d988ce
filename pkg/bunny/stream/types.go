package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/khoahotran/bunny-go/internal/transport"
)

type VideoStatus int

const (
	StatusCreated VideoStatus = iota
	StatusUploaded
	StatusProcessing
	StatusTranscoding
	StatusFinished
	StatusError
	StatusUploadFailed
)

func (s VideoStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusUploaded:
		return "uploaded"
	case StatusProcessing:
		return "processing"
	case StatusTranscoding:
		return "transcoding"
	case StatusFinished:
		return "finished"
	case StatusError:
		return "error"
	case StatusUploadFailed:
		return "upload_failed"
	}
	return fmt.Sprintf("VideoStatus(%d)", int(s))
}

// MessageLevel is the severity of a transcoding message.
type MessageLevel int

const (
	LevelUndefined MessageLevel = iota
	LevelInformation
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelUndefined:
		return "undefined"
	case LevelInformation:
		return "information"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("MessageLevel(%d)", int(l))
}

type Caption struct {
	SrcLang string `json:"srclang"`
	Label   string `json:"label"`
}

type Chapter struct {
	Title string `json:"title"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type Moment struct {
	Label     string `json:"label"`
	Timestamp int    `json:"timestamp"`
}

type MetaTag struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type TranscodingMessage struct {
	TimeStamp time.Time    `json:"timeStamp"`
	Level     MessageLevel `json:"level"`
	IssueCode int          `json:"issueCode"`
	Message   string       `json:"message"`
	Value     string       `json:"value"`
}

// VideoData is the last known state of a video.
type VideoData struct {
	VideoLibraryID       int64                `json:"videoLibraryId"`
	GUID                 string               `json:"guid"`
	Title                string               `json:"title"`
	DateUploaded         time.Time            `json:"dateUploaded"`
	Views                int64                `json:"views"`
	IsPublic             bool                 `json:"isPublic"`
	Length               int                  `json:"length"`
	Status               VideoStatus          `json:"status"`
	Framerate            float64              `json:"framerate"`
	Width                int                  `json:"width"`
	Height               int                  `json:"height"`
	AvailableResolutions string               `json:"availableResolutions"`
	ThumbnailCount       int                  `json:"thumbnailCount"`
	EncodeProgress       int                  `json:"encodeProgress"`
	StorageSize          int64                `json:"storageSize"`
	Captions             []Caption            `json:"captions"`
	HasMP4Fallback       bool                 `json:"hasMP4Fallback"`
	CollectionID         string               `json:"collectionId"`
	ThumbnailFileName    string               `json:"thumbnailFileName"`
	ThumbnailURL         string               `json:"thumbnailUrl,omitempty"`
	AverageWatchTime     int64                `json:"averageWatchTime"`
	TotalWatchTime       int64                `json:"totalWatchTime"`
	Category             string               `json:"category"`
	Chapters             []Chapter            `json:"chapters"`
	Moments              []Moment             `json:"moments"`
	MetaTags             []MetaTag            `json:"metaTags"`
	TranscodingMessages  []TranscodingMessage `json:"transcodingMessages"`
}

func (d VideoData) clone() VideoData {
	d.Captions = slices.Clone(d.Captions)
	d.Chapters = slices.Clone(d.Chapters)
	d.Moments = slices.Clone(d.Moments)
	d.MetaTags = slices.Clone(d.MetaTags)
	d.TranscodingMessages = slices.Clone(d.TranscodingMessages)
	return d
}

// wireVideo is VideoData as the API sends it: timestamps are strings. The
// outer fields shadow the embedded ones during decoding.
type wireVideo struct {
	VideoData
	DateUploaded        string                   `json:"dateUploaded"`
	TranscodingMessages []wireTranscodingMessage `json:"transcodingMessages"`
}

type wireTranscodingMessage struct {
	TranscodingMessage
	TimeStamp string `json:"timeStamp"`
}

func (w wireVideo) video() (VideoData, error) {
	v := w.VideoData

	uploaded, err := transport.ParseTime(w.DateUploaded)
	if err != nil {
		return VideoData{}, fmt.Errorf("video %s: dateUploaded: %w", w.GUID, err)
	}
	v.DateUploaded = uploaded

	v.TranscodingMessages = nil
	if w.TranscodingMessages != nil {
		v.TranscodingMessages = make([]TranscodingMessage, 0, len(w.TranscodingMessages))
		for i, m := range w.TranscodingMessages {
			msg := m.TranscodingMessage
			if msg.TimeStamp, err = transport.ParseTime(m.TimeStamp); err != nil {
				return VideoData{}, fmt.Errorf("video %s: transcodingMessages[%d]: %w", w.GUID, i, err)
			}
			v.TranscodingMessages = append(v.TranscodingMessages, msg)
		}
	}
	return v, nil
}

func decodeVideo(body []byte) (*VideoData, error) {
	w, err := transport.JSON[wireVideo](body)
	if err != nil {
		return nil, err
	}
	v, err := w.video()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// overlayVideo decodes body on top of base. Keys missing from body leave
// the corresponding fields of base untouched.
func overlayVideo(base VideoData, body []byte) (VideoData, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return base.clone(), nil
	}
	w := wireVideo{VideoData: base.clone()}
	if err := json.Unmarshal(body, &w); err != nil {
		return VideoData{}, err
	}
	v, err := w.video()
	if err != nil {
		return VideoData{}, err
	}
	if w.DateUploaded == "" {
		v.DateUploaded = base.DateUploaded
	}
	if w.TranscodingMessages == nil {
		v.TranscodingMessages = w.VideoData.TranscodingMessages
	}
	return v, nil
}

type VideoList struct {
	TotalItems   int         `json:"totalItems"`
	CurrentPage  int         `json:"currentPage"`
	ItemsPerPage int         `json:"itemsPerPage"`
	Items        []VideoData `json:"items"`
}

func decodeVideoList(body []byte) (*VideoList, error) {
	w, err := transport.JSON[struct {
		TotalItems   int         `json:"totalItems"`
		CurrentPage  int         `json:"currentPage"`
		ItemsPerPage int         `json:"itemsPerPage"`
		Items        []wireVideo `json:"items"`
	}](body)
	if err != nil {
		return nil, err
	}

	list := &VideoList{
		TotalItems:   w.TotalItems,
		CurrentPage:  w.CurrentPage,
		ItemsPerPage: w.ItemsPerPage,
		Items:        make([]VideoData, 0, len(w.Items)),
	}
	for _, item := range w.Items {
		v, err := item.video()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, v)
	}
	return list, nil
}

// Heatmap is the heatmap endpoint payload: per-second watch intensity plus
// any video fields the API includes alongside it.
type Heatmap struct {
	VideoData
	Points map[string]float64 `json:"heatmap"`
}

func decodeHeatmap(body []byte) (*Heatmap, error) {
	w, err := transport.JSON[struct {
		wireVideo
		Points map[string]float64 `json:"heatmap"`
	}](body)
	if err != nil {
		return nil, err
	}
	v, err := w.wireVideo.video()
	if err != nil {
		return nil, err
	}
	return &Heatmap{VideoData: v, Points: w.Points}, nil
}

type VideoStatistics struct {
	ViewsChart        map[string]int64 `json:"viewsChart"`
	WatchTimeChart    map[string]int64 `json:"watchTimeChart"`
	CountryViewCounts map[string]int64 `json:"countryViewCounts"`
	CountryWatchTime  map[string]int64 `json:"countryWatchTime"`
	EngagementScore   float64          `json:"engagementScore"`
}

// ActionResult is the acknowledgement body of most mutating calls.
type ActionResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"statusCode"`
}

type CollectionData struct {
	VideoLibraryID  int64  `json:"videoLibraryId"`
	GUID            string `json:"guid,omitempty"`
	Name            string `json:"name,omitempty"`
	VideoCount      int64  `json:"videoCount"`
	TotalSize       int64  `json:"totalSize"`
	PreviewVideoIDs string `json:"previewVideoIds,omitempty"`
}

type CollectionList struct {
	TotalItems   int           `json:"totalItems"`
	CurrentPage  int           `json:"currentPage"`
	ItemsPerPage int           `json:"itemsPerPage"`
	Items        []*Collection `json:"-"`
}

func jsonPtr[T any](body []byte) (*T, error) {
	v, err := transport.JSON[T](body)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
