package account

import (
	"fmt"
	"slices"
	"time"

	"github.com/khoahotran/bunny-go/internal/transport"
)

type Country struct {
	Name    string   `json:"Name"`
	IsoCode string   `json:"IsoCode"`
	IsEU    bool     `json:"IsEU"`
	TaxRate float64  `json:"TaxRate"`
	FlagURL string   `json:"FlagUrl"`
	PopList []string `json:"PopList"`
}

type Region struct {
	ID                  int64   `json:"Id"`
	Name                string  `json:"Name"`
	PricePerGigabyte    float64 `json:"PricePerGigabyte"`
	RegionCode          string  `json:"RegionCode"`
	ContinentCode       string  `json:"ContinentCode"`
	CountryCode         string  `json:"CountryCode"`
	Latitude            float64 `json:"Latitude"`
	Longitude           float64 `json:"Longitude"`
	AllowLatencyRouting bool    `json:"AllowLatencyRouting"`
}

type Language struct {
	ShortCode                string `json:"ShortCode"`
	Name                     string `json:"Name"`
	SupportPlayerTranslation bool   `json:"SupportPlayerTranslation"`
	SupportTranscribing      bool   `json:"SupportTranscribing"`
	TranscribingAccuracy     int    `json:"TranscribingAccuracy"`
}

// VideoLibraryData is the account-level configuration of a Stream library.
type VideoLibraryData struct {
	ID                 int64     `json:"Id"`
	Name               string    `json:"Name"`
	VideoCount         int64     `json:"VideoCount"`
	TrafficUsage       int64     `json:"TrafficUsage"`
	StorageUsage       int64     `json:"StorageUsage"`
	DateCreated        time.Time `json:"DateCreated"`
	ReplicationRegions []string  `json:"ReplicationRegions"`
	APIKey             string    `json:"ApiKey"`
	ReadOnlyAPIKey     string    `json:"ReadOnlyApiKey"`
	PullZoneID         int64     `json:"PullZoneId"`
	StorageZoneID      int64     `json:"StorageZoneId"`

	HasWatermark          bool `json:"HasWatermark"`
	WatermarkPositionLeft int  `json:"WatermarkPositionLeft"`
	WatermarkPositionTop  int  `json:"WatermarkPositionTop"`
	WatermarkWidth        int  `json:"WatermarkWidth"`
	WatermarkHeight       int  `json:"WatermarkHeight"`

	EnabledResolutions               string   `json:"EnabledResolutions"`
	WebhookURL                       string   `json:"WebhookUrl"`
	UILanguage                       string   `json:"UILanguage"`
	PlayerKeyColor                   string   `json:"PlayerKeyColor"`
	FontFamily                       string   `json:"FontFamily"`
	AllowEarlyPlay                   bool     `json:"AllowEarlyPlay"`
	PlayerTokenAuthenticationEnabled bool     `json:"PlayerTokenAuthenticationEnabled"`
	EnableMP4Fallback                bool     `json:"EnableMP4Fallback"`
	KeepOriginalFiles                bool     `json:"KeepOriginalFiles"`
	AllowDirectPlay                  bool     `json:"AllowDirectPlay"`
	BlockNoneReferrer                bool     `json:"BlockNoneReferrer"`
	AllowedReferrers                 []string `json:"AllowedReferrers"`
	BlockedReferrers                 []string `json:"BlockedReferrers"`
}

func (d VideoLibraryData) clone() VideoLibraryData {
	d.ReplicationRegions = slices.Clone(d.ReplicationRegions)
	d.AllowedReferrers = slices.Clone(d.AllowedReferrers)
	d.BlockedReferrers = slices.Clone(d.BlockedReferrers)
	return d
}

type wireVideoLibrary struct {
	VideoLibraryData
	DateCreated string `json:"DateCreated"`
}

func (w wireVideoLibrary) library() (VideoLibraryData, error) {
	d := w.VideoLibraryData
	created, err := transport.ParseTime(w.DateCreated)
	if err != nil {
		return VideoLibraryData{}, fmt.Errorf("video library %d: DateCreated: %w", w.ID, err)
	}
	d.DateCreated = created
	return d, nil
}

func decodeVideoLibrary(body []byte) (VideoLibraryData, error) {
	w, err := transport.JSON[wireVideoLibrary](body)
	if err != nil {
		return VideoLibraryData{}, err
	}
	return w.library()
}

// EditableVideoLibrary holds the settings Update may change. Nil fields are
// not sent.
type EditableVideoLibrary struct {
	Name                             *string `json:"Name,omitempty"`
	EnabledResolutions               *string `json:"EnabledResolutions,omitempty"`
	WebhookURL                       *string `json:"WebhookUrl,omitempty"`
	UILanguage                       *string `json:"UILanguage,omitempty"`
	PlayerKeyColor                   *string `json:"PlayerKeyColor,omitempty"`
	FontFamily                       *string `json:"FontFamily,omitempty"`
	WatermarkPositionLeft            *int    `json:"WatermarkPositionLeft,omitempty"`
	WatermarkPositionTop             *int    `json:"WatermarkPositionTop,omitempty"`
	WatermarkWidth                   *int    `json:"WatermarkWidth,omitempty"`
	WatermarkHeight                  *int    `json:"WatermarkHeight,omitempty"`
	AllowEarlyPlay                   *bool   `json:"AllowEarlyPlay,omitempty"`
	PlayerTokenAuthenticationEnabled *bool   `json:"PlayerTokenAuthenticationEnabled,omitempty"`
	EnableMP4Fallback                *bool   `json:"EnableMP4Fallback,omitempty"`
	KeepOriginalFiles                *bool   `json:"KeepOriginalFiles,omitempty"`
	AllowDirectPlay                  *bool   `json:"AllowDirectPlay,omitempty"`
	BlockNoneReferrer                *bool   `json:"BlockNoneReferrer,omitempty"`
}

type VideoLibraryList struct {
	CurrentPage  int             `json:"CurrentPage"`
	TotalItems   int             `json:"TotalItems"`
	HasMoreItems bool            `json:"HasMoreItems"`
	Items        []*VideoLibrary `json:"-"`
}
