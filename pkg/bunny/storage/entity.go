package storage

import (
	"fmt"
	"time"

	"github.com/khoahotran/bunny-go/internal/transport"
)

// Endpoint is the regional hostname a storage zone is served from.
type Endpoint string

const (
	Falkenstein Endpoint = "storage.bunnycdn.com"
	NewYork     Endpoint = "ny.storage.bunnycdn.com"
	LosAngeles  Endpoint = "la.storage.bunnycdn.com"
	Singapore   Endpoint = "sg.storage.bunnycdn.com"
	Sydney      Endpoint = "syd.storage.bunnycdn.com"
)

var endpoints = map[string]Endpoint{
	"falkenstein": Falkenstein,
	"de":          Falkenstein,
	"ny":          NewYork,
	"la":          LosAngeles,
	"sg":          Singapore,
	"singapore":   Singapore,
	"syd":         Sydney,
	"sydney":      Sydney,
}

// ParseEndpoint accepts either a region name ("ny", "sydney") or one of
// the endpoint hostnames.
func ParseEndpoint(s string) (Endpoint, error) {
	if e, ok := endpoints[s]; ok {
		return e, nil
	}
	switch e := Endpoint(s); e {
	case Falkenstein, NewYork, LosAngeles, Singapore, Sydney:
		return e, nil
	}
	return "", fmt.Errorf("unknown storage endpoint %q", s)
}

// Entity is one file or directory node in a storage zone.
type Entity struct {
	GUID            string
	StorageZoneName string
	StorageZoneID   int64
	Path            string
	ObjectName      string
	Length          int64
	IsDirectory     bool
	ServerID        int64
	UserID          string
	LastChanged     time.Time
	DateCreated     time.Time
}

type wireEntity struct {
	GUID            string `json:"Guid"`
	StorageZoneName string `json:"StorageZoneName"`
	Path            string `json:"Path"`
	ObjectName      string `json:"ObjectName"`
	Length          int64  `json:"Length"`
	LastChanged     string `json:"LastChanged"`
	IsDirectory     bool   `json:"IsDirectory"`
	ServerID        int64  `json:"ServerId"`
	UserID          string `json:"UserId"`
	DateCreated     string `json:"DateCreated"`
	StorageZoneID   int64  `json:"StorageZoneId"`
}

func (w wireEntity) entity() (Entity, error) {
	lastChanged, err := transport.ParseTime(w.LastChanged)
	if err != nil {
		return Entity{}, fmt.Errorf("entity %s: LastChanged: %w", w.ObjectName, err)
	}
	created, err := transport.ParseTime(w.DateCreated)
	if err != nil {
		return Entity{}, fmt.Errorf("entity %s: DateCreated: %w", w.ObjectName, err)
	}
	return Entity{
		GUID:            w.GUID,
		StorageZoneName: w.StorageZoneName,
		StorageZoneID:   w.StorageZoneID,
		Path:            w.Path,
		ObjectName:      w.ObjectName,
		Length:          w.Length,
		IsDirectory:     w.IsDirectory,
		ServerID:        w.ServerID,
		UserID:          w.UserID,
		LastChanged:     lastChanged,
		DateCreated:     created,
	}, nil
}

func decodeEntities(body []byte) ([]Entity, error) {
	wire, err := transport.JSON[[]wireEntity](body)
	if err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}
	out := make([]Entity, 0, len(wire))
	for _, w := range wire {
		e, err := w.entity()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
