package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ParseTime reads the ISO-8601 timestamps BunnyCDN emits. Values without a
// zone designator ("2023-03-09T15:32:31.983") are taken as UTC. An empty
// string is the zero time; anything else unparsable is an error.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
