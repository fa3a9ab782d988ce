package transport

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Params is an insertion-ordered query string. Set drops falsy values (nil,
// "", 0, false) so that the server applies its own defaults; BunnyCDN treats
// a sent "false" or "0" differently from an absent key.
type Params struct {
	keys   []string
	values map[string]string
}

func NewParams() *Params {
	return &Params{values: map[string]string{}}
}

// Set stores v under key unless v is falsy. Setting an existing key keeps
// its original position.
func (p *Params) Set(key string, v any) *Params {
	s, ok := truthy(v)
	if !ok {
		return p
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = s
	return p
}

func (p *Params) Len() int { return len(p.keys) }

func (p *Params) Get(key string) string { return p.values[key] }

// Encode renders key=value pairs in insertion order.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

func truthy(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.IsZero() {
		return "", false
	}
	return fmt.Sprint(rv.Interface()), true
}

// EscapePath percent-encodes each segment of a slash separated path.
func EscapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// WithQuery appends an encoded query to base when there is one.
func WithQuery(base string, p *Params) string {
	if p == nil || p.Len() == 0 {
		return base
	}
	return base + "?" + p.Encode()
}
