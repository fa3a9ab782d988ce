package stream

import (
	"context"
	"net/http"
	"sync"

	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

// Collection is a handle on one collection of a library. Same caching rules
// as Video.
type Collection struct {
	library      *Library
	collectionID string

	mu   sync.RWMutex
	data CollectionData
}

func NewCollection(data CollectionData, collectionID string, library *Library) *Collection {
	return &Collection{data: data, collectionID: collectionID, library: library}
}

func (c *Collection) ID() string { return c.collectionID }

func (c *Collection) Library() *Library { return c.library }

func (c *Collection) Data() CollectionData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *Collection) url() string {
	return c.library.url("collections", c.collectionID)
}

// Update renames the collection. {name} is only sent when name is set. On
// OK the cached name becomes name, whatever the response body says.
func (c *Collection) Update(ctx context.Context, name string) (result.Result[*ActionResult], error) {
	var body any
	if name != "" {
		body = map[string]string{"name": name}
	}
	res, err := call(ctx, c.library, "stream.Collection.Update", http.MethodPost, c.url(), body, updateCollectionTable, jsonPtr[ActionResult])
	if err != nil {
		return res, err
	}
	if res.Succeeded() {
		c.mu.Lock()
		c.data.Name = name
		c.mu.Unlock()
	}
	return res, nil
}

// Delete removes the remote collection; the handle is left as is.
func (c *Collection) Delete(ctx context.Context) (result.Result[*ActionResult], error) {
	return call(ctx, c.library, "stream.Collection.Delete", http.MethodDelete, c.url(), nil, deleteCollectionTable, jsonPtr[ActionResult])
}
