package service

import (
	"context"

	"github.com/khoahotran/bunny-go/pkg/bunny/result"
	"github.com/khoahotran/bunny-go/pkg/bunny/stream"
)

// VideoFetcher queues a remote video for ingestion. *stream.Library
// implements it.
type VideoFetcher interface {
	FetchVideo(ctx context.Context, body stream.FetchVideoBody, query stream.FetchVideoQuery) (result.Result[*stream.ActionResult], error)
}
