package jobs

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/bunny-go/adapters/event"
	"github.com/khoahotran/bunny-go/internal/application/service"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/stream"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

type ProcessJobUseCase struct {
	uploader service.Uploader
	fetcher  service.VideoFetcher
	logger   logger.Logger
}

func NewProcessJobUseCase(u service.Uploader, f service.VideoFetcher, log logger.Logger) *ProcessJobUseCase {
	return &ProcessJobUseCase{uploader: u, fetcher: f, logger: log}
}

// Execute runs one job. A returned error means the job may be retried;
// jobs that can never succeed are logged and dropped.
func (uc *ProcessJobUseCase) Execute(ctx context.Context, payload event.JobPayload) error {
	l := uc.logger.With(zap.String("job_id", payload.JobID), zap.String("type", string(payload.Type)))
	l.Info("Worker UseCase processing job")

	switch payload.Type {
	case event.JobStorageUpload:
		return uc.upload(ctx, l, payload)
	case event.JobStreamFetch:
		return uc.fetch(ctx, l, payload)
	}

	l.Warn("Unknown job type, skipping")
	return nil
}

func (uc *ProcessJobUseCase) upload(ctx context.Context, l logger.Logger, p event.JobPayload) error {
	if uc.uploader == nil {
		return apperror.NewInvalidInput("no storage zone configured for upload jobs", nil)
	}
	if p.Name == "" {
		l.Warn("Upload job without a file name, skipping")
		return nil
	}

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(p.Content), p.Folder, p.Name)
	if err != nil {
		if apperror.Code(err) == 400 {
			l.Warn("Storage rejected upload, skipping", zap.Error(err))
			return nil
		}
		return fmt.Errorf("upload %s/%s: %w", p.Folder, p.Name, err)
	}

	l.Info("Successfully uploaded file", zap.String("url", url))
	return nil
}

func (uc *ProcessJobUseCase) fetch(ctx context.Context, l logger.Logger, p event.JobPayload) error {
	if uc.fetcher == nil {
		return apperror.NewInvalidInput("no video library configured for fetch jobs", nil)
	}
	if p.URL == "" {
		l.Warn("Fetch job without a URL, skipping")
		return nil
	}

	res, err := uc.fetcher.FetchVideo(ctx,
		stream.FetchVideoBody{URL: p.URL, Headers: p.Headers},
		stream.FetchVideoQuery{CollectionID: p.CollectionID, LowPriority: p.LowPriority},
	)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", p.URL, err)
	}

	switch {
	case res.Succeeded():
		l.Info("Video fetch queued", zap.String("url", p.URL))
		return nil
	case res.Code == 400 || res.Code == 404:
		l.Warn("Video fetch rejected, skipping", zap.Int("code", res.Code), zap.String("message", res.Message))
		return nil
	}
	return apperror.NewStatus(res.Code, fmt.Sprintf("fetch %s: %s %s", p.URL, res.Status, res.Message))
}
