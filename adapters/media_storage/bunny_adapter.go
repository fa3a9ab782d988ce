package media_storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/bunny-go/internal/application/service"
	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
	"github.com/khoahotran/bunny-go/pkg/bunny/storage"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

type bunnyStorageAdapter struct {
	zone         *storage.Client
	pullZoneHost string
	logger       logger.Logger
}

// NewBunnyStorageAdapter serves public URLs from pullZoneHost when set and
// from the storage endpoint otherwise.
func NewBunnyStorageAdapter(zone *storage.Client, pullZoneHost string, log logger.Logger) (service.Uploader, error) {
	if zone == nil {
		return nil, fmt.Errorf("bunny storage zone has not config")
	}
	log.Info("Bunny storage uploader ready", zap.String("zone", zone.StorageZoneName()))
	return &bunnyStorageAdapter{zone: zone, pullZoneHost: pullZoneHost, logger: log}, nil
}

func (a *bunnyStorageAdapter) Upload(ctx context.Context, file io.Reader, folder string, name string) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", apperror.NewInvalidInput("failed to read upload", err)
	}

	path := joinPath(folder, name)
	res, err := a.zone.UploadFile(ctx, path, content)
	if err != nil {
		return "", err
	}
	if res.Status != result.Created {
		return "", apperror.NewStatus(res.Code, fmt.Sprintf("upload %s: %s %s", path, res.Status, res.Message))
	}

	a.logger.Debug("Uploaded to bunny storage", zap.String("path", path), zap.Int("bytes", len(content)))
	return a.publicURL(path), nil
}

func (a *bunnyStorageAdapter) Delete(ctx context.Context, path string) error {
	res, err := a.zone.DeleteFile(ctx, path)
	if err != nil {
		return err
	}
	if res.Status != result.OK {
		return apperror.NewStatus(res.Code, fmt.Sprintf("delete %s: %s %s", path, res.Status, res.Message))
	}
	return nil
}

func (a *bunnyStorageAdapter) publicURL(path string) string {
	if a.pullZoneHost != "" {
		return "https://" + a.pullZoneHost + "/" + transport.EscapePath(path)
	}
	return "https://" + string(a.zone.Endpoint()) + "/" + transport.EscapePath(a.zone.StorageZoneName()) + "/" + transport.EscapePath(path)
}

func joinPath(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
