package service

import (
	"context"

	"github.com/gestpornub/client-go/internal/backend"
	"github.com/gestpornub/client-go/internal/config"
	"github.com/gestpornub/client-go/internal/model"
)

// MediaService is the blob side of the facade: upload an asset, hand back the
// URL a screen can render.
type MediaService struct {
	backend *backend.Client
	cfg     *config.Config
}

func NewMediaService(client *backend.Client, cfg *config.Config) *MediaService {
	return &MediaService{
		backend: client,
		cfg:     cfg,
	}
}

// UploadFile stores the asset and resolves its access URL in one step. A nil
// asset is a deliberate no-op returning "", nil — callers pass through
// optional form fields without checking them first. Upload and URL-resolution
// failures both collapse to the same BackendError.
func (s *MediaService) UploadFile(ctx context.Context, asset *model.UploadAsset, kind string) (string, error) {
	if asset == nil {
		return "", nil
	}

	file, err := s.backend.Storage.CreateFile(ctx, s.cfg.StorageID, asset)
	if err != nil {
		return "", model.NewBackendError(model.MsgUploadFailed)
	}

	fileURL, err := s.FilePreview(file.ID, kind)
	if err != nil {
		return "", model.NewBackendError(model.MsgUploadFailed)
	}
	return fileURL, nil
}

// FilePreview derives the access URL for a stored file. Videos get the raw
// view URL; images get a bounded preview (2000x2000 max, top-anchored crop,
// quality 100). Any other kind is rejected here, before the platform is
// involved at all.
func (s *MediaService) FilePreview(fileID, kind string) (string, error) {
	var (
		fileURL string
		err     error
	)

	switch kind {
	case model.KindVideo:
		fileURL, err = s.backend.Storage.FileViewURL(s.cfg.StorageID, fileID)
	case model.KindImage:
		fileURL, err = s.backend.Storage.FilePreviewURL(s.cfg.StorageID, fileID, backend.PreviewOptions{
			Width:   model.PreviewMaxWidth,
			Height:  model.PreviewMaxHeight,
			Gravity: model.PreviewGravity,
			Quality: model.PreviewQuality,
		})
	default:
		return "", model.NewBackendError(model.MsgInvalidFileType)
	}

	if err != nil || fileURL == "" {
		return "", model.NewBackendError(model.MsgPreviewFetchFailed)
	}
	return fileURL, nil
}
