package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

const imageTransformation = "c_limit,h_500,w_500/q_auto"

// MediaStore hosts uploaded images.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (models.Asset, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryMedia struct {
	cld *cloudinary.Cloudinary
}

// NewMediaStore returns a Cloudinary-backed store, or a disabled one when the
// cloud name is not configured.
func NewMediaStore(cfg *config.Config) (MediaStore, error) {
	if cfg.CloudinaryCloudName == "" {
		slog.Warn("CLOUDINARY_CLOUD_NAME not set, photo uploads disabled")
		return disabledMedia{}, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryMedia{cld: cld}, nil
}

func (m *CloudinaryMedia) Upload(ctx context.Context, file io.Reader, folder string) (models.Asset, error) {
	res, err := m.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		Transformation: imageTransformation,
	})
	if err != nil {
		return models.Asset{}, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return models.Asset{}, fmt.Errorf("cloudinary upload failed: %s", res.Error.Message)
	}
	return models.Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (m *CloudinaryMedia) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if _, err := m.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	return nil
}

type disabledMedia struct{}

func (disabledMedia) Upload(context.Context, io.Reader, string) (models.Asset, error) {
	return models.Asset{}, ErrChannelDisabled
}

func (disabledMedia) Delete(context.Context, string) error {
	return nil
}
