// Package uploader adapts the Cloudinary image host behind the
// domain.ImageUploader interface. A successful upload returns a stable
// HTTPS URL; a failed upload is fatal to the enclosing operation and is
// never retried here.
package uploader

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
	log    *logrus.Logger
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string, logger *logrus.Logger) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary client: %w", err)
	}
	return &CloudinaryUploader{
		client: client,
		folder: folder,
		log:    logger,
	}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, data []byte) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		u.log.Errorf("Cloudinary upload failed: %v", err)
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	if resp.SecureURL == "" {
		u.log.Errorf("Cloudinary upload returned no secure URL: %s", resp.Error.Message)
		return "", fmt.Errorf("image upload failed: %s", resp.Error.Message)
	}

	u.log.Infof("Image uploaded to %s", resp.SecureURL)
	return resp.SecureURL, nil
}
