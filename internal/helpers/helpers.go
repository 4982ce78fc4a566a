package helpers

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joshua-takyi/findmymess/internal/models"
)

const LogoFolder = "findmymess_logos"

// AllowedLogoFormats are the image extensions the upload gate accepts.
var AllowedLogoFormats = []string{"jpg", "jpeg", "png"}

func StringTrim(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'")
}

// IsAllowedLogo reports whether filename carries an accepted image extension.
func IsAllowedLogo(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range AllowedLogoFormats {
		if ext == f {
			return true
		}
	}
	return false
}

// BlobStore keeps uploaded files and hands back a reference to them.
type BlobStore interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*models.Logo, error)
}

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryStore {
	if folder == "" {
		folder = LogoFolder
	}
	return &CloudinaryStore{cld: cld, folder: folder}
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename string) (*models.Logo, error) {
	if s.cld == nil {
		return nil, fmt.Errorf("cloudinary client is not initialized")
	}
	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: s.folder,
		Tags:   []string{"findmymess"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image %s: %w", filename, err)
	}
	if uploadResult.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image %s: %s", filename, uploadResult.Error.Message)
	}
	return &models.Logo{
		URL:      uploadResult.SecureURL,
		PublicID: uploadResult.PublicID,
	}, nil
}
