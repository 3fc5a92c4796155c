package assets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadFolder is the fixed namespace every image is stored under.
// PublicIDFromURL assumes it when turning stored URLs back into ids.
const UploadFolder = "products"

// Store is the external image host. Upload returns the hosted URL for
// a blob; Delete removes a previously stored blob by public id.
type Store interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryStore implements Store against a Cloudinary account.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudURL string) (*CloudinaryStore, error) {
	if strings.TrimSpace(cloudURL) == "" {
		return nil, fmt.Errorf("cloudinary url is required")
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

// uploadPublicID derives a unique public id from an uploaded filename.
// Dots are replaced in the base because PublicIDFromURL truncates at
// the first dot; ids minted here must survive that round trip.
func uploadPublicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ReplaceAll(base, ".", "-")
	if base == "" {
		return uuid.NewString()
	}
	return base + "-" + uuid.NewString()
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   UploadFolder,
		PublicID: uploadPublicID(filename),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
