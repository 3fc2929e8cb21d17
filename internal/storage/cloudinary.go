// Package storage wraps the Cloudinary backend for product images.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Service holds the configured Cloudinary client.
type Service struct {
	cld *cloudinary.Cloudinary
}

// NewService builds a storage service from a CLOUDINARY_URL-style URL.
func NewService(cloudURL string) (*Service, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Service{cld: cld}, nil
}

// UploadImage stores an uploaded image under a fresh uuid public id and
// returns (secureURL, publicID).
func (s *Service) UploadImage(ctx context.Context, file multipart.File) (string, string, error) {
	publicID := uuid.New().String()
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "products",
	})
	if err != nil {
		return "", "", err
	}
	return result.SecureURL, result.PublicID, nil
}

// DeleteImage destroys a stored image. A "not found" result counts as
// success: the image being already absent is the outcome we wanted.
// Any other failure propagates to the caller.
func (s *Service) DeleteImage(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", result.Result)
	}
	return nil
}

// PublicIDFromURL recovers the public id from a Cloudinary delivery URL so
// product deletion can destroy images it only knows by URL. Returns ""
// when the URL is not a recognizable Cloudinary upload URL.
func PublicIDFromURL(rawURL string) string {
	const marker = "/upload/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len(marker):]

	// Skip the version segment (v1234567890/) when present.
	if strings.HasPrefix(rest, "v") {
		if slash := strings.Index(rest, "/"); slash > 0 {
			if isDigits(rest[1:slash]) {
				rest = rest[slash+1:]
			}
		}
	}

	// Strip the format extension.
	if dot := strings.LastIndex(rest, "."); dot > 0 {
		rest = rest[:dot]
	}
	return rest
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
