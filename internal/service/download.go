package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/internal/storage"
)

type DownloadService struct {
	Repo   *repo.GormRepo
	Signer *storage.Signer
	Now    func() time.Time
}

// Redeem resolves a download token to a freshly signed object URL. The
// download counter is spent before the URL is generated: a client that gets a
// redirect but never fetches the file still consumed one attempt.
func (s *DownloadService) Redeem(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: token required", ErrValidation)
	}

	dl, err := s.Repo.DownloadByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: download token", ErrNotFound)
	}
	if err != nil {
		return "", err
	}

	// An exhausted token stays exhausted even past its expiry date.
	if dl.DownloadCount >= dl.MaxDownloads {
		return "", fmt.Errorf("%w: download limit", ErrLimit)
	}
	if s.now().After(dl.ExpiresAt) {
		return "", fmt.Errorf("%w: download link", ErrExpired)
	}

	product, err := s.Repo.GetProduct(ctx, dl.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: file", ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if product.FilePath == "" {
		return "", fmt.Errorf("%w: file", ErrNotFound)
	}

	ok, err := s.Repo.ConsumeDownload(ctx, token)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: download limit", ErrLimit)
	}

	return s.Signer.SignedURL(product.FilePath)
}

func (s *DownloadService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
