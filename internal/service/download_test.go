package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/internal/storage"
)

var downloadTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newDownloadService(r *repo.GormRepo) *DownloadService {
	return &DownloadService{
		Repo:   r,
		Signer: storage.NewSigner("https://files.example.com", "digital-products", []byte("test-secret")),
		Now:    func() time.Time { return downloadTestNow },
	}
}

func seedDownload(t *testing.T, r *repo.GormRepo, productID uuid.UUID, count, max int, expiresAt time.Time) string {
	t.Helper()

	token := uuid.NewString()
	dl := models.DigitalDownload{
		OrderID:       uuid.New(),
		ProductID:     productID,
		DownloadToken: token,
		DownloadCount: count,
		MaxDownloads:  max,
		ExpiresAt:     expiresAt,
	}
	require.NoError(t, r.DB.Create(&dl).Error)
	return token
}

func TestDownloadService_Redeem_SignsURLAndConsumesAttempt(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newDownloadService(r)
	ctx := context.Background()

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	token := seedDownload(t, r, product.ID, 0, 10, downloadTestNow.Add(24*time.Hour))

	url, err := svc.Redeem(ctx, token)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://files.example.com/object/sign/digital-products/kits/brand.zip?token="), url)

	dl, err := r.DownloadByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 1, dl.DownloadCount)
}

func TestDownloadService_Redeem_MissingToken(t *testing.T) {
	t.Parallel()

	svc := newDownloadService(newTestRepo(t))

	_, err := svc.Redeem(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDownloadService_Redeem_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := newDownloadService(newTestRepo(t))

	_, err := svc.Redeem(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadService_Redeem_LimitWinsOverExpiry(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newDownloadService(r)

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	token := seedDownload(t, r, product.ID, 10, 10, downloadTestNow.Add(-time.Hour))

	_, err := svc.Redeem(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimit)
}

func TestDownloadService_Redeem_ExpiredWithAttemptsLeft(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newDownloadService(r)
	ctx := context.Background()

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	token := seedDownload(t, r, product.ID, 0, 10, downloadTestNow.Add(-time.Minute))

	_, err := svc.Redeem(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)

	dl, err := r.DownloadByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 0, dl.DownloadCount)
}

func TestDownloadService_Redeem_MissingFilePath(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newDownloadService(r)

	product := createProduct(t, r, "consultation", models.ProductTypeDigital, "", 60)
	token := seedDownload(t, r, product.ID, 0, 10, downloadTestNow.Add(time.Hour))

	_, err := svc.Redeem(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadService_Redeem_ExhaustsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newDownloadService(r)
	ctx := context.Background()

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	token := seedDownload(t, r, product.ID, 0, 2, downloadTestNow.Add(time.Hour))

	for i := 0; i < 2; i++ {
		_, err := svc.Redeem(ctx, token)
		require.NoError(t, err)
	}

	_, err := svc.Redeem(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimit)
}
