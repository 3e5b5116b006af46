package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/storage"
)

func newDownloadHandler(r *repo.GormRepo) *DownloadHTTP {
	return &DownloadHTTP{Svc: &service.DownloadService{
		Repo:   r,
		Signer: storage.NewSigner("https://files.example.com", "digital-products", []byte("test-secret")),
	}}
}

func seedDownload(t *testing.T, r *repo.GormRepo, count, max int, expiresAt time.Time) string {
	t.Helper()

	product := &models.Product{
		Name:        "brand kit",
		Price:       60,
		ProductType: models.ProductTypeDigital,
		FilePath:    "kits/brand.zip",
	}
	require.NoError(t, r.DB.Create(product).Error)

	token := uuid.NewString()
	require.NoError(t, r.DB.Create(&models.DigitalDownload{
		OrderID:       uuid.New(),
		ProductID:     product.ID,
		DownloadToken: token,
		DownloadCount: count,
		MaxDownloads:  max,
		ExpiresAt:     expiresAt,
	}).Error)
	return token
}

func TestDownloadHTTP_Redeem_MissingToken(t *testing.T) {
	t.Parallel()

	h := newDownloadHandler(newTestRepo(t))
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodGet, "/download", nil)
	require.NoError(t, h.Redeem(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing token")
}

func TestDownloadHTTP_Redeem_RedirectsToSignedURL(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	h := newDownloadHandler(r)
	e := echo.New()

	token := seedDownload(t, r, 0, 10, time.Now().Add(24*time.Hour))

	rec, c := doJSONRequest(t, e, http.MethodGet, "/download?token="+token, nil)
	require.NoError(t, h.Redeem(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "/object/sign/digital-products/kits/brand.zip?token=")
}

func TestDownloadHTTP_Redeem_ExhaustedToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	h := newDownloadHandler(r)
	e := echo.New()

	token := seedDownload(t, r, 10, 10, time.Now().Add(24*time.Hour))

	rec, c := doJSONRequest(t, e, http.MethodGet, "/download?token="+token, nil)
	require.NoError(t, h.Redeem(c))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Download limit reached")
}

func TestDownloadHTTP_Redeem_ExpiredToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	h := newDownloadHandler(r)
	e := echo.New()

	token := seedDownload(t, r, 0, 10, time.Now().Add(-time.Hour))

	rec, c := doJSONRequest(t, e, http.MethodGet, "/download?token="+token, nil)
	require.NoError(t, h.Redeem(c))

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Contains(t, rec.Body.String(), "Link expired")
}

func TestDownloadHTTP_Redeem_UnknownToken(t *testing.T) {
	t.Parallel()

	h := newDownloadHandler(newTestRepo(t))
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodGet, "/download?token="+uuid.NewString(), nil)
	require.NoError(t, h.Redeem(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
