package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/models"
)

// MintDownload issues a download entitlement for one order line. Minting is
// idempotent per (order, product): an existing row is returned untouched so a
// re-run of the fulfillment pipeline cannot multiply entitlements.
func (r *GormRepo) MintDownload(ctx context.Context, orderID, productID uuid.UUID, token string, maxDownloads int, expiresAt time.Time) (*models.DigitalDownload, error) {
	var dl models.DigitalDownload
	err := r.DB.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&dl).Error
	if err == nil {
		return &dl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dl = models.DigitalDownload{
		OrderID:       orderID,
		ProductID:     productID,
		DownloadToken: token,
		MaxDownloads:  maxDownloads,
		ExpiresAt:     expiresAt,
	}
	if err := r.DB.WithContext(ctx).Create(&dl).Error; err != nil {
		return nil, err
	}
	return &dl, nil
}

func (r *GormRepo) DownloadByToken(ctx context.Context, token string) (*models.DigitalDownload, error) {
	var dl models.DigitalDownload
	if err := r.DB.WithContext(ctx).
		Where("download_token = ?", token).
		First(&dl).Error; err != nil {
		return nil, err
	}
	return &dl, nil
}

func (r *GormRepo) DownloadsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DigitalDownload, error) {
	var dls []models.DigitalDownload
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&dls).Error; err != nil {
		return nil, err
	}
	return dls, nil
}

// ConsumeDownload spends one download attempt. The guarded update keeps
// download_count <= max_downloads even under concurrent redemptions.
func (r *GormRepo) ConsumeDownload(ctx context.Context, token string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.DigitalDownload{}).
		Where("download_token = ? AND download_count < max_downloads", token).
		Update("download_count", gorm.Expr("download_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
