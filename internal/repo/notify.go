package repo

import (
	"context"

	"github.com/atelierlane/storefront/internal/models"
)

func (r *GormRepo) InsertNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *GormRepo) PaymentSettings(ctx context.Context) (map[string]string, error) {
	var rows []models.PaymentSetting
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}
