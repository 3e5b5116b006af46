package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Profile{},
		&models.UserRole{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.TimelineEntry{},
		&models.DigitalDownload{},
		&models.PaymentSetting{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return repo.New(db)
}

func createProduct(t *testing.T, r *repo.GormRepo, name, productType, filePath string, price float64) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:        name,
		Price:       price,
		ProductType: productType,
		FilePath:    filePath,
	}
	if err := r.DB.Create(p).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return p
}
