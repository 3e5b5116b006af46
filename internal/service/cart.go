package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart returns the account cart with derived item count and total. Totals
// come from the joined product price, never from anything stored on the line.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartResponse, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &transport.CartResponse{Items: items}
	for _, item := range items {
		resp.ItemCount += item.Quantity
		if item.Product != nil {
			resp.TotalAmount += float64(item.Quantity) * item.Product.Price
		}
	}
	return resp, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets the line quantity; a quantity of zero or less removes
// the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if productID == uuid.Nil {
		return fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	err := s.Repo.SetQuantity(ctx, userID, productID, uint(quantity))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: cart item", ErrNotFound)
	}
	return err
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return fmt.Errorf("%w: product_id required", ErrValidation)
	}
	return s.Repo.RemoveFromCart(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, userID)
}

// Merge folds device-local guest cart lines into the account cart and returns
// the merged state. The client clears its local copy only after this call
// succeeds, which is what makes the merge effectively run once per login.
func (s *CartService) Merge(ctx context.Context, userID uuid.UUID, lines []transport.GuestCartLine) (*transport.CartResponse, error) {
	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if line.Quantity == 0 {
			continue
		}
		items = append(items, models.CartItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	if len(items) > 0 {
		if err := s.Repo.MergeGuestItems(ctx, userID, items); err != nil {
			return nil, err
		}
	}
	return s.GetCart(ctx, userID)
}
