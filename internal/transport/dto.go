package transport

import (
	"github.com/google/uuid"

	"github.com/atelierlane/storefront/internal/models"
)

type GuestCartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type MergeCartRequest struct {
	Items []GuestCartLine `json:"items"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type UpdateQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type RemoveFromCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type CartResponse struct {
	Items       []models.CartItem `json:"items"`
	ItemCount   uint              `json:"item_count"`
	TotalAmount float64           `json:"total_amount"`
}

type CheckoutItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type GuestCheckoutRequest struct {
	CustomerName          string         `json:"customer_name"`
	CustomerEmail         string         `json:"customer_email"`
	CustomerPhone         string         `json:"customer_phone"`
	ShippingAddress       string         `json:"shipping_address"`
	SpecialInstructions   string         `json:"special_instructions,omitempty"`
	PreferredDeliveryDate string         `json:"preferred_delivery_date,omitempty"`
	PaymentMethod         string         `json:"payment_method,omitempty"`
	FreeOrder             bool           `json:"free_order,omitempty"`
	TotalAmount           float64        `json:"total_amount"`
	Items                 []CheckoutItem `json:"items"`
}

type GuestCheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

type TrackOrderRequest struct {
	OrderReference string `json:"order_reference"`
	Email          string `json:"email"`
}

type TrackOrderResponse struct {
	Success  bool                   `json:"success"`
	Order    *models.Order          `json:"order"`
	Timeline []models.TimelineEntry `json:"timeline"`
}

type ProcessDigitalRequest struct {
	OrderID          string `json:"order_id"`
	PaymentConfirmed bool   `json:"payment_confirmed,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SubscriptionEventRequest struct {
	UserID string `json:"user_id"`
	Event  string `json:"event"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
