package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductTypeDigital  = "digital"
	ProductTypePhysical = "physical"
)

const (
	PaymentOnline         = "pay_online"
	PaymentBankTransfer   = "bank_transfer"
	PaymentCashOnDelivery = "cash_on_delivery"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	Name        string    `gorm:"not null"                    json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"                    json:"price"`
	Stock       uint      `json:"stock"`
	ProductType string    `gorm:"not null;default:physical"   json:"product_type"`
	FilePath    string    `json:"file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type UserRole struct {
	ID     uint      `gorm:"primaryKey"                          json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"            json:"user_id"`
	Role   string    `gorm:"not null"                            json:"role"`
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                             json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                       json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID"                             json:"product,omitempty"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"      json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;index;not null"  json:"user_id"`
	TotalAmount     float64     `gorm:"not null"                  json:"total_amount"`
	Status          string      `gorm:"not null"                  json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	CustomerName    string      `json:"customer_name"`
	ShippingAddress string      `json:"shipping_address"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"        json:"items,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID              uint      `gorm:"primaryKey"                json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null"  json:"order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"        json:"product_id"`
	Quantity        uint      `gorm:"default:1"                 json:"quantity"`
	PriceAtPurchase float64   `gorm:"not null"                  json:"price_at_purchase"`
	Product         *Product  `gorm:"foreignKey:ProductID"      json:"product,omitempty"`
}

type TimelineEntry struct {
	ID        uint      `gorm:"primaryKey"                json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"  json:"order_id"`
	Status    string    `gorm:"not null"                  json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (TimelineEntry) TableName() string {
	return "order_timeline"
}

type DigitalDownload struct {
	ID            uint      `gorm:"primaryKey"                                       json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_order_product;not null" json:"order_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_order_product;not null" json:"product_id"`
	DownloadToken string    `gorm:"uniqueIndex;not null"                             json:"download_token"`
	MaxDownloads  int       `gorm:"default:10"                                       json:"max_downloads"`
	DownloadCount int       `gorm:"default:0"                                        json:"download_count"`
	ExpiresAt     time.Time `gorm:"not null"                                         json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (DigitalDownload) TableName() string {
	return "digital_downloads"
}

type PaymentSetting struct {
	ID    uint   `gorm:"primaryKey"           json:"id"`
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `json:"value"`
}

type Notification struct {
	ID        uint      `gorm:"primaryKey"                json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"  json:"user_id"`
	Type      string    `gorm:"not null"                  json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Read      bool      `gorm:"default:false"             json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
