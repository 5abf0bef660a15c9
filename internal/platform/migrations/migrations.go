package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              string         `gorm:"primaryKey;column:id;size:64"`
	UserID          int64          `gorm:"column:user_id;index"`
	Items           string         `gorm:"column:items;type:jsonb"`
	ProductIDs      pq.StringArray `gorm:"column:product_ids;type:text[]"`
	ShippingAddress string         `gorm:"column:shipping_address;type:jsonb"`
	PaymentMethod   string         `gorm:"column:payment_method"`
	ItemsPrice      float64        `gorm:"column:items_price"`
	TaxPrice        float64        `gorm:"column:tax_price"`
	ShippingPrice   float64        `gorm:"column:shipping_price"`
	TotalPrice      float64        `gorm:"column:total_price"`
	IsPaid          bool           `gorm:"column:is_paid;index"`
	PaidAt          *time.Time     `gorm:"column:paid_at"`
	PaymentResult   *string        `gorm:"column:payment_result;type:jsonb"`
	IsDelivered     bool           `gorm:"column:is_delivered;index"`
	DeliveredAt     *time.Time     `gorm:"column:delivered_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;index"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsAdmin      bool      `gorm:"column:is_admin"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    int64      `gorm:"column:user_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
