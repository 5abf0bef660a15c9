package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table. Embedded
// structures are serialized as JSON; product_ids is denormalized for lookups.
type orderRecord struct {
	ID              string                 `gorm:"primaryKey;column:id;size:64"`
	UserID          int64                  `gorm:"column:user_id;index"`
	Items           []domain.OrderItem     `gorm:"column:items;type:jsonb;serializer:json"`
	ProductIDs      pq.StringArray         `gorm:"column:product_ids;type:text[]"`
	ShippingAddress domain.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	PaymentMethod   string                 `gorm:"column:payment_method"`
	ItemsPrice      float64                `gorm:"column:items_price"`
	TaxPrice        float64                `gorm:"column:tax_price"`
	ShippingPrice   float64                `gorm:"column:shipping_price"`
	TotalPrice      float64                `gorm:"column:total_price"`
	IsPaid          bool                   `gorm:"column:is_paid;index"`
	PaidAt          *time.Time             `gorm:"column:paid_at"`
	PaymentResult   *domain.PaymentResult  `gorm:"column:payment_result;type:jsonb;serializer:json"`
	IsDelivered     bool                   `gorm:"column:is_delivered;index"`
	DeliveredAt     *time.Time             `gorm:"column:delivered_at"`
	CreatedAt       time.Time              `gorm:"column:created_at;index"`
	UpdatedAt       time.Time              `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Create inserts a new order.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Save updates the mutable fields of an existing order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	// Struct-based Updates keeps the JSON serializer in play for payment_result.
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", record.ID).
		Select("is_paid", "paid_at", "payment_result", "is_delivered", "delivered_at", "updated_at").
		Updates(record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// ListByUser returns all orders owned by the given user.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Find(&records, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// List returns all orders.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	productIDs := make(pq.StringArray, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	return orderRecord{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           order.Items,
		ProductIDs:      productIDs,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		ItemsPrice:      order.ItemsPrice,
		TaxPrice:        order.TaxPrice,
		ShippingPrice:   order.ShippingPrice,
		TotalPrice:      order.TotalPrice,
		IsPaid:          order.IsPaid,
		PaidAt:          order.PaidAt,
		PaymentResult:   order.PaymentResult,
		IsDelivered:     order.IsDelivered,
		DeliveredAt:     order.DeliveredAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Items:           r.Items,
		ShippingAddress: r.ShippingAddress,
		PaymentMethod:   r.PaymentMethod,
		ItemsPrice:      r.ItemsPrice,
		TaxPrice:        r.TaxPrice,
		ShippingPrice:   r.ShippingPrice,
		TotalPrice:      r.TotalPrice,
		IsPaid:          r.IsPaid,
		PaidAt:          r.PaidAt,
		PaymentResult:   r.PaymentResult,
		IsDelivered:     r.IsDelivered,
		DeliveredAt:     r.DeliveredAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toDomainList(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}
