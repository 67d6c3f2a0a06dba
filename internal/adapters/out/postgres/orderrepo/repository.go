package orderrepo

import (
	"context"
	"errors"
	"strings"

	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderLookup implements ports.OrderLookup using GORM.
type GormOrderLookup struct {
	db *gorm.DB
}

// NewGormOrderLookup creates a new GORM order lookup.
func NewGormOrderLookup(db *gorm.DB) *GormOrderLookup {
	return &GormOrderLookup{db: db}
}

// GetOrder retrieves an order with its client name and line items in position order.
func (r *GormOrderLookup) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderId")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position").Order("id") }).
		First(&dto, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}
