// Package orderrepo reads the source orders owned by the order module: the orders
// table, its line items and the client that placed it. The work order service never
// writes these tables.
package orderrepo

import (
	"workorders/internal/core/domain/model/order"
)

type ClientDTO struct {
	ID   string `gorm:"type:varchar(64);primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

// OrderDTO is the orders row. Status is stored by name ("IN_PRODUCTION").
type OrderDTO struct {
	ID          string         `gorm:"type:varchar(64);primaryKey"`
	OrderNumber string         `gorm:"type:varchar(32);not null"`
	ClientID    *string        `gorm:"type:varchar(64)"`
	Client      *ClientDTO     `gorm:"foreignKey:ClientID"`
	Status      string         `gorm:"type:varchar(20);not null"`
	Items       []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	OrderID     string `gorm:"type:varchar(64);not null;index"`
	Description string `gorm:"type:text;not null"`
	Position    int    `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// Models lists the DTOs in creation order, for AutoMigrate in tests.
func Models() []any {
	return []any{&ClientDTO{}, &OrderDTO{}, &OrderItemDTO{}}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ID, itemDTO.Description)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var clientName string
	if dto.Client != nil {
		clientName = dto.Client.Name
	}

	return order.RestoreOrder(dto.ID, dto.OrderNumber, clientName, status, items)
}
