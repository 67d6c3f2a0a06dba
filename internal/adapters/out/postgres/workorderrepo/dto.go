// Package workorderrepo persists work order aggregates with GORM: the work order row,
// its items, the production areas each item is routed through and its supply
// allocations.
package workorderrepo

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderDTO is the work_orders row. The unique index on order_id only covers
// non-cancelled rows, so an order holds at most one active work order.
type WorkOrderDTO struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Number       string             `gorm:"column:work_order_number;type:varchar(32);not null;uniqueIndex:uq_work_orders_number"`
	OrderID      string             `gorm:"type:varchar(64);not null;uniqueIndex:uq_work_orders_active_order,where:status <> 'CANCELLED'"`
	AdvisorID    string             `gorm:"type:varchar(64);not null"`
	DesignerID   string             `gorm:"type:varchar(64);not null"`
	FileName     string             `gorm:"type:varchar(255);not null"`
	Observations string             `gorm:"type:text;not null"`
	Status       string             `gorm:"type:varchar(20);not null;index:idx_work_orders_status"`
	CreatedAt    time.Time          `gorm:"not null"`
	UpdatedAt    time.Time          `gorm:"not null"`
	Items        []WorkOrderItemDTO `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// WorkOrderItemDTO is the work_order_items row. Position keeps the creation order.
type WorkOrderItemDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	WorkOrderID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_work_order_items_order_item"`
	OrderItemID        string              `gorm:"type:varchar(64);not null;uniqueIndex:uq_work_order_items_order_item"`
	ProductDescription string              `gorm:"type:text;not null"`
	Observations       string              `gorm:"type:text;not null"`
	Position           int                 `gorm:"not null"`
	ProductionAreas    []ProductionAreaDTO `gorm:"foreignKey:WorkOrderItemID;constraint:OnDelete:CASCADE"`
	Supplies           []SupplyDTO         `gorm:"foreignKey:WorkOrderItemID;constraint:OnDelete:CASCADE"`
}

func (WorkOrderItemDTO) TableName() string {
	return "work_order_items"
}

type ProductionAreaDTO struct {
	WorkOrderItemID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductionAreaID string    `gorm:"type:varchar(64);primaryKey"`
}

func (ProductionAreaDTO) TableName() string {
	return "work_order_item_production_areas"
}

// SupplyDTO is one supply allocation. Quantity is NULL when not specified.
type SupplyDTO struct {
	WorkOrderItemID uuid.UUID           `gorm:"type:uuid;primaryKey"`
	SupplyID        string              `gorm:"type:varchar(64);primaryKey"`
	Quantity        decimal.NullDecimal `gorm:"type:numeric(14,4)"`
	Notes           string              `gorm:"type:text;not null"`
}

func (SupplyDTO) TableName() string {
	return "work_order_item_supplies"
}

// Models lists the DTOs in creation order, for AutoMigrate in tests.
func Models() []any {
	return []any{&WorkOrderDTO{}, &WorkOrderItemDTO{}, &ProductionAreaDTO{}, &SupplyDTO{}}
}

func fromDomain(wo *workorder.WorkOrder) WorkOrderDTO {
	workOrderID := wo.ID().Bytes()
	items := make([]WorkOrderItemDTO, 0, len(wo.Items()))
	for position, item := range wo.Items() {
		dto := itemFromDomain(workOrderID, item)
		dto.Position = position
		items = append(items, dto)
	}

	return WorkOrderDTO{
		ID:           workOrderID,
		Number:       wo.Number(),
		OrderID:      wo.OrderID(),
		AdvisorID:    wo.AdvisorID(),
		DesignerID:   wo.DesignerID(),
		FileName:     wo.FileName(),
		Observations: wo.Observations(),
		Status:       wo.Status().String(),
		CreatedAt:    wo.CreatedAt(),
		UpdatedAt:    wo.UpdatedAt(),
		Items:        items,
	}
}

func itemFromDomain(workOrderID uuid.UUID, item *workorder.Item) WorkOrderItemDTO {
	itemID := item.ID().Bytes()
	return WorkOrderItemDTO{
		ID:                 itemID,
		WorkOrderID:        workOrderID,
		OrderItemID:        item.OrderItemID(),
		ProductDescription: item.ProductDescription(),
		Observations:       item.Observations(),
		ProductionAreas:    areasFromDomain(itemID, item.ProductionAreaIDs()),
		Supplies:           suppliesFromDomain(itemID, item.Supplies()),
	}
}

func areasFromDomain(itemID uuid.UUID, areaIDs []string) []ProductionAreaDTO {
	areas := make([]ProductionAreaDTO, 0, len(areaIDs))
	for _, areaID := range areaIDs {
		areas = append(areas, ProductionAreaDTO{WorkOrderItemID: itemID, ProductionAreaID: areaID})
	}
	return areas
}

func suppliesFromDomain(itemID uuid.UUID, allocations []workorder.SupplyAllocation) []SupplyDTO {
	supplies := make([]SupplyDTO, 0, len(allocations))
	for _, allocation := range allocations {
		supplies = append(supplies, supplyFromDomain(itemID, allocation))
	}
	return supplies
}

func supplyFromDomain(itemID uuid.UUID, allocation workorder.SupplyAllocation) SupplyDTO {
	dto := SupplyDTO{
		WorkOrderItemID: itemID,
		SupplyID:        allocation.SupplyID(),
		Notes:           allocation.Notes(),
	}
	if quantity, ok := allocation.Quantity(); ok {
		dto.Quantity = decimal.NewNullDecimal(quantity)
	}
	return dto
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := workorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*workorder.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return workorder.RestoreWorkOrder(
		id,
		dto.Number,
		status,
		dto.OrderID,
		dto.AdvisorID,
		dto.DesignerID,
		dto.FileName,
		dto.Observations,
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemToDomain(dto WorkOrderItemDTO) (*workorder.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	areaIDs := make([]string, 0, len(dto.ProductionAreas))
	for _, area := range dto.ProductionAreas {
		areaIDs = append(areaIDs, area.ProductionAreaID)
	}

	supplies := make([]workorder.SupplyAllocation, 0, len(dto.Supplies))
	for _, supplyDTO := range dto.Supplies {
		var quantity *decimal.Decimal
		if supplyDTO.Quantity.Valid {
			quantity = &supplyDTO.Quantity.Decimal
		}
		allocation, allocErr := workorder.NewSupplyAllocation(supplyDTO.SupplyID, quantity, supplyDTO.Notes)
		if allocErr != nil {
			return nil, allocErr
		}
		supplies = append(supplies, allocation)
	}

	return workorder.NewItem(id, dto.OrderItemID, dto.ProductDescription, dto.Observations, areaIDs, supplies)
}
