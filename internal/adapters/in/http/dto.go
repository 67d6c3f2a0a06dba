package http

import (
	"errors"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/domain/services"
	"workorders/internal/core/ports"

	"github.com/shopspring/decimal"
)

// SupplyAllocationRequest is one supply of an item in create and update bodies.
type SupplyAllocationRequest struct {
	SupplyID string           `json:"supplyId" validate:"required"`
	Quantity *decimal.Decimal `json:"quantity"`
	Notes    string           `json:"notes"`
}

type CreateWorkOrderItemRequest struct {
	OrderItemID        string                    `json:"orderItemId" validate:"required"`
	ProductDescription *string                   `json:"productDescription"`
	Observations       string                    `json:"observations"`
	ProductionAreaIDs  []string                  `json:"productionAreaIds" validate:"omitempty,dive,required"`
	Supplies           []SupplyAllocationRequest `json:"supplies" validate:"omitempty,dive"`
}

// CreateWorkOrderRequest is the body of POST /api/v1/work-orders. An empty
// initialStatus opens the work order as DRAFT.
type CreateWorkOrderRequest struct {
	OrderID       string                       `json:"orderId" validate:"required"`
	InitialStatus string                       `json:"initialStatus" validate:"omitempty,oneof=DRAFT CONFIRMED"`
	Items         []CreateWorkOrderItemRequest `json:"items" validate:"omitempty,dive"`
}

// UpdateWorkOrderItemRequest reconciles one item. Absent fields are left untouched and
// an empty list clears the collection.
type UpdateWorkOrderItemRequest struct {
	OrderItemID        string                     `json:"orderItemId" validate:"required"`
	ProductDescription *string                    `json:"productDescription"`
	Observations       *string                    `json:"observations"`
	ProductionAreaIDs  *[]string                  `json:"productionAreaIds" validate:"omitempty,dive,required"`
	Supplies           *[]SupplyAllocationRequest `json:"supplies" validate:"omitempty,dive"`
}

type UpdateWorkOrderRequest struct {
	DesignerID   *string                      `json:"designerId"`
	FileName     *string                      `json:"fileName"`
	Observations *string                      `json:"observations"`
	Items        []UpdateWorkOrderItemRequest `json:"items" validate:"omitempty,dive"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddSupplyRequest is the body of the supply upsert; the supply id comes from the path.
type AddSupplyRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Notes    string           `json:"notes"`
}

type SupplyAllocationResponse struct {
	SupplyID string           `json:"supplyId"`
	Quantity *decimal.Decimal `json:"quantity"`
	Notes    string           `json:"notes"`
}

type WorkOrderItemResponse struct {
	ID                 string                     `json:"id"`
	OrderItemID        string                     `json:"orderItemId"`
	ProductDescription string                     `json:"productDescription"`
	Observations       string                     `json:"observations"`
	ProductionAreaIDs  []string                   `json:"productionAreaIds"`
	Supplies           []SupplyAllocationResponse `json:"supplies"`
}

type WorkOrderResponse struct {
	ID              string                  `json:"id"`
	WorkOrderNumber string                  `json:"workOrderNumber"`
	Status          string                  `json:"status"`
	OrderID         string                  `json:"orderId"`
	AdvisorID       string                  `json:"advisorId"`
	DesignerID      string                  `json:"designerId"`
	FileName        string                  `json:"fileName"`
	Observations    string                  `json:"observations"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	Items           []WorkOrderItemResponse `json:"items"`
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type WorkOrderPageResponse struct {
	Data []WorkOrderResponse `json:"data"`
	Meta PageMeta            `json:"meta"`
}

func toSupplyAllocations(requests []SupplyAllocationRequest) ([]workorder.SupplyAllocation, error) {
	allocations := make([]workorder.SupplyAllocation, 0, len(requests))
	var errList []error
	for _, req := range requests {
		allocation, err := workorder.NewSupplyAllocation(req.SupplyID, req.Quantity, req.Notes)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		allocations = append(allocations, allocation)
	}
	return allocations, errors.Join(errList...)
}

func toItemSpecs(requests []CreateWorkOrderItemRequest) ([]services.ItemSpec, error) {
	specs := make([]services.ItemSpec, 0, len(requests))
	for _, req := range requests {
		supplies, err := toSupplyAllocations(req.Supplies)
		if err != nil {
			return nil, err
		}
		specs = append(specs, services.ItemSpec{
			OrderItemID:        req.OrderItemID,
			ProductDescription: req.ProductDescription,
			Observations:       req.Observations,
			ProductionAreaIDs:  req.ProductionAreaIDs,
			Supplies:           supplies,
		})
	}
	return specs, nil
}

func toItemUpdates(requests []UpdateWorkOrderItemRequest) ([]commands.ItemUpdate, error) {
	updates := make([]commands.ItemUpdate, 0, len(requests))
	for _, req := range requests {
		update := commands.ItemUpdate{
			OrderItemID:        req.OrderItemID,
			ProductDescription: req.ProductDescription,
			Observations:       req.Observations,
			ProductionAreaIDs:  req.ProductionAreaIDs,
		}
		if req.Supplies != nil {
			supplies, err := toSupplyAllocations(*req.Supplies)
			if err != nil {
				return nil, err
			}
			update.Supplies = &supplies
		}
		updates = append(updates, update)
	}
	return updates, nil
}

func toWorkOrderResponse(wo *workorder.WorkOrder) WorkOrderResponse {
	items := make([]WorkOrderItemResponse, 0, len(wo.Items()))
	for _, item := range wo.Items() {
		supplies := make([]SupplyAllocationResponse, 0, len(item.Supplies()))
		for _, supply := range item.Supplies() {
			response := SupplyAllocationResponse{
				SupplyID: supply.SupplyID(),
				Notes:    supply.Notes(),
			}
			if quantity, ok := supply.Quantity(); ok {
				response.Quantity = &quantity
			}
			supplies = append(supplies, response)
		}

		areas := item.ProductionAreaIDs()
		if areas == nil {
			areas = []string{}
		}

		items = append(items, WorkOrderItemResponse{
			ID:                 item.ID().String(),
			OrderItemID:        item.OrderItemID(),
			ProductDescription: item.ProductDescription(),
			Observations:       item.Observations(),
			ProductionAreaIDs:  areas,
			Supplies:           supplies,
		})
	}

	return WorkOrderResponse{
		ID:              wo.ID().String(),
		WorkOrderNumber: wo.Number(),
		Status:          wo.Status().String(),
		OrderID:         wo.OrderID(),
		AdvisorID:       wo.AdvisorID(),
		DesignerID:      wo.DesignerID(),
		FileName:        wo.FileName(),
		Observations:    wo.Observations(),
		CreatedAt:       wo.CreatedAt(),
		UpdatedAt:       wo.UpdatedAt(),
		Items:           items,
	}
}

func toPageResponse(page ports.Page[*workorder.WorkOrder]) WorkOrderPageResponse {
	data := make([]WorkOrderResponse, 0, len(page.Items))
	for _, wo := range page.Items {
		data = append(data, toWorkOrderResponse(wo))
	}
	return WorkOrderPageResponse{
		Data: data,
		Meta: PageMeta{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
