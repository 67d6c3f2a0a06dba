package http

import (
	"context"
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Use case contracts the server depends on. The command and query handlers satisfy them.
type (
	CreateWorkOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateWorkOrderCommand) (*workorder.WorkOrder, error)
	}
	UpdateWorkOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateWorkOrderCommand) (*workorder.WorkOrder, error)
	}
	ChangeWorkOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeWorkOrderStatusCommand) (*workorder.WorkOrder, error)
	}
	AddSupplyToItemHandler interface {
		Handle(ctx context.Context, cmd commands.AddSupplyToItemCommand) (*workorder.WorkOrder, error)
	}
	RemoveSupplyFromItemHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveSupplyFromItemCommand) (*workorder.WorkOrder, error)
	}
	DeleteWorkOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteWorkOrderCommand) error
	}
	ListWorkOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListWorkOrdersQuery) (ports.Page[*workorder.WorkOrder], error)
	}
	GetWorkOrderHandler interface {
		Handle(ctx context.Context, query queries.GetWorkOrderQuery) (*workorder.WorkOrder, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateWorkOrder       CreateWorkOrderHandler
	UpdateWorkOrder       UpdateWorkOrderHandler
	ChangeWorkOrderStatus ChangeWorkOrderStatusHandler
	AddSupplyToItem       AddSupplyToItemHandler
	RemoveSupplyFromItem  RemoveSupplyFromItemHandler
	DeleteWorkOrder       DeleteWorkOrderHandler
	ListWorkOrders        ListWorkOrdersHandler
	GetWorkOrder          GetWorkOrderHandler
}

// Server translates HTTP requests into commands and queries and renders their results.
// Errors are returned to echo and rendered by NewErrorHandler.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// ListWorkOrders handles GET /api/v1/work-orders.
func (s *Server) ListWorkOrders(c echo.Context) error {
	var (
		status, orderID, search *string
		page, limit             *int
	)
	params := []struct {
		name string
		dest any
	}{
		{"status", &status},
		{"orderId", &orderID},
		{"search", &search},
		{"page", &page},
		{"limit", &limit},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, c.QueryParams(), p.dest); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(p.name, err)
		}
	}

	var statusFilter *workorder.Status
	if status != nil && *status != "" {
		parsed, err := workorder.ParseStatus(*status)
		if err != nil {
			return err
		}
		statusFilter = &parsed
	}

	query, err := queries.NewListWorkOrdersQuery(statusFilter, deref(orderID), deref(search), deref(page), deref(limit))
	if err != nil {
		return err
	}

	result, err := s.handlers.ListWorkOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPageResponse(result))
}

// GetWorkOrder handles GET /api/v1/work-orders/{id}.
func (s *Server) GetWorkOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetWorkOrderQuery(id)
	if err != nil {
		return err
	}

	wo, err := s.handlers.GetWorkOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWorkOrderResponse(wo))
}

// CreateWorkOrder handles POST /api/v1/work-orders. The caller becomes the advisor.
func (s *Server) CreateWorkOrder(c echo.Context) error {
	var req CreateWorkOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	initialStatus := workorder.Unknown
	if req.InitialStatus != "" {
		parsed, err := workorder.ParseStatus(req.InitialStatus)
		if err != nil {
			return err
		}
		initialStatus = parsed
	}

	items, err := toItemSpecs(req.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateWorkOrderCommand(req.OrderID, callerID(c), initialStatus, items)
	if err != nil {
		return err
	}

	wo, err := s.handlers.CreateWorkOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toWorkOrderResponse(wo))
}

// UpdateWorkOrder handles PATCH /api/v1/work-orders/{id}.
func (s *Server) UpdateWorkOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateWorkOrderRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	items, err := toItemUpdates(req.Items)
	if err != nil {
		return err
	}

	header := workorder.HeaderChanges{
		DesignerID:   req.DesignerID,
		FileName:     req.FileName,
		Observations: req.Observations,
	}
	cmd, err := commands.NewUpdateWorkOrderCommand(id, header, items)
	if err != nil {
		return err
	}

	wo, err := s.handlers.UpdateWorkOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWorkOrderResponse(wo))
}

// ChangeWorkOrderStatus handles PATCH /api/v1/work-orders/{id}/status.
func (s *Server) ChangeWorkOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ChangeStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	status, err := workorder.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeWorkOrderStatusCommand(id, status)
	if err != nil {
		return err
	}

	wo, err := s.handlers.ChangeWorkOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWorkOrderResponse(wo))
}

// AddSupplyToItem handles PUT /api/v1/work-orders/{id}/items/{itemId}/supplies/{supplyId}.
func (s *Server) AddSupplyToItem(c echo.Context) error {
	workOrderID, itemID, supplyID, err := supplyPath(c)
	if err != nil {
		return err
	}

	var req AddSupplyRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	allocation, err := workorder.NewSupplyAllocation(supplyID, req.Quantity, req.Notes)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddSupplyToItemCommand(workOrderID, itemID, allocation)
	if err != nil {
		return err
	}

	wo, err := s.handlers.AddSupplyToItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWorkOrderResponse(wo))
}

// RemoveSupplyFromItem handles DELETE /api/v1/work-orders/{id}/items/{itemId}/supplies/{supplyId}.
func (s *Server) RemoveSupplyFromItem(c echo.Context) error {
	workOrderID, itemID, supplyID, err := supplyPath(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveSupplyFromItemCommand(workOrderID, itemID, supplyID)
	if err != nil {
		return err
	}

	wo, err := s.handlers.RemoveSupplyFromItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWorkOrderResponse(wo))
}

// DeleteWorkOrder handles DELETE /api/v1/work-orders/{id}.
func (s *Server) DeleteWorkOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteWorkOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteWorkOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func bindBody(c echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(dest)
}

func pathParam(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	value, err := pathParam(c, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.ParseID(name, value)
}

func supplyPath(c echo.Context) (kernel.UUID, kernel.UUID, string, error) {
	workOrderID, err := pathID(c, "id")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", err
	}
	supplyID, err := pathParam(c, "supplyId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", err
	}
	return workOrderID, itemID, supplyID, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
