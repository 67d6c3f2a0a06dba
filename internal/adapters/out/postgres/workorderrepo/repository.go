package workorderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workorders/internal/adapters/out/postgres/dberr"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Constraint names as reported by postgres and, for the sqlite test databases, the
// columns they cover.
var (
	numberConstraints      = []string{"uq_work_orders_number", "work_orders.work_order_number"}
	activeOrderConstraints = []string{"uq_work_orders_active_order", "work_orders.order_id"}
)

// GormWorkOrderRepository implements ports.WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkOrderRepository creates a new GORM work order repository.
func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// List returns one page of work orders, newest first. Count and page use the same
// filtered query.
func (r *GormWorkOrderRepository) List(
	ctx context.Context,
	filter ports.WorkOrderFilter,
) (ports.Page[*workorder.WorkOrder], error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return ports.Page[*workorder.WorkOrder]{}, err
	}

	var dtos []WorkOrderDTO
	if err := preloadItems(r.filtered(ctx, filter)).
		Select("work_orders.*").
		Order("work_orders.created_at DESC").
		Order("work_orders.work_order_number DESC").
		Offset(filter.Pagination.Skip()).
		Limit(filter.Pagination.Limit()).
		Find(&dtos).Error; err != nil {
		return ports.Page[*workorder.WorkOrder]{}, err
	}

	workOrders := make([]*workorder.WorkOrder, 0, len(dtos))
	for _, dto := range dtos {
		wo, err := toDomain(dto)
		if err != nil {
			return ports.Page[*workorder.WorkOrder]{}, err
		}
		workOrders = append(workOrders, wo)
	}

	return ports.NewPage(workOrders, total, filter.Pagination), nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filtered builds a fresh query carrying the filter predicate. Search joins the source
// order and its client.
func (r *GormWorkOrderRepository) filtered(ctx context.Context, filter ports.WorkOrderFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&WorkOrderDTO{})

	if filter.Status != nil {
		q = q.Where("work_orders.status = ?", filter.Status.String())
	}
	if filter.OrderID != "" {
		q = q.Where("work_orders.order_id = ?", filter.OrderID)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		q = q.
			Joins("LEFT JOIN orders ON orders.id = work_orders.order_id").
			Joins("LEFT JOIN clients ON clients.id = orders.client_id").
			Where(
				`LOWER(work_orders.work_order_number) LIKE ? ESCAPE '\' OR `+
					`LOWER(orders.order_number) LIKE ? ESCAPE '\' OR `+
					`LOWER(clients.name) LIKE ? ESCAPE '\'`,
				pattern, pattern, pattern,
			)
	}

	return q
}

// Get retrieves a work order with its items, production areas and supplies.
func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	if err := preloadItems(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindActiveByOrder returns the non-cancelled work order of orderID, or nil.
func (r *GormWorkOrderRepository) FindActiveByOrder(ctx context.Context, orderID string) (*workorder.WorkOrder, error) {
	var dto WorkOrderDTO
	err := preloadItems(r.db.WithContext(ctx)).
		Where("order_id = ? AND status <> ?", orderID, workorder.Cancelled.String()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is a valid answer
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Add inserts the work order together with its items, production areas and supplies.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateWriteError(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the header fields.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.updateColumns(ctx, aggregate.ID(), map[string]any{
		"designer_id":  aggregate.DesignerID(),
		"file_name":    aggregate.FileName(),
		"observations": aggregate.Observations(),
		"updated_at":   aggregate.UpdatedAt(),
	}); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus persists the status only.
func (r *GormWorkOrderRepository) UpdateStatus(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.updateColumns(ctx, aggregate.ID(), map[string]any{
		"status":     aggregate.Status().String(),
		"updated_at": aggregate.UpdatedAt(),
	}); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWorkOrderRepository) updateColumns(ctx context.Context, id kernel.UUID, columns map[string]any) error {
	result := r.db.WithContext(ctx).Model(&WorkOrderDTO{}).Where("id = ?", id.Bytes()).UpdateColumns(columns)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("work order", id.String())
	}
	return nil
}

// Delete removes the work order. Items, production area links and supplies are removed
// by the ON DELETE CASCADE foreign keys.
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&WorkOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("work order", id.String())
	}
	return nil
}

// GetItem returns the item only when it belongs to workOrderID.
func (r *GormWorkOrderRepository) GetItem(
	ctx context.Context,
	workOrderID kernel.UUID,
	itemID kernel.UUID,
) (*workorder.Item, error) {
	var dto WorkOrderItemDTO
	err := r.db.WithContext(ctx).
		Preload("ProductionAreas", orderBy("production_area_id")).
		Preload("Supplies", orderBy("supply_id")).
		Where("id = ? AND work_order_id = ?", itemID.Bytes(), workOrderID.Bytes()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause(
			"work order item",
			itemID.String(),
			fmt.Errorf("item is not part of work order %s", workOrderID),
		)
	}
	if err != nil {
		return nil, err
	}

	return itemToDomain(dto)
}

// UpdateItem replaces the item's production areas and supplies and then applies the
// scalar fields. Everything runs in one transaction, or in a savepoint when the
// repository is already bound to one.
func (r *GormWorkOrderRepository) UpdateItem(ctx context.Context, itemID kernel.UUID, changes ports.ItemChanges) error {
	id := itemID.Bytes()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&WorkOrderItemDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("work order item", itemID.String())
		}

		if changes.ProductionAreaIDs != nil {
			if err := tx.Where("work_order_item_id = ?", id).Delete(&ProductionAreaDTO{}).Error; err != nil {
				return err
			}
			if areas := areasFromDomain(id, *changes.ProductionAreaIDs); len(areas) > 0 {
				if err := tx.Create(&areas).Error; err != nil {
					return err
				}
			}
		}

		if changes.Supplies != nil {
			if err := tx.Where("work_order_item_id = ?", id).Delete(&SupplyDTO{}).Error; err != nil {
				return err
			}
			if supplies := suppliesFromDomain(id, *changes.Supplies); len(supplies) > 0 {
				if err := tx.Create(&supplies).Error; err != nil {
					return err
				}
			}
		}

		columns := make(map[string]any, 2)
		if changes.ProductDescription != nil {
			columns["product_description"] = *changes.ProductDescription
		}
		if changes.Observations != nil {
			columns["observations"] = *changes.Observations
		}
		if len(columns) > 0 {
			if err := tx.Model(&WorkOrderItemDTO{}).Where("id = ?", id).UpdateColumns(columns).Error; err != nil {
				return err
			}
		}

		return touchParent(tx, id)
	})
}

// UpsertSupply creates the allocation or replaces its quantity and notes.
func (r *GormWorkOrderRepository) UpsertSupply(
	ctx context.Context,
	itemID kernel.UUID,
	allocation workorder.SupplyAllocation,
) error {
	if err := allocation.Validate(); err != nil {
		return err
	}

	dto := supplyFromDomain(itemID.Bytes(), allocation)
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "work_order_item_id"}, {Name: "supply_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "notes"}),
	}).Create(&dto).Error; err != nil {
		return err
	}

	return touchParent(db, itemID.Bytes())
}

// RemoveSupply deletes the allocation and reports whether there was one.
func (r *GormWorkOrderRepository) RemoveSupply(ctx context.Context, itemID kernel.UUID, supplyID string) (bool, error) {
	db := r.db.WithContext(ctx)
	result := db.Where("work_order_item_id = ? AND supply_id = ?", itemID.Bytes(), supplyID).Delete(&SupplyDTO{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	return true, touchParent(db, itemID.Bytes())
}

// touchParent bumps updated_at of the work order owning the item.
func touchParent(db *gorm.DB, itemID any) error {
	return db.Model(&WorkOrderDTO{}).
		Where("id = (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&WorkOrderItemDTO{}).Select("work_order_id").Where("id = ?", itemID)).
		UpdateColumn("updated_at", time.Now().UTC()).Error
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", orderBy("position")).
		Preload("Items.ProductionAreas", orderBy("production_area_id")).
		Preload("Items.Supplies", orderBy("supply_id"))
}

func orderBy(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column)
	}
}

// translateWriteError maps the uniqueness violations callers act on to port errors.
func translateWriteError(err error) error {
	constraint, ok := dberr.UniqueViolation(err)
	if !ok {
		return err
	}

	switch {
	case matches(constraint, numberConstraints):
		return fmt.Errorf("%w: %w", ports.ErrWorkOrderNumberTaken, err)
	case matches(constraint, activeOrderConstraints):
		return fmt.Errorf("%w: %w", ports.ErrActiveWorkOrderExists, err)
	default:
		return err
	}
}

func matches(constraint string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.EqualFold(constraint, candidate) {
			return true
		}
	}
	return false
}
