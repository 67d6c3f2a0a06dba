package cmd

import (
	"context"
	"fmt"

	workordershttp "workorders/internal/adapters/in/http"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/adapters/out/postgres/consecutiverepo"
	"workorders/internal/adapters/out/postgres/workorderrepo"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/ports"
	"workorders/internal/jobs"
	"workorders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	numbering  ports.NumberingAuthority
	metrics    ports.LifecycleMetrics
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		numbering:  consecutiverepo.NewGormNumberingAuthority(gormDB, logger),
		metrics:    metrics.Default(),
	}
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() *commands.CreateWorkOrderCommandHandler {
	h := commands.NewCreateWorkOrderCommandHandler(c.orderAwareUoWFactory(), c.numbering, c.metrics, c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateWorkOrderCommandHandler() *commands.UpdateWorkOrderCommandHandler {
	h := commands.NewUpdateWorkOrderCommandHandler(c.orderAwareUoWFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateChangeWorkOrderStatusCommandHandler() *commands.ChangeWorkOrderStatusCommandHandler {
	h := commands.NewChangeWorkOrderStatusCommandHandler(c.workOrderUoWFactory(), c.metrics, c.logger)
	return &h
}

func (c *CompositionRoot) CreateDeleteWorkOrderCommandHandler() *commands.DeleteWorkOrderCommandHandler {
	h := commands.NewDeleteWorkOrderCommandHandler(c.workOrderUoWFactory(), c.metrics, c.logger)
	return &h
}

func (c *CompositionRoot) CreateAddSupplyToItemCommandHandler() *commands.AddSupplyToItemCommandHandler {
	h := commands.NewAddSupplyToItemCommandHandler(c.workOrderUoWFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateRemoveSupplyFromItemCommandHandler() *commands.RemoveSupplyFromItemCommandHandler {
	h := commands.NewRemoveSupplyFromItemCommandHandler(c.workOrderUoWFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateListWorkOrdersQueryHandler() queries.ListWorkOrdersQueryHandler {
	return queries.NewListWorkOrdersQueryHandler(c.workOrderReader())
}

func (c *CompositionRoot) CreateGetWorkOrderQueryHandler() queries.GetWorkOrderQueryHandler {
	return queries.NewGetWorkOrderQueryHandler(c.workOrderReader())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.numbering, jobs.Config{NumberingSyncSchedule: c.config.NumberingSyncSchedule}, c.logger)
}

// CreateHTTPRouter wires every use case into the REST adapter.
func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	server := workordershttp.NewServer(workordershttp.Handlers{
		CreateWorkOrder:       c.CreateCreateWorkOrderCommandHandler(),
		UpdateWorkOrder:       c.CreateUpdateWorkOrderCommandHandler(),
		ChangeWorkOrderStatus: c.CreateChangeWorkOrderStatusCommandHandler(),
		AddSupplyToItem:       c.CreateAddSupplyToItemCommandHandler(),
		RemoveSupplyFromItem:  c.CreateRemoveSupplyFromItemCommandHandler(),
		DeleteWorkOrder:       c.CreateDeleteWorkOrderCommandHandler(),
		ListWorkOrders:        c.CreateListWorkOrdersQueryHandler(),
		GetWorkOrder:          c.CreateGetWorkOrderQueryHandler(),
	})

	return workordershttp.NewRouter(server, prometheus.DefaultGatherer, workordershttp.RouterConfig{
		SwaggerEnabled: c.config.SwaggerEnabled,
		HealthCheck:    c.pingDatabase,
	}, c.logger)
}

func (c *CompositionRoot) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// workOrderReader serves the queries outside any unit of work.
func (c *CompositionRoot) workOrderReader() ports.WorkOrderReader {
	return workorderrepo.NewGormWorkOrderRepository(c.gormDB, nil)
}

func (c *CompositionRoot) orderAwareUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) workOrderUoWFactory() commands.WorkOrderUoWFactory {
	return FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncWorkOrderUoWFactory func() commands.WorkOrderUoW

func (f FuncWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
