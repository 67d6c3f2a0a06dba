package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per operation. A UnitOfWork is never
// shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction together with the stores that read and write
// through it. The caller opens and closes it explicitly:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	...
//	return uow.Commit(ctx)
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error

	// Rollback after Commit does nothing and returns nil.
	Rollback(ctx context.Context) error

	WorkOrderRepository() WorkOrderRepository
	OrderLookup() OrderLookup
}
