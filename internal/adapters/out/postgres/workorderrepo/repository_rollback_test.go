package workorderrepo_test

import (
	"errors"
	"testing"

	"workorders/internal/adapters/out/postgres/workorderrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (*workorderrepo.GormWorkOrderRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return workorderrepo.NewGormWorkOrderRepository(db, new(MockAggregateTracker)), mock
}

func TestGormWorkOrderRepository_UpdateItem_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepository(t)
	itemID := kernel.NewUUID()
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "work_order_items" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "work_order_item_production_areas" WHERE work_order_item_id = \$1`).
		WillReturnError(boom)
	mock.ExpectRollback()

	areas := []string{"pa-print"}
	supplies := []workorder.SupplyAllocation{}
	err := repo.UpdateItem(t.Context(), itemID, ports.ItemChanges{
		ProductionAreaIDs: &areas,
		Supplies:          &supplies,
	})

	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWorkOrderRepository_UpdateItem_RollsBackAreasWhenSuppliesFail(t *testing.T) {
	repo, mock := newMockRepository(t)
	itemID := kernel.NewUUID()
	boom := errors.New("deadlock detected")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "work_order_items" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "work_order_item_production_areas" WHERE work_order_item_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "work_order_item_production_areas"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "work_order_item_supplies" WHERE work_order_item_id = \$1`).
		WillReturnError(boom)
	mock.ExpectRollback()

	areas := []string{"pa-print"}
	supplies := []workorder.SupplyAllocation{}
	err := repo.UpdateItem(t.Context(), itemID, ports.ItemChanges{
		ProductionAreaIDs: &areas,
		Supplies:          &supplies,
	})

	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWorkOrderRepository_UpdateItem_CommitsReplacement(t *testing.T) {
	repo, mock := newMockRepository(t)
	itemID := kernel.NewUUID()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "work_order_items" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "work_order_item_production_areas" WHERE work_order_item_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "work_order_item_production_areas"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "work_orders" SET "updated_at"=\$1 WHERE id = \(SELECT "work_order_id" FROM "work_order_items" WHERE id = \$2\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	areas := []string{"pa-print"}
	err := repo.UpdateItem(t.Context(), itemID, ports.ItemChanges{ProductionAreaIDs: &areas})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
