// Package dberr classifies driver errors independently of the driver that raised them.
// The service talks to postgres through pgx; lib/pq errors come from the migration
// driver and sqlite errors from the in-memory test databases.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

const sqliteUniquePrefix = "UNIQUE constraint failed: "

// UniqueViolation reports whether err is a unique constraint violation and names the
// violated constraint. Postgres drivers report the constraint or index name
// ("uq_work_orders_number"); sqlite reports the columns ("work_orders.work_order_number").
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == uniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint, string(pqErr.Code) == uniqueViolationCode
	}

	msg := err.Error()
	if i := strings.Index(msg, sqliteUniquePrefix); i >= 0 {
		return strings.TrimSpace(msg[i+len(sqliteUniquePrefix):]), true
	}

	return "", false
}
