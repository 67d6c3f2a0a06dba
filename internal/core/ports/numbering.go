package ports

import (
	"context"
	"errors"
)

// ErrWorkOrderNumberTaken is returned when a work order is stored, or a number is
// issued, with a number that already belongs to another work order. It is the only
// error the create flow retries.
var ErrWorkOrderNumberTaken = errors.New("work order number is already taken")

// NumberingAuthority issues human-readable document numbers from named series.
//
// Example:
//
//	number, err := numbering.GenerateNumber(ctx, workorder.NumberSeries) // "OT-2026-001"
//	if errors.Is(err, ports.ErrWorkOrderNumberTaken) {
//	    _ = numbering.SyncCounter(ctx, workorder.NumberSeries)
//	}
type NumberingAuthority interface {
	// GenerateNumber reserves and returns the next number of series.
	GenerateNumber(ctx context.Context, series string) (string, error)

	// SyncCounter realigns the series counter with the numbers already in use.
	// It is idempotent and never moves the counter backwards.
	SyncCounter(ctx context.Context, series string) error
}
