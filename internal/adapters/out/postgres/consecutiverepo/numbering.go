package consecutiverepo

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNumberingAuthority implements ports.NumberingAuthority over the consecutives
// table. Each call runs in its own short transaction holding the series row lock, so
// concurrent callers never draw the same value.
type GormNumberingAuthority struct {
	db      *gorm.DB
	sources map[string]Source
	now     func() time.Time
	logger  *zap.Logger
}

type Option func(*GormNumberingAuthority)

// WithClock replaces time.Now, which decides the numbering year.
func WithClock(now func() time.Time) Option {
	return func(a *GormNumberingAuthority) {
		a.now = now
	}
}

// WithSource registers the table holding the numbers of series.
func WithSource(series string, source Source) Option {
	return func(a *GormNumberingAuthority) {
		a.sources[series] = source
	}
}

func NewGormNumberingAuthority(db *gorm.DB, logger *zap.Logger, opts ...Option) *GormNumberingAuthority {
	a := &GormNumberingAuthority{
		db:      db,
		sources: maps.Clone(DefaultSources()),
		now:     time.Now,
		logger:  logger.Named("numbering"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateNumber advances the counter of series and returns the formatted number. The
// counter restarts at 1 when the year changes. When the number is already present in
// the series' source table nothing is reserved and ports.ErrWorkOrderNumberTaken is
// returned; SyncCounter realigns the counter.
func (a *GormNumberingAuthority) GenerateNumber(ctx context.Context, series string) (string, error) {
	var number string
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockSeries(tx, series)
		if err != nil {
			return err
		}

		year := a.now().Year()
		next := c.LastValue + 1
		if c.Year != year {
			next = 1
		}
		number = c.format(year, next)

		taken, err := a.inUse(tx, series, number)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s", ports.ErrWorkOrderNumberTaken, number)
		}

		return saveCounter(tx, series, year, next)
	})
	if err != nil {
		return "", err
	}

	return number, nil
}

// SyncCounter raises the counter to the highest number of the current year found in
// the series' source table. It never lowers the counter, so numbers of deleted
// documents are not issued again.
func (a *GormNumberingAuthority) SyncCounter(ctx context.Context, series string) error {
	source, ok := a.sources[series]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("series", fmt.Errorf("no source table registered for %s", series))
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockSeries(tx, series)
		if err != nil {
			return err
		}

		year := a.now().Year()
		prefix := c.yearPrefix(year)

		var numbers []string
		if err = tx.Table(source.Table).
			Where(source.Column+" LIKE ?", prefix+"%").
			Pluck(source.Column, &numbers).Error; err != nil {
			return err
		}

		highest := 0
		for _, number := range numbers {
			value, parseErr := strconv.Atoi(strings.TrimPrefix(number, prefix))
			if parseErr == nil && value > highest {
				highest = value
			}
		}

		current := c.LastValue
		if c.Year != year {
			current = 0
		}
		if c.Year == year && highest <= current {
			return nil
		}

		target := max(highest, current)
		a.logger.Info("numbering counter synchronized",
			zap.String("series", series),
			zap.Int("year", year),
			zap.Int("from", c.LastValue),
			zap.Int("to", target),
		)
		return saveCounter(tx, series, year, target)
	})
}

func (a *GormNumberingAuthority) inUse(tx *gorm.DB, series, number string) (bool, error) {
	source, ok := a.sources[series]
	if !ok {
		return false, nil
	}

	var count int64
	if err := tx.Table(source.Table).Where(source.Column+" = ?", number).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func lockSeries(tx *gorm.DB, series string) (ConsecutiveDTO, error) {
	var c ConsecutiveDTO
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "series = ?", series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ConsecutiveDTO{}, errs.NewObjectNotFoundError("numbering series", series)
	}
	return c, err
}

func saveCounter(tx *gorm.DB, series string, year, value int) error {
	return tx.Model(&ConsecutiveDTO{}).
		Where("series = ?", series).
		UpdateColumns(map[string]any{"year": year, "last_value": value}).Error
}
