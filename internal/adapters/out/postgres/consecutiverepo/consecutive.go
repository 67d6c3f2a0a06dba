// Package consecutiverepo issues document numbers such as "OT-2026-001" from counters
// kept in the consecutives table. Each series has a prefix, a zero padding width and a
// counter that restarts every calendar year.
package consecutiverepo

import "fmt"

// ConsecutiveDTO is one row of the consecutives table.
type ConsecutiveDTO struct {
	Series    string `gorm:"type:varchar(32);primaryKey"`
	Prefix    string `gorm:"type:varchar(8);not null"`
	Padding   int    `gorm:"not null"`
	Year      int    `gorm:"not null"`
	LastValue int    `gorm:"not null"`
}

func (ConsecutiveDTO) TableName() string {
	return "consecutives"
}

// yearPrefix is the part every number of year shares, e.g. "OT-2026-".
func (c ConsecutiveDTO) yearPrefix(year int) string {
	return fmt.Sprintf("%s-%04d-", c.Prefix, year)
}

func (c ConsecutiveDTO) format(year, value int) string {
	return fmt.Sprintf("%s%0*d", c.yearPrefix(year), c.Padding, value)
}

// Source names the table and column holding the numbers already issued for a series.
type Source struct {
	Table  string
	Column string
}

// DefaultSources maps the series used by the service to their source tables.
func DefaultSources() map[string]Source {
	return map[string]Source{
		"WORK_ORDER": {Table: "work_orders", Column: "work_order_number"},
	}
}
