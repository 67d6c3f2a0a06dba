// Package workorder provides the work order aggregate: a production ticket derived from
// one customer order that tracks manufacturing progress.
//
// The package includes:
//   - WorkOrder: the aggregate root holding the number, status, people and items
//   - Item: one produced line, traced to a line of the source order
//   - SupplyAllocation: quantity of a supply consumed by an item
//   - Status: the lifecycle state machine with its transition table
//
// Key business rules:
//   - A work order starts in Draft or Confirmed
//   - Status follows Draft -> Confirmed -> InProduction -> Completed, and any
//     non-terminal status may move to Cancelled
//   - Completed and Cancelled work orders are immutable
//   - Only Draft work orders can be deleted
//   - Production areas and supplies of an item are replaced as whole sets
package workorder
