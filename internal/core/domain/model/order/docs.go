// Package order provides the read-only view of client orders that the work order
// service depends on. Orders are owned by the order module; this package only models
// the parts a work order needs.
//
// The package includes:
//   - Order: a snapshot of an order with its number, client name, status and line items
//   - Item: one order line (id and description)
//   - Status: the order lifecycle states as reported by the order module
//
// Key business rules:
//   - Work orders can only be opened for orders in Confirmed, InProduction or Ready
//   - Work order items must reference line items of their own order
package order
