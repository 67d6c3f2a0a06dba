// Package kernel holds the primitives shared by every aggregate of the work order
// service. Today that is UUID, the identifier of work orders and their items.
//
// Identifiers owned by neighbouring modules (orders, order lines, supplies, production
// areas, users) are opaque strings and do not live here.
package kernel
