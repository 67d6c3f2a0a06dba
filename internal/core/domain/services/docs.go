// Package services provides domain services that work across the work order and order
// aggregates.
//
// The package includes:
//   - ItemResolver: checks work order items against the lines of their source order and
//     fills in default product descriptions
package services
