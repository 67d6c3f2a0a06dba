// Package queries contains the read operations of the work order service.
//
// Queries are built through their New* constructors, which validate and normalize the
// input, and are executed by handlers that depend only on ports.WorkOrderReader.
package queries
