// Package services provides domain services that span the Order aggregate,
// its items and the products they reference.
//
// The package includes:
//   - ProgressEngine: applies step and status transitions to an item or an
//     order and writes the matching history entry on the order
//   - StatusAggregator: derives the order status implied by an item change
//
// Services are pure: they mutate the aggregates they are given and never
// touch storage. Command handlers load the aggregates, call a service and
// persist the result in a unit of work.
package services
