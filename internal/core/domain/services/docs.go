// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - PricingEngine: delivery price from distance, weight and breadth
//   - AssignmentCoordinator: binds accepted parcels to available drivers and
//     releases drivers when a delivery completes or an assignment is revoked
//
// Both services are stateless and operate on in-memory aggregates. Persisting the
// result atomically is the job of the command handlers and the unit of work.
package services
