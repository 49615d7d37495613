// Package services contains domain services: business logic that coordinates
// multiple aggregates and does not naturally belong to any single one.
//
// DispatchCoordinator owns the courier-to-order pairing rules, working over
// the Order aggregate and the CourierAssignment entity without performing any
// I/O; command handlers in the application layer load the aggregates, invoke
// the coordinator, and persist the results.
package services
