// Package services provides stateless domain services for the assignment
// engine.
//
// The package includes:
//   - Sequencer: nearest-neighbor visiting order over waypoints, with
//     invalid-coordinate waypoints pushed to the tail
//   - CourierLocator: proximity search over active couriers with vehicles
//   - RouteEstimator: external routing estimates with a geodesic fallback
//     that never surfaces external failures
//
// Services hold no persistent state and operate purely on domain values;
// handlers load aggregates, invoke services, and persist the results.
package services
