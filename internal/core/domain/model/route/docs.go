// Package route provides the Route aggregate: a trip header plus its
// ordered delivery stops.
//
// The package includes:
//   - Route: endpoints and estimated totals for an ordered set of stops
//   - Stop: one physical visit, sequenced 1..N within its route
//   - StopStatus: pending / en_ruta / delivered / failed, where pending and
//     en_ruta count as open
//
// Routes and stops reference each other and their assignment by ID only.
// Traversal goes through repositories, avoiding cyclic in-memory pointers.
package route
