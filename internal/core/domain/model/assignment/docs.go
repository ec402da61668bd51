// Package assignment provides the Assignment aggregate root: the pairing of
// one courier to a batch of orders on one route.
//
// The package includes:
//   - Assignment: identity, courier/route references, linked order IDs, and
//     the proposal lifecycle
//   - Status: a state machine with a single non-terminal state (pending) and
//     three terminal outcomes (accepted, rejected, expired)
//
// Key business rules:
//   - Capacity is enforced when the courier accepts, not when the proposal
//     is created; acceptance may split off detached orders
//   - Orders linked to a terminal assignment become eligible for
//     re-assignment; the links themselves are kept for history
package assignment
