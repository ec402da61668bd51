// Package order provides domain entities and business logic for order
// management in the delivery system. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - LineItem: A value object for one product entry with quantity and unit price
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, customer reference, and at least one line item
//   - Order status follows a defined workflow ending in Delivered or Failed
//   - The unit count (sum of line item quantities) is what vehicle capacity
//     checks are made against
package order
