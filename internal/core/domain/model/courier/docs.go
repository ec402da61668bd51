// Package courier provides the Courier aggregate root for the delivery
// system.
//
// A courier's work status (available, busy, inactive) is a derived value:
// RefreshWorkStatus recomputes it from the active flag and the current open
// stop count. Mutation sites never toggle the status directly.
package courier
