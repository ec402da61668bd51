package route

import (
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// StopStatus represents the state of a single delivery visit.
//
// Stops are batch-created EnRoute when their assignment is accepted. A
// completion always overwrites the status with the reported outcome; the
// completion handler, not this type, guards the one-time side effects by
// checking whether the stop had already been delivered. Open stops (Pending
// or EnRoute) are what keep a courier busy.
type StopStatus int

const (
	// StopStatusUnknown represents an invalid or undefined status.
	StopStatusUnknown StopStatus = iota

	// StopPending is a registered visit not yet on an active route.
	StopPending

	// StopEnRoute is a visit on an accepted assignment's active route.
	StopEnRoute

	// StopDelivered is a visit completed successfully.
	StopDelivered

	// StopFailed is a visit that could not be completed.
	StopFailed
)

func getStopStatusStrings() map[StopStatus]string {
	return map[StopStatus]string{
		StopStatusUnknown: "unknown",
		StopPending:       "pending",
		StopEnRoute:       "en_ruta",
		StopDelivered:     "delivered",
		StopFailed:        "failed",
	}
}

// StopStatusFromString parses the persisted string representation.
func StopStatusFromString(s string) (StopStatus, error) {
	for status, str := range getStopStatusStrings() {
		if status != StopStatusUnknown && str == s {
			return status, nil
		}
	}
	return StopStatusUnknown, errs.NewValueIsInvalidErrorWithCause("stop status is invalid",
		fmt.Errorf("%q is not a valid stop status", s))
}

// Validate checks if the StopStatus value is valid.
func (s StopStatus) Validate() error {
	if s != StopPending && s != StopEnRoute && s != StopDelivered && s != StopFailed {
		return errs.NewValueIsInvalidErrorWithCause("stop status is invalid",
			fmt.Errorf("%d is not a valid stop status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s StopStatus) String() string {
	if str, ok := getStopStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOpen reports whether the stop still awaits a delivery outcome.
func (s StopStatus) IsOpen() bool {
	return s == StopPending || s == StopEnRoute
}
