package courier

import (
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// WorkStatus represents a courier's availability for new assignments.
//
// Unlike order and assignment statuses, WorkStatus is not a hand-toggled
// state machine. It is derived: one authoritative function
// (Courier.RefreshWorkStatus) recomputes it from the active flag and the
// number of open stops, so the flag can never drift from reality.
type WorkStatus int

const (
	// WorkStatusUnknown represents an invalid or undefined work status.
	WorkStatusUnknown WorkStatus = iota

	// Available means the courier is active and has no open stops.
	Available

	// Busy means the courier is active and has at least one open stop.
	Busy

	// Inactive means the courier is not working and must not receive proposals.
	Inactive
)

func getWorkStatusStrings() map[WorkStatus]string {
	return map[WorkStatus]string{
		WorkStatusUnknown: "unknown",
		Available:         "available",
		Busy:              "busy",
		Inactive:          "inactive",
	}
}

// WorkStatusFromString parses the persisted string representation.
func WorkStatusFromString(s string) (WorkStatus, error) {
	for status, str := range getWorkStatusStrings() {
		if status != WorkStatusUnknown && str == s {
			return status, nil
		}
	}
	return WorkStatusUnknown, errs.NewValueIsInvalidErrorWithCause("work status is invalid",
		fmt.Errorf("%q is not a valid work status", s))
}

// Validate checks if the WorkStatus value is valid.
func (s WorkStatus) Validate() error {
	if s != Available && s != Busy && s != Inactive {
		return errs.NewValueIsInvalidErrorWithCause("work status is invalid",
			fmt.Errorf("%d is not a valid work status", s))
	}
	return nil
}

// String returns the persisted name of the work status.
func (s WorkStatus) String() string {
	if str, ok := getWorkStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
