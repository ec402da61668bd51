package assignment

import (
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// Status represents the lifecycle state of an assignment proposal.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          ├──> Rejected
//	          └──> Expired
//
// Accepted, Rejected and Expired are all terminal; no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a proposed assignment awaiting the
	// courier's decision.
	Pending

	// Accepted indicates the courier took the assignment. Final state.
	Accepted

	// Rejected indicates the courier declined, a sibling proposal won the
	// route, or a cleanup sweep discarded the proposal. Final state.
	Rejected

	// Expired indicates the proposal aged out before a decision. Final state.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Pending:  "pending",
		Accepted: "accepted",
		Rejected: "rejected",
		Expired:  "expired",
	}
}

// StatusFromString parses the persisted string representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid assignment status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Pending && s != Accepted && s != Rejected && s != Expired {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected || s == Expired
}

// Accept transitions the status from Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if err := s.validatePending("accept"); err != nil {
		return 0, err
	}
	return Accepted, nil
}

// Reject transitions the status from Pending to Rejected.
func (s Status) Reject() (Status, error) {
	if err := s.validatePending("reject"); err != nil {
		return 0, err
	}
	return Rejected, nil
}

// Expire transitions the status from Pending to Expired.
func (s Status) Expire() (Status, error) {
	if err := s.validatePending("expire"); err != nil {
		return 0, err
	}
	return Expired, nil
}

func (s Status) validatePending(verb string) error {
	if s != Pending {
		return errs.NewInvalidStateError("assignment",
			fmt.Sprintf("cannot %s an assignment in status %s", verb, s.String()))
	}
	return nil
}
