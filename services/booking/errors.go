package booking

import "fmt"

type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrNoActiveOrder rejects a change request arriving before any booking
// was made in the session.
var ErrNoActiveOrder = &WorkflowError{
	Code:    "noActiveOrder",
	Message: "no active order in this session; book a flight before requesting a change",
}

func NewNoOffersError(msg string) error {
	return &WorkflowError{
		Code:    "noOffers",
		Message: msg,
	}
}
