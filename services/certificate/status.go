package certificate

import (
	"fmt"

	"learnhub/apperror"
	courseModels "learnhub/models/course"
)

// Action is an educator decision on a request
type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)

// Transition returns the status reached by applying action to current.
// Approve and decline are legal from every state and repeating one is a no-op,
// so a rejected request can be re-approved directly.
func Transition(current courseModels.CertificateStatus, action Action) (courseModels.CertificateStatus, error) {
	if !current.Valid() {
		return current, apperror.Conflict(fmt.Sprintf("unknown certificate status %q", current))
	}
	switch action {
	case ActionApprove:
		return courseModels.StatusApproved, nil
	case ActionDecline:
		return courseModels.StatusRejected, nil
	default:
		return current, apperror.Conflict(fmt.Sprintf("unknown certificate action %q", action))
	}
}
