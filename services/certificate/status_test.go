package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/apperror"
	courseModels "learnhub/models/course"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from   courseModels.CertificateStatus
		action Action
		want   courseModels.CertificateStatus
	}{
		{courseModels.StatusPending, ActionApprove, courseModels.StatusApproved},
		{courseModels.StatusRejected, ActionApprove, courseModels.StatusApproved},
		{courseModels.StatusApproved, ActionApprove, courseModels.StatusApproved},
		{courseModels.StatusPending, ActionDecline, courseModels.StatusRejected},
		{courseModels.StatusApproved, ActionDecline, courseModels.StatusRejected},
		{courseModels.StatusRejected, ActionDecline, courseModels.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.action), func(t *testing.T) {
			got, err := Transition(tt.from, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == courseModels.StatusApproved, got.IsIssued())
		})
	}
}

func TestTransition_Invalid(t *testing.T) {
	_, err := Transition("archived", ActionApprove)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))

	_, err = Transition(courseModels.StatusPending, Action("reopen"))
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}
