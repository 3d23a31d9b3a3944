package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			want := from == StatusPending && to != StatusPending
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApplication_Approve(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	a := &Application{Status: StatusPending}

	require.NoError(t, a.Approve("mgr", now))
	assert.Equal(t, StatusApproved, a.Status)
	assert.Equal(t, "mgr", a.DecidedBy)
	require.NotNil(t, a.ApprovedAt)
	assert.True(t, a.ApprovedAt.Equal(now))

	assert.ErrorIs(t, a.Approve("mgr", now), ErrInvalidTransition)
	assert.ErrorIs(t, a.Reject("mgr", "late", now), ErrInvalidTransition)
	assert.ErrorIs(t, a.Cancel(now), ErrInvalidState)
}

func TestApplication_Reject(t *testing.T) {
	now := time.Now().UTC()
	a := &Application{Status: StatusPending}

	require.NoError(t, a.Reject("adm", "income too low", now))
	assert.Equal(t, StatusRejected, a.Status)
	assert.Equal(t, "income too low", a.RejectionReason)
	assert.NotNil(t, a.RejectedAt)
	assert.Nil(t, a.ApprovedAt)
}

func TestApplication_Cancel(t *testing.T) {
	now := time.Now().UTC()
	a := &Application{Status: StatusPending}

	require.NoError(t, a.Cancel(now))
	assert.Equal(t, StatusCancelled, a.Status)
	assert.NotNil(t, a.CancelledAt)
	assert.ErrorIs(t, a.Cancel(now), ErrInvalidState)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, StatusPending.Terminal())
}

func TestApplicantName(t *testing.T) {
	a := &Application{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", a.ApplicantName())
}
