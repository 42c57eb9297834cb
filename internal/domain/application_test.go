package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"job-board-backend/internal/domain"
)

func TestApplicationStatus_CanTransitionTo(t *testing.T) {
	const (
		pending  = domain.ApplicationStatusPending
		reviewed = domain.ApplicationStatusReviewed
		accepted = domain.ApplicationStatusAccepted
		rejected = domain.ApplicationStatusRejected
	)

	tests := []struct {
		from, to domain.ApplicationStatus
		want     bool
	}{
		{pending, reviewed, true},
		{pending, accepted, true},
		{pending, rejected, true},
		{reviewed, accepted, true},
		{reviewed, rejected, true},
		{reviewed, reviewed, true},
		{accepted, accepted, true},
		{reviewed, pending, false},
		{accepted, reviewed, false},
		{accepted, rejected, false},
		{rejected, accepted, false},
		{rejected, reviewed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApplicationStatus_IsFinal(t *testing.T) {
	assert.True(t, domain.ApplicationStatusAccepted.IsFinal())
	assert.True(t, domain.ApplicationStatusRejected.IsFinal())
	assert.False(t, domain.ApplicationStatusPending.IsFinal())
	assert.False(t, domain.ApplicationStatusReviewed.IsFinal())
}
