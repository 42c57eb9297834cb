package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"job-board-backend/internal/domain"
)

func TestCanCreate(t *testing.T) {
	seeker := domain.Principal{ID: 1, Role: domain.RoleSeeker}
	employer := domain.Principal{ID: 2, Role: domain.RoleEmployer}
	anonymous := domain.Principal{}

	tests := []struct {
		kind     domain.EntityKind
		seeker   bool
		employer bool
	}{
		{domain.KindCompany, false, true},
		{domain.KindVacancy, false, true},
		{domain.KindResume, true, false},
		{domain.KindApplication, true, false},
		{domain.KindFavorite, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.seeker, domain.CanCreate(seeker, tt.kind))
			assert.Equal(t, tt.employer, domain.CanCreate(employer, tt.kind))
			assert.False(t, domain.CanCreate(anonymous, tt.kind))
		})
	}

	assert.False(t, domain.CanCreate(employer, domain.EntityKind("unknown")))
}

func TestCanMutate(t *testing.T) {
	owner := domain.Principal{ID: 5, Role: domain.RoleEmployer}

	assert.True(t, domain.CanMutate(owner, 5))
	assert.False(t, domain.CanMutate(owner, 6))
	assert.False(t, domain.CanMutate(domain.Principal{}, 0))
}
