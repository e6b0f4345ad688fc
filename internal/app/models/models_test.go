package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	valid := []Role{RoleUser, RoleOrganizationMember, RoleOrganizationAdmin, RoleSystemAdmin}
	for _, r := range valid {
		assert.True(t, r.IsValid(), "role %s should be valid", r)
	}

	assert.False(t, Role("ADMIN").IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("user").IsValid())
}

func TestTaskStatusIsValid(t *testing.T) {
	valid := []TaskStatus{TaskStatusDraft, TaskStatusActive, TaskStatusCompleted, TaskStatusCancelled}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}

	assert.False(t, TaskStatus("OPEN").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

func TestRegistrationStatusIsValid(t *testing.T) {
	valid := []RegistrationStatus{
		RegistrationStatusPending,
		RegistrationStatusApproved,
		RegistrationStatusRejected,
		RegistrationStatusCompleted,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}

	assert.False(t, RegistrationStatus("DECLINED").IsValid())
	assert.False(t, RegistrationStatus("").IsValid())
}

func TestRegistrationStatusIsTerminal(t *testing.T) {
	assert.False(t, RegistrationStatusPending.IsTerminal())
	assert.False(t, RegistrationStatusApproved.IsTerminal())
	assert.True(t, RegistrationStatusRejected.IsTerminal())
	assert.True(t, RegistrationStatusCompleted.IsTerminal())
}

func TestTaskAcceptsRegistrations(t *testing.T) {
	now := time.Now()

	task := &Task{Status: TaskStatusActive, EndDate: now.Add(24 * time.Hour)}
	assert.True(t, task.AcceptsRegistrations(now))

	// end date exactly now is still acceptable
	task = &Task{Status: TaskStatusActive, EndDate: now}
	assert.True(t, task.AcceptsRegistrations(now))

	task = &Task{Status: TaskStatusActive, EndDate: now.Add(-time.Minute)}
	assert.False(t, task.AcceptsRegistrations(now), "expired task should not accept registrations")

	for _, status := range []TaskStatus{TaskStatusDraft, TaskStatusCompleted, TaskStatusCancelled} {
		task = &Task{Status: status, EndDate: now.Add(24 * time.Hour)}
		assert.False(t, task.AcceptsRegistrations(now), "status %s should not accept registrations", status)
	}
}

func TestTaskHasCapacity(t *testing.T) {
	task := &Task{MaxVolunteers: 2, CurrentVolunteers: 0}
	assert.True(t, task.HasCapacity())

	task.CurrentVolunteers = 1
	assert.True(t, task.HasCapacity())

	task.CurrentVolunteers = 2
	assert.False(t, task.HasCapacity())
}
