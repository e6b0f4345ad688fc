package models

import "time"

// Task represents a volunteer opportunity published by an organization
type Task struct {
	ID                int64      `json:"id" db:"id"`
	OrganizationID    int64      `json:"organizationId" db:"organization_id"`
	CreatedBy         int64      `json:"createdBy" db:"created_by"`
	Title             string     `json:"title" db:"title"`
	Description       string     `json:"description" db:"description"`
	Location          string     `json:"location,omitempty" db:"location"`
	StartDate         time.Time  `json:"startDate" db:"start_date"`
	EndDate           time.Time  `json:"endDate" db:"end_date"`
	Status            TaskStatus `json:"status" db:"status"`
	MaxVolunteers     int        `json:"maxVolunteers" db:"max_volunteers"`
	CurrentVolunteers int        `json:"currentVolunteers" db:"current_volunteers"`
	RequiredSkills    []string   `json:"requiredSkills" db:"required_skills"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organization *Organization `json:"organization,omitempty"`
}

// AcceptsRegistrations reports whether volunteers may still apply to the task
func (t *Task) AcceptsRegistrations(now time.Time) bool {
	return t.Status == TaskStatusActive && !t.EndDate.Before(now)
}

// HasCapacity reports whether another volunteer can be approved
func (t *Task) HasCapacity() bool {
	return t.CurrentVolunteers < t.MaxVolunteers
}
