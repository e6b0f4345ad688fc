package dto

import "time"

// --- Request DTOs ---

// CreateTaskRequest represents task creation data. OrganizationID is required
// for system administrators and optional for organization staff, who may only
// name their own organization.
type CreateTaskRequest struct {
	OrganizationID *int64    `json:"organizationId,omitempty" binding:"omitempty,gt=0"`
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	MaxVolunteers  int       `json:"maxVolunteers" binding:"required,min=1"`
	RequiredSkills []string  `json:"requiredSkills,omitempty"`
}

// UpdateTaskRequest represents task update data
type UpdateTaskRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	MaxVolunteers  int       `json:"maxVolunteers" binding:"required,min=1"`
	RequiredSkills []string  `json:"requiredSkills,omitempty"`
}

// UpdateTaskStatusRequest transitions a task between lifecycle states
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ACTIVE COMPLETED CANCELLED"`
}

// TaskFilterRequest represents task list filter parameters
type TaskFilterRequest struct {
	OrganizationID *int64  `form:"organizationId,omitempty"`
	Status         *string `form:"status,omitempty"`
	Search         *string `form:"search,omitempty"`
	Page           int     `form:"page,default=1" binding:"min=1"`
	PageSize       int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// TaskResponse represents basic task information
type TaskResponse struct {
	ID                int64                 `json:"id"`
	OrganizationID    int64                 `json:"organizationId"`
	CreatedBy         int64                 `json:"createdBy"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Location          string                `json:"location,omitempty"`
	StartDate         time.Time             `json:"startDate"`
	EndDate           time.Time             `json:"endDate"`
	Status            string                `json:"status"`
	MaxVolunteers     int                   `json:"maxVolunteers"`
	CurrentVolunteers int                   `json:"currentVolunteers"`
	RequiredSkills    []string              `json:"requiredSkills,omitempty"`
	Organization      *OrganizationResponse `json:"organization,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}
