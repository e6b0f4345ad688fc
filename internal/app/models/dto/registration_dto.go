package dto

import "time"

// --- Request DTOs ---

// CreateRegistrationRequest represents a volunteer applying for a task
type CreateRegistrationRequest struct {
	TaskID             int64  `json:"taskId" binding:"required,gt=0"`
	ApplicationMessage string `json:"applicationMessage,omitempty" binding:"max=1000"`
}

// UpdateRegistrationStatusRequest decides a pending registration
type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Reason string `json:"reason,omitempty" binding:"max=1000"`
}

// RejectRegistrationRequest carries an optional rejection reason
type RejectRegistrationRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=1000"`
}

// RegistrationFilterRequest represents registration list filter parameters
type RegistrationFilterRequest struct {
	Status   *string `form:"status,omitempty"`
	TaskID   *int64  `form:"taskId,omitempty"`
	UserID   *int64  `form:"userId,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// RegistrationResponse represents a task registration
type RegistrationResponse struct {
	ID                 int64         `json:"id"`
	TaskID             int64         `json:"taskId"`
	UserID             int64         `json:"userId"`
	Status             string        `json:"status"`
	ApplicationMessage string        `json:"applicationMessage,omitempty"`
	RejectionReason    *string       `json:"rejectionReason,omitempty"`
	RegisteredAt       time.Time     `json:"registeredAt"`
	RespondedAt        *time.Time    `json:"respondedAt,omitempty"`
	Task               *TaskResponse `json:"task,omitempty"`
	User               *UserResponse `json:"user,omitempty"`
}
