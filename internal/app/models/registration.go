package models

import "time"

// TaskRegistration represents one volunteer's application to one task.
// At most one registration exists per (userId, taskId) pair; the
// task_registrations table enforces this with a unique index.
type TaskRegistration struct {
	ID                 int64              `json:"id" db:"id"`
	TaskID             int64              `json:"taskId" db:"task_id"`
	UserID             int64              `json:"userId" db:"user_id"`
	Status             RegistrationStatus `json:"status" db:"status"`
	ApplicationMessage string             `json:"applicationMessage,omitempty" db:"application_message"`
	RejectionReason    *string            `json:"rejectionReason,omitempty" db:"rejection_reason"`
	RegisteredAt       time.Time          `json:"registeredAt" db:"registered_at"`
	RespondedAt        *time.Time         `json:"respondedAt,omitempty" db:"responded_at"`

	// Related entities
	Task *Task `json:"task,omitempty"`
	User *User `json:"user,omitempty"`
}
