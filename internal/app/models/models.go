package models

// Role defines the user role type
type Role string

const (
	RoleUser               Role = "USER"
	RoleOrganizationMember Role = "ORGANIZATION_MEMBER"
	RoleOrganizationAdmin  Role = "ORGANIZATION_ADMIN"
	RoleSystemAdmin        Role = "SYSTEM_ADMIN"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOrganizationMember, RoleOrganizationAdmin, RoleSystemAdmin:
		return true
	}
	return false
}

// TaskStatus defines the lifecycle status of a task
type TaskStatus string

const (
	TaskStatusDraft     TaskStatus = "DRAFT"
	TaskStatusActive    TaskStatus = "ACTIVE"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

// IsValid reports whether the task status is one of the known statuses
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusDraft, TaskStatusActive, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// RegistrationStatus defines the lifecycle status of a task registration
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "PENDING"
	RegistrationStatusApproved  RegistrationStatus = "APPROVED"
	RegistrationStatusRejected  RegistrationStatus = "REJECTED"
	RegistrationStatusCompleted RegistrationStatus = "COMPLETED"
)

// IsValid reports whether the registration status is one of the known statuses
func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusApproved,
		RegistrationStatusRejected, RegistrationStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions
func (s RegistrationStatus) IsTerminal() bool {
	return s == RegistrationStatusRejected || s == RegistrationStatusCompleted
}

// NotificationType identifies what kind of event produced a notification
type NotificationType string

const (
	NotificationRegistrationReceived NotificationType = "REGISTRATION_RECEIVED"
	NotificationRegistrationApproved NotificationType = "REGISTRATION_APPROVED"
	NotificationRegistrationRejected NotificationType = "REGISTRATION_REJECTED"
	NotificationTaskCompleted        NotificationType = "TASK_COMPLETED"
)
