package dto

import "time"

// UserResponse represents basic user information
type UserResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Role           string     `json:"role"`
	OrganizationID *int64     `json:"organizationId,omitempty"`
	IsActive       bool       `json:"isActive"`
	Skills         []string   `json:"skills,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
}

// UpdateUserRequest represents profile update data
type UpdateUserRequest struct {
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	Skills    []string `json:"skills,omitempty"`
}

// UpdateUserRoleRequest assigns a role and, for organization roles, the organization
type UpdateUserRoleRequest struct {
	Role           string `json:"role" binding:"required,oneof=USER ORGANIZATION_MEMBER ORGANIZATION_ADMIN SYSTEM_ADMIN"`
	OrganizationID *int64 `json:"organizationId,omitempty" binding:"omitempty,gt=0"`
}

// UserFilterRequest represents user list filter parameters
type UserFilterRequest struct {
	Role     *string `form:"role,omitempty"`
	Search   *string `form:"search,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}
