package dto

import "time"

// --- Request DTOs ---

// CreateOrganizationRequest represents organization creation data
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" binding:"omitempty,url"`
}

// UpdateOrganizationRequest represents organization update data
type UpdateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" binding:"omitempty,url"`
}

// OrganizationFilterRequest represents organization filter parameters
type OrganizationFilterRequest struct {
	Verified *bool   `form:"verified,omitempty"`
	Search   *string `form:"search,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// OrganizationResponse represents basic organization information
type OrganizationResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
