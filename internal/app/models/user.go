package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email          string     `json:"email" db:"email" example:"volunteer@example.org"`                        // User's email address
	Password       string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName      string     `json:"firstName" db:"first_name" example:"Jane"`                                // User's first name
	LastName       string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	Role           Role       `json:"role" db:"role" example:"USER"`                                           // User's role
	OrganizationID *int64     `json:"organizationId,omitempty" db:"organization_id" example:"3"`               // Organization the user belongs to (nullable)
	IsActive       bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	Skills         []string   `json:"skills" db:"skills" example:"first-aid,logistics"`                        // Skills the volunteer offers
	CreatedAt      time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)

	// Related entities
	Organization *Organization `json:"organization,omitempty"`
}
