package auth

import "github.com/volunteersync/backend/internal/app/models"

// Permission is a capability key checked before privileged operations.
// Handlers and services check keys instead of comparing role names, so a
// role's reach is defined in exactly one place.
type Permission string

const (
	PermTaskCreate Permission = "task:create"
	PermTaskUpdate Permission = "task:update"
	PermTaskDelete Permission = "task:delete"

	PermOrganizationCreate Permission = "organization:create"
	PermOrganizationUpdate Permission = "organization:update"
	PermOrganizationDelete Permission = "organization:delete"
	PermOrganizationVerify Permission = "organization:verify"

	PermRegistrationApply   Permission = "registration:apply"
	PermRegistrationDecide  Permission = "registration:decide"
	PermRegistrationListAll Permission = "registration:list_all"

	PermUserList   Permission = "user:list"
	PermUserManage Permission = "user:manage"
)

// rolePermissions defines the capability set of each role. Organization
// scoping (an organization admin may only decide registrations of their own
// organization's tasks) is enforced separately by the Authorizer. Members
// manage tasks but registration decisions are reserved for admins.
var rolePermissions = map[models.Role][]Permission{
	models.RoleUser: {
		PermRegistrationApply,
	},
	models.RoleOrganizationMember: {
		PermRegistrationApply,
		PermTaskCreate,
		PermTaskUpdate,
	},
	models.RoleOrganizationAdmin: {
		PermRegistrationApply,
		PermRegistrationDecide,
		PermTaskCreate,
		PermTaskUpdate,
		PermTaskDelete,
		PermOrganizationUpdate,
	},
	models.RoleSystemAdmin: {
		PermRegistrationApply,
		PermRegistrationDecide,
		PermRegistrationListAll,
		PermTaskCreate,
		PermTaskUpdate,
		PermTaskDelete,
		PermOrganizationCreate,
		PermOrganizationUpdate,
		PermOrganizationDelete,
		PermOrganizationVerify,
		PermUserList,
		PermUserManage,
	},
}

// RoleHasPermission reports whether a role carries a capability key
func RoleHasPermission(role models.Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller as seen by authorization checks
type Principal struct {
	UserID         int64
	Role           models.Role
	OrganizationID *int64
}

// HasPermission reports whether the principal carries a capability key
func (p Principal) HasPermission(perm Permission) bool {
	return RoleHasPermission(p.Role, perm)
}

// IsSystemAdmin reports whether the principal has the system administrator role
func (p Principal) IsSystemAdmin() bool {
	return p.Role == models.RoleSystemAdmin
}

// BelongsToOrganization reports whether the principal is a member of the organization
func (p Principal) BelongsToOrganization(organizationID int64) bool {
	return p.OrganizationID != nil && *p.OrganizationID == organizationID
}
