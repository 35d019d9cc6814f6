package domain

import (
	"errors"
	"time"
)

// Role is a fixed permission role assigned to a user.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleAdministrator Role = "administrator"
	RoleStafPPAT      Role = "staf_ppat"
	RoleStafNotaris   Role = "staf_notaris"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdministrator, RoleStafPPAT, RoleStafNotaris:
		return true
	}
	return false
}

// Capability names a single permitted action. Handlers gate on
// capabilities, never on raw role strings.
type Capability string

const (
	CapCasesRead       Capability = "cases:read"
	CapCasesWrite      Capability = "cases:write"
	CapCasesTransition Capability = "cases:transition"
	CapCasesCancel     Capability = "cases:cancel"
	CapClientsRead     Capability = "clients:read"
	CapClientsWrite    Capability = "clients:write"
	CapFinanceRead     Capability = "finance:read"
	CapFinanceWrite    Capability = "finance:write"
	CapWorksheetsRead  Capability = "worksheets:read"
	CapWorksheetsWrite Capability = "worksheets:write"
	CapUsersManage     Capability = "users:manage"
)

// staffCaps is the shared capability set of the two staff roles.
var staffCaps = []Capability{
	CapCasesRead, CapCasesWrite, CapCasesTransition,
	CapClientsRead, CapClientsWrite,
	CapFinanceRead, CapWorksheetsRead, CapWorksheetsWrite,
}

var roleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {
		CapCasesRead, CapCasesWrite, CapCasesTransition, CapCasesCancel,
		CapClientsRead, CapClientsWrite,
		CapFinanceRead, CapFinanceWrite,
		CapWorksheetsRead, CapWorksheetsWrite,
		CapUsersManage,
	},
	RoleAdministrator: {
		CapCasesRead, CapCasesWrite, CapCasesTransition, CapCasesCancel,
		CapClientsRead, CapClientsWrite,
		CapFinanceRead, CapFinanceWrite,
		CapWorksheetsRead, CapWorksheetsWrite,
	},
	RoleStafPPAT:    staffCaps,
	RoleStafNotaris: staffCaps,
}

// CapabilitiesFor returns the capability set of a role. An unknown or
// empty role yields an empty set: a user without a role is valid but
// gets minimal access.
func CapabilitiesFor(role Role) map[Capability]struct{} {
	caps := make(map[Capability]struct{})
	for _, c := range roleCapabilities[role] {
		caps[c] = struct{}{}
	}
	return caps
}

// HasCapability reports whether the role grants the given capability.
func HasCapability(role Role, cap Capability) bool {
	_, ok := CapabilitiesFor(role)[cap]
	return ok
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
