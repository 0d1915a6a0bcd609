package internal

type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleCreator    Role = "Creator"
	RoleApprover   Role = "Approver"
	RoleUser       Role = "User"
)

// Roles lists every role a user can hold.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleCreator, RoleApprover, RoleUser}

func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// IsAdmin reports whether the role sees every department's records.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
