package model

// Role is one of the four ranked admin tiers.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAgency     Role = "agency"
	RoleAdmin      Role = "admin"
	RoleViewer     Role = "viewer"
)

// AllRoles lists every valid role, highest rank first.
var AllRoles = []Role{RoleSuperadmin, RoleAgency, RoleAdmin, RoleViewer}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAgency, RoleAdmin, RoleViewer:
		return true
	}
	return false
}

// CanModifyContent reports whether r may create, update, or delete
// content entities (products, categories, jobs, submissions).
// Every role except viewer may write.
func (r Role) CanModifyContent() bool {
	return r.Valid() && r != RoleViewer
}

// CanManageUsers reports whether r may access user management at all.
func (r Role) CanManageUsers() bool {
	return r.Valid() && r != RoleViewer
}

// allowedRoles is the canonical per-role allow-list: the set of roles an
// actor may create, edit, or delete. Granting superadmin stays exclusive
// to superadmins.
var allowedRoles = map[Role][]Role{
	RoleSuperadmin: {RoleSuperadmin, RoleAgency, RoleAdmin, RoleViewer},
	RoleAgency:     {RoleAgency, RoleAdmin, RoleViewer},
	RoleAdmin:      {RoleAdmin, RoleViewer},
	RoleViewer:     {},
}

// AllowedRoles returns the set of roles r may administer. The returned
// slice is a copy; callers may mutate it freely.
func (r Role) AllowedRoles() []Role {
	src := allowedRoles[r]
	out := make([]Role, len(src))
	copy(out, src)
	return out
}

// CanAdminister reports whether an actor with role r may act on a user
// holding target. Self-editing bypasses this check at the call site; this
// function is strictly the rank comparison.
func (r Role) CanAdminister(target Role) bool {
	for _, allowed := range allowedRoles[r] {
		if allowed == target {
			return true
		}
	}
	return false
}
