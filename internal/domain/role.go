package domain

// Well-known role names seeded at startup.
const (
	RoleMaster    = "MASTER"
	RoleUser      = "USER"
	RoleAdminMain = "ADMIN_MAIN"
)

// RolePrefix marks role-derived authorities, distinguishing them from
// granular permission names in an authority set.
const RolePrefix = "ROLE_"

// Role groups a set of granular permissions under a name (e.g. MASTER).
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// Permission is a granular capability (e.g. CADASTRAR_EMPRESA).
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Route       string `json:"route,omitempty"`
}
