package domain

// Principal is the request-scoped identity attached by the authentication
// middleware. Authorities holds ROLE_-prefixed role names plus the granular
// permission names of those roles, recomputed on every request so revocation
// takes effect immediately.
type Principal struct {
	Subject     string
	Authorities map[string]struct{}
}

// HasAuthority reports whether the principal carries the named authority.
func (p *Principal) HasAuthority(name string) bool {
	_, ok := p.Authorities[name]
	return ok
}

// NewPrincipal builds a principal from a user's current roles: one
// ROLE_<name> authority per role and one authority per attached permission.
func NewPrincipal(subject string, roles []Role) *Principal {
	auths := make(map[string]struct{})
	for _, role := range roles {
		auths[RolePrefix+role.Name] = struct{}{}
		for _, perm := range role.Permissions {
			auths[perm.Name] = struct{}{}
		}
	}
	return &Principal{Subject: subject, Authorities: auths}
}
