package domain

// Principal is the resolved identity of the caller. It is passed explicitly
// into every service call so tests can substitute identities without any
// ambient security context.
type Principal struct {
	ID    uint64
	Name  string
	Roles []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool { return p.HasRole(RoleAdmin) }
