package auth

import (
	"strings"

	"github.com/naledi/cmcs/internal/app/models"
)

// AccessPolicy maps each role to the route prefixes it may invoke. The
// mapping is static; it is consulted as a pure predicate before any
// workflow call and never raises inside business logic.
type AccessPolicy struct {
	allowed map[models.RoleType][]string
	public  []string
}

// NewAccessPolicy builds the default CMCS policy table.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{
		allowed: map[models.RoleType][]string{
			models.RoleHR:                   {"/hr", "/claims", "/auth"},
			models.RoleProgrammeCoordinator: {"/claims", "/auth"},
			models.RoleAcademicManager:      {"/claims", "/auth"},
			models.RoleLecturer:             {"/claims", "/auth"},
		},
		public: []string{"/auth/login"},
	}
}

// CanAccess reports whether the role may invoke the given route path.
// The path is matched against the policy prefixes relative to the API root.
func (p *AccessPolicy) CanAccess(role models.RoleType, path string) bool {
	prefixes, ok := p.allowed[role]
	if !ok {
		return false
	}
	for _, prefix := range prefixes {
		if matchesPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AnonymousCanAccess reports whether an unauthenticated request may invoke
// the given route path. Only the login operation is open.
func (p *AccessPolicy) AnonymousCanAccess(path string) bool {
	for _, prefix := range p.public {
		if matchesPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// matchesPrefix matches on whole path segments so "/hr" does not leak
// access to "/hrx".
func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, "/")
}
