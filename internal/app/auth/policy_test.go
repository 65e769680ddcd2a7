package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naledi/cmcs/internal/app/models"
)

func TestAccessPolicyTable(t *testing.T) {
	policy := NewAccessPolicy()

	tests := []struct {
		name  string
		role  models.RoleType
		path  string
		allow bool
	}{
		{"hr reaches hr routes", models.RoleHR, "/hr/lecturers", true},
		{"hr reaches claims", models.RoleHR, "/claims/pending", true},
		{"hr reaches auth", models.RoleHR, "/auth/me", true},
		{"coordinator reaches claims", models.RoleProgrammeCoordinator, "/claims/pending", true},
		{"coordinator denied hr routes", models.RoleProgrammeCoordinator, "/hr/users", false},
		{"manager reaches claims", models.RoleAcademicManager, "/claims/9/approve", true},
		{"manager denied hr routes", models.RoleAcademicManager, "/hr/dashboard", false},
		{"lecturer reaches claims", models.RoleLecturer, "/claims/my", true},
		{"lecturer denied hr routes", models.RoleLecturer, "/hr/users", false},
		{"unknown role denied everything", models.RoleType("AUDITOR"), "/claims/my", false},
		{"segment boundary respected", models.RoleProgrammeCoordinator, "/claimsx/evil", false},
		{"exact prefix allowed", models.RoleHR, "/hr", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allow, policy.CanAccess(tt.role, tt.path))
		})
	}
}

func TestAnonymousOnlyLogin(t *testing.T) {
	policy := NewAccessPolicy()

	assert.True(t, policy.AnonymousCanAccess("/auth/login"))
	assert.False(t, policy.AnonymousCanAccess("/auth/me"))
	assert.False(t, policy.AnonymousCanAccess("/claims/my"))
	assert.False(t, policy.AnonymousCanAccess("/hr/users"))
}
