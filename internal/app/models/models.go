package models

// RoleType defines the user role type
type RoleType string

const (
	RoleHR                   RoleType = "HR"
	RoleProgrammeCoordinator RoleType = "PROGRAMME_COORDINATOR"
	RoleAcademicManager      RoleType = "ACADEMIC_MANAGER"
	RoleLecturer             RoleType = "LECTURER"
)

// Roles lists every assignable role.
var Roles = []RoleType{RoleHR, RoleProgrammeCoordinator, RoleAcademicManager, RoleLecturer}

// Valid reports whether the role is one of the closed set.
func (r RoleType) Valid() bool {
	switch r {
	case RoleHR, RoleProgrammeCoordinator, RoleAcademicManager, RoleLecturer:
		return true
	}
	return false
}

// ClaimStatus defines the claim workflow status
type ClaimStatus string

const (
	StatusDraft     ClaimStatus = "DRAFT"
	StatusSubmitted ClaimStatus = "SUBMITTED"
	StatusVerified  ClaimStatus = "VERIFIED"
	StatusApproved  ClaimStatus = "APPROVED"
	StatusProcessed ClaimStatus = "PROCESSED"
	StatusRejected  ClaimStatus = "REJECTED"
)

// Pending reports whether a claim in this status is awaiting an approver.
func (s ClaimStatus) Pending() bool {
	switch s {
	case StatusSubmitted, StatusVerified, StatusApproved:
		return true
	}
	return false
}

// Terminal reports whether no further workflow transition is defined.
func (s ClaimStatus) Terminal() bool {
	return s == StatusProcessed || s == StatusRejected
}
