package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
)

func actor(id int64, role models.RoleType) models.User {
	return models.User{ID: id, FullName: "Test Actor", Role: role}
}

func claimIn(status models.ClaimStatus) models.Claim {
	return models.Claim{ID: 7, LecturerID: 101, Month: "2025-09", Status: status}
}

func TestApproveFollowsChain(t *testing.T) {
	tests := []struct {
		name   string
		role   models.RoleType
		source models.ClaimStatus
		target models.ClaimStatus
	}{
		{"coordinator verifies submitted", models.RoleProgrammeCoordinator, models.StatusSubmitted, models.StatusVerified},
		{"manager approves verified", models.RoleAcademicManager, models.StatusVerified, models.StatusApproved},
		{"hr processes approved", models.RoleHR, models.StatusApproved, models.StatusProcessed},
	}

	now := time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := Transition(claimIn(tt.source), actor(42, tt.role), ActionApprove, "", now)
			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.Status)
			require.NotNil(t, updated.ApprovedBy)
			assert.Equal(t, int64(42), *updated.ApprovedBy)
			require.NotNil(t, updated.ApprovedAt)
			assert.Equal(t, now, *updated.ApprovedAt)
		})
	}
}

func TestApproveWrongSourceStateFails(t *testing.T) {
	// An Academic Manager may only advance Verified claims; a Submitted claim
	// is out of order even though the role itself is a legal actor.
	claim := claimIn(models.StatusSubmitted)
	updated, err := Transition(claim, actor(3, models.RoleAcademicManager), ActionApprove, "", time.Now())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
	assert.Equal(t, models.StatusSubmitted, updated.Status, "claim must be left unchanged")
	assert.Nil(t, updated.ApprovedBy)
}

func TestLecturerMayNotTransition(t *testing.T) {
	for _, status := range []models.ClaimStatus{models.StatusSubmitted, models.StatusVerified, models.StatusApproved} {
		_, err := Transition(claimIn(status), actor(9, models.RoleLecturer), ActionApprove, "", time.Now())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

		_, err = Transition(claimIn(status), actor(9, models.RoleLecturer), ActionReject, "bad", time.Now())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	}
}

func TestTerminalStatesAcceptNoFurtherTransition(t *testing.T) {
	tests := []struct {
		status models.ClaimStatus
		role   models.RoleType
	}{
		{models.StatusProcessed, models.RoleHR},
		{models.StatusRejected, models.RoleProgrammeCoordinator},
		{models.StatusDraft, models.RoleProgrammeCoordinator},
	}
	for _, tt := range tests {
		updated, err := Transition(claimIn(tt.status), actor(5, tt.role), ActionReject, "late objection", time.Now())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
		assert.Equal(t, tt.status, updated.Status)
	}
}

func TestRejectRequiresComment(t *testing.T) {
	for _, comment := range []string{"", "   ", "\t\n"} {
		updated, err := Transition(claimIn(models.StatusVerified), actor(2, models.RoleAcademicManager), ActionReject, comment, time.Now())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
		assert.Equal(t, apperrors.RuleCommentRequired, apperrors.ValidationCode(err))
		assert.Equal(t, models.StatusVerified, updated.Status, "claim must be left unchanged")
		assert.Nil(t, updated.RejectedBy)
	}
}

func TestRejectFromEveryPendingState(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		role   models.RoleType
		source models.ClaimStatus
	}{
		{models.RoleProgrammeCoordinator, models.StatusSubmitted},
		{models.RoleAcademicManager, models.StatusVerified},
		{models.RoleHR, models.StatusApproved},
		{models.RoleHR, models.StatusSubmitted}, // any approver role may reject any pending claim
	}
	for _, tt := range tests {
		updated, err := Transition(claimIn(tt.source), actor(11, tt.role), ActionReject, "hours do not match register", now)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, updated.Status)
		require.NotNil(t, updated.RejectedBy)
		assert.Equal(t, int64(11), *updated.RejectedBy)
		require.NotNil(t, updated.RejectionComment)
		assert.Equal(t, "hours do not match register", *updated.RejectionComment)
	}
}

func TestRejectionKeepsPriorApprovalTrail(t *testing.T) {
	coordinatorID := int64(21)
	earlier := time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC)
	claim := claimIn(models.StatusVerified)
	claim.ApprovedBy = &coordinatorID
	claim.ApprovedAt = &earlier

	updated, err := Transition(claim, actor(22, models.RoleAcademicManager), ActionReject, "unsupported hours", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, coordinatorID, *updated.ApprovedBy, "verification trail survives rejection")
	assert.Equal(t, earlier, *updated.ApprovedAt)
}

func TestFullApprovalChainScenario(t *testing.T) {
	// Lecturer submits 8h@500 + 4h@500 and the claim walks the whole chain.
	claim := models.Claim{
		LecturerID: 101,
		Month:      "2025-09",
		Status:     models.StatusDraft,
		Lines: []models.ClaimLine{
			{Description: "Lecture: Module C108", HoursWorked: decimal.NewFromInt(8), RatePerHour: decimal.NewFromInt(500)},
			{Description: "Preparation", HoursWorked: decimal.NewFromInt(4), RatePerHour: decimal.NewFromInt(500)},
		},
	}

	submitted, err := PrepareSubmission(claim, time.Date(2025, 9, 30, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, submitted.TotalHours.Equal(decimal.NewFromInt(12)))
	assert.True(t, submitted.TotalAmount.Equal(decimal.NewFromInt(6000)))

	steps := []struct {
		user   models.User
		expect models.ClaimStatus
	}{
		{actor(2, models.RoleProgrammeCoordinator), models.StatusVerified},
		{actor(3, models.RoleAcademicManager), models.StatusApproved},
		{actor(1, models.RoleHR), models.StatusProcessed},
	}

	current := submitted
	var actedAt []time.Time
	for i, step := range steps {
		now := time.Date(2025, 10, 1+i, 9, 0, 0, 0, time.UTC)
		current, err = Transition(current, step.user, ActionApprove, "", now)
		require.NoError(t, err)
		assert.Equal(t, step.expect, current.Status)
		require.NotNil(t, current.ApprovedAt)
		actedAt = append(actedAt, *current.ApprovedAt)
	}

	assert.Equal(t, models.StatusProcessed, current.Status)
	assert.Len(t, actedAt, 3)
	assert.True(t, actedAt[0].Before(actedAt[1]) && actedAt[1].Before(actedAt[2]))
}

