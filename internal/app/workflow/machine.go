package workflow

import (
	"strings"
	"time"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
)

// Action is a workflow action requested against a claim.
type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// advance describes the single legal forward step a role may perform.
type advance struct {
	Source models.ClaimStatus
	Target models.ClaimStatus
}

// advances is the approval chain: exactly one (source, target) pair per
// approver role. Roles absent from this table cannot act on claims at all.
var advances = map[models.RoleType]advance{
	models.RoleProgrammeCoordinator: {Source: models.StatusSubmitted, Target: models.StatusVerified},
	models.RoleAcademicManager:      {Source: models.StatusVerified, Target: models.StatusApproved},
	models.RoleHR:                   {Source: models.StatusApproved, Target: models.StatusProcessed},
}

// Transition applies the requested action to a claim snapshot and returns the
// updated snapshot. The input claim is never mutated; on error the caller's
// claim is the authoritative state.
func Transition(claim models.Claim, actor models.User, action Action, comment string, now time.Time) (models.Claim, error) {
	step, isApprover := advances[actor.Role]
	if !isApprover {
		return claim, apperrors.NewForbiddenError("role " + string(actor.Role) + " may not act on claims")
	}

	switch action {
	case ActionApprove:
		if claim.Status != step.Source {
			return claim, apperrors.ErrInvalidTransition
		}
		claim.Status = step.Target
		claim.ApprovedBy = &actor.ID
		claim.ApprovedAt = &now
		return claim, nil

	case ActionReject:
		if !claim.Status.Pending() {
			return claim, apperrors.ErrInvalidTransition
		}
		comment = strings.TrimSpace(comment)
		if comment == "" {
			return claim, apperrors.NewValidationError(apperrors.RuleCommentRequired, "rejection comment is required")
		}
		// Prior approval metadata is kept; the rejection trail is recorded
		// alongside whatever verification already happened.
		claim.Status = models.StatusRejected
		claim.RejectedBy = &actor.ID
		claim.RejectedAt = &now
		claim.RejectionComment = &comment
		return claim, nil

	default:
		return claim, apperrors.NewValidationError(apperrors.RuleInvalidLine, "unknown workflow action "+string(action))
	}
}
