package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
)

// MaxMonthlyHours caps the total claimable hours per submission period.
// Enforced server-side regardless of client input.
var MaxMonthlyHours = decimal.NewFromInt(180)

// DescriptionMaxLen bounds a claim line description.
const DescriptionMaxLen = 200

// PrepareSubmission validates the claim's lines, recomputes every subtotal
// and both claim totals, and stamps the claim as submitted. Client-supplied
// totals are discarded. The input snapshot is not mutated.
func PrepareSubmission(claim models.Claim, now time.Time) (models.Claim, error) {
	if len(claim.Lines) == 0 {
		return claim, apperrors.NewValidationError(apperrors.RuleEmptyClaim, "a claim needs at least one line")
	}

	lines := make([]models.ClaimLine, len(claim.Lines))
	copy(lines, claim.Lines)

	for i := range lines {
		if err := validateLine(i, lines[i]); err != nil {
			return claim, err
		}
		lines[i].Subtotal = lines[i].HoursWorked.Mul(lines[i].RatePerHour)
	}

	totalHours, totalAmount := Totals(lines)
	if totalHours.GreaterThan(MaxMonthlyHours) {
		return claim, apperrors.NewValidationError(apperrors.RuleHoursExceeded,
			fmt.Sprintf("total hours %s exceed the monthly cap of %s", totalHours, MaxMonthlyHours))
	}

	claim.Lines = lines
	claim.TotalHours = totalHours
	claim.TotalAmount = totalAmount
	claim.Status = models.StatusSubmitted
	claim.SubmittedAt = &now
	return claim, nil
}

func validateLine(index int, line models.ClaimLine) error {
	if strings.TrimSpace(line.Description) == "" {
		return apperrors.NewValidationError(apperrors.RuleInvalidLine,
			fmt.Sprintf("line %d: description is required", index+1))
	}
	if len(line.Description) > DescriptionMaxLen {
		return apperrors.NewValidationError(apperrors.RuleInvalidLine,
			fmt.Sprintf("line %d: description cannot exceed %d characters", index+1, DescriptionMaxLen))
	}
	if !line.HoursWorked.IsPositive() {
		return apperrors.NewValidationError(apperrors.RuleInvalidLine,
			fmt.Sprintf("line %d: hours worked must be greater than zero", index+1))
	}
	if !line.RatePerHour.IsPositive() {
		return apperrors.NewValidationError(apperrors.RuleInvalidLine,
			fmt.Sprintf("line %d: rate per hour must be greater than zero", index+1))
	}
	return nil
}

// Totals recomputes claim totals from its lines.
func Totals(lines []models.ClaimLine) (hours, amount decimal.Decimal) {
	hours, amount = decimal.Zero, decimal.Zero
	for _, line := range lines {
		hours = hours.Add(line.HoursWorked)
		amount = amount.Add(line.HoursWorked.Mul(line.RatePerHour))
	}
	return hours, amount
}
