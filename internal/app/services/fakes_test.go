package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"

	"github.com/naledi/cmcs/internal/app/models"
	"github.com/naledi/cmcs/internal/app/repositories"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

type fakeClaimRepo struct {
	claims map[int64]*models.Claim
	nextID int64
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[int64]*models.Claim), nextID: 1}
}

func (r *fakeClaimRepo) Create(_ context.Context, claim *models.Claim) error {
	claim.ID = r.nextID
	r.nextID++
	for i := range claim.Lines {
		claim.Lines[i].ID = int64(i + 1)
		claim.Lines[i].ClaimID = claim.ID
	}
	for i := range claim.Documents {
		claim.Documents[i].ID = int64(i + 1)
		claim.Documents[i].ClaimID = claim.ID
		claim.Documents[i].UploadedAt = time.Now()
	}
	stored := *claim
	r.claims[claim.ID] = &stored
	return nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id int64) (*models.Claim, error) {
	claim, ok := r.claims[id]
	if !ok {
		return nil, apperrors.ErrClaimNotFound
	}
	copied := *claim
	return &copied, nil
}

func (r *fakeClaimRepo) GetAllByLecturer(_ context.Context, lecturerID int64, page, pageSize int) ([]models.Claim, int64, error) {
	var out []models.Claim
	for _, claim := range r.claims {
		if claim.LecturerID == lecturerID {
			out = append(out, *claim)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeClaimRepo) GetAllByStatus(_ context.Context, statuses []models.ClaimStatus, page, pageSize int) ([]models.Claim, int64, error) {
	allowed := make(map[models.ClaimStatus]bool)
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []models.Claim
	for _, claim := range r.claims {
		if allowed[claim.Status] {
			out = append(out, *claim)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeClaimRepo) SubmitDraft(_ context.Context, claim *models.Claim) error {
	stored, ok := r.claims[claim.ID]
	if !ok || stored.Status != models.StatusDraft {
		return apperrors.ErrInvalidTransition
	}
	for i := range claim.Lines {
		claim.Lines[i].ID = int64(i + 1)
		claim.Lines[i].ClaimID = claim.ID
	}
	updated := *claim
	updated.Documents = stored.Documents
	r.claims[claim.ID] = &updated
	return nil
}

func (r *fakeClaimRepo) UpdateStatus(_ context.Context, claim *models.Claim, expected models.ClaimStatus) error {
	stored, ok := r.claims[claim.ID]
	if !ok || stored.Status != expected {
		return apperrors.ErrInvalidTransition
	}
	updated := *claim
	r.claims[claim.ID] = &updated
	return nil
}

func (r *fakeClaimRepo) AddDocuments(_ context.Context, claimID int64, documents []models.SupportingDocument) error {
	stored, ok := r.claims[claimID]
	if !ok {
		return apperrors.ErrClaimNotFound
	}
	for i := range documents {
		documents[i].ClaimID = claimID
		documents[i].ID = int64(len(stored.Documents) + i + 1)
		documents[i].UploadedAt = time.Now()
	}
	stored.Documents = append(stored.Documents, documents...)
	return nil
}

func (r *fakeClaimRepo) GetStats(_ context.Context) (*repositories.ClaimStats, error) {
	stats := repositories.ClaimStats{ProcessedTotal: decimal.Zero}
	for _, claim := range r.claims {
		stats.TotalClaims++
		switch {
		case claim.Status.Pending():
			stats.PendingClaims++
		case claim.Status == models.StatusProcessed:
			stats.ProcessedClaims++
			stats.ProcessedTotal = stats.ProcessedTotal.Add(claim.TotalAmount)
		case claim.Status == models.StatusRejected:
			stats.RejectedClaims++
		}
	}
	return &stats, nil
}

type fakeLecturerRepo struct {
	lecturers map[int64]*models.Lecturer
	nextID    int64
}

func newFakeLecturerRepo() *fakeLecturerRepo {
	return &fakeLecturerRepo{lecturers: make(map[int64]*models.Lecturer), nextID: 1}
}

func (r *fakeLecturerRepo) Create(_ context.Context, lecturer *models.Lecturer) error {
	lecturer.ID = r.nextID
	lecturer.CreatedAt = time.Now()
	r.nextID++
	stored := *lecturer
	r.lecturers[lecturer.ID] = &stored
	return nil
}

func (r *fakeLecturerRepo) GetByID(_ context.Context, id int64) (*models.Lecturer, error) {
	lecturer, ok := r.lecturers[id]
	if !ok {
		return nil, apperrors.ErrLecturerNotFound
	}
	copied := *lecturer
	return &copied, nil
}

func (r *fakeLecturerRepo) GetAll(_ context.Context) ([]*models.Lecturer, error) {
	var out []*models.Lecturer
	for _, lecturer := range r.lecturers {
		copied := *lecturer
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeLecturerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, lecturer := range r.lecturers {
		if lecturer.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLecturerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.lecturers)), nil
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hashedPassword string) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokenRepo struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*repositories.RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	if _, exists := r.tokens[token]; exists {
		return apperrors.ErrTokenInvalid
	}
	r.tokens[token] = &repositories.RefreshToken{Token: token, UserID: userID, ExpiryDate: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetByValue(_ context.Context, token string) (*repositories.RefreshToken, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	stored, ok := r.tokens[token]
	if !ok || stored.Revoked {
		return apperrors.ErrTokenInvalid
	}
	stored.Revoked = true
	return nil
}

// fakeStorage records saved and deleted names without touching the filesystem.
type fakeStorage struct {
	saved   []string
	deleted []string
	failOn  string
}

func (s *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if s.failOn != "" && fileHeader.Filename == s.failOn {
		return "", fmt.Errorf("disk full")
	}
	path := "uploads/" + fileHeader.Filename
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeStorage) DeleteFile(filePath string) error {
	s.deleted = append(s.deleted, filePath)
	return nil
}
