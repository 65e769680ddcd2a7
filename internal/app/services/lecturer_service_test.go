package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naledi/cmcs/internal/app/models/dto"
	"github.com/naledi/cmcs/internal/pkg/apperrors"
)

func TestCreateLecturerNormalizesAndPersists(t *testing.T) {
	repo := newFakeLecturerRepo()
	service := NewLecturerService(repo)

	lecturer, err := service.CreateLecturer(context.Background(), dto.CreateLecturerRequest{
		FullName:   "  Dr. Tumi Nkosi ",
		Email:      " Tumi@CMCS.local ",
		HourlyRate: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Tumi Nkosi", lecturer.FullName)
	assert.Equal(t, "tumi@cmcs.local", lecturer.Email)
	assert.NotZero(t, lecturer.ID)
}

func TestCreateLecturerRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeLecturerRepo()
	service := NewLecturerService(repo)

	req := dto.CreateLecturerRequest{
		FullName:   "Dr. Tumi Nkosi",
		Email:      "tumi@cmcs.local",
		HourlyRate: decimal.NewFromInt(500),
	}
	_, err := service.CreateLecturer(context.Background(), req)
	require.NoError(t, err)

	req.FullName = "Another Person"
	_, err = service.CreateLecturer(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestCreateLecturerValidatesInput(t *testing.T) {
	repo := newFakeLecturerRepo()
	service := NewLecturerService(repo)

	tests := []struct {
		name string
		req  dto.CreateLecturerRequest
	}{
		{"empty name", dto.CreateLecturerRequest{Email: "a@cmcs.local", HourlyRate: decimal.NewFromInt(500)}},
		{"bad email", dto.CreateLecturerRequest{FullName: "A", Email: "nope", HourlyRate: decimal.NewFromInt(500)}},
		{"zero rate", dto.CreateLecturerRequest{FullName: "A", Email: "a@cmcs.local"}},
		{"negative rate", dto.CreateLecturerRequest{FullName: "A", Email: "a@cmcs.local", HourlyRate: decimal.NewFromInt(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateLecturer(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}
