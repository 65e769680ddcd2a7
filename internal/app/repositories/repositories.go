package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	LecturerRepository *LecturerRepository
	ClaimRepository    *ClaimRepository
	TokenRepository    *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		LecturerRepository: NewLecturerRepository(db),
		ClaimRepository:    NewClaimRepository(db),
		TokenRepository:    NewTokenRepository(db),
	}
}
