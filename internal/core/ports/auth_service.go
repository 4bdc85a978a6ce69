package ports

import (
	"context"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Department string
	// UserID links a student account to its roster record.
	UserID string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}
