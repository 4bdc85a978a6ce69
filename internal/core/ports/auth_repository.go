package ports

import (
	"context"
	"time"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// AuthRepository defines the interface for account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}
