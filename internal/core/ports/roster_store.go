package ports

import (
	"context"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// RosterStore persists student records in two collections: a flat users
// collection and a collection organised by cohort. Writes to the two are
// independent; callers decide the order and accept partial completion.
type RosterStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListStudents(ctx context.Context) ([]domain.User, error)
	// ListCohortStudents reads the cohort-organised collection.
	ListCohortStudents(ctx context.Context, cohort domain.Cohort) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)

	CreateUser(ctx context.Context, u *domain.User) error
	CreateCohortRecord(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, u *domain.User) error
	// UpdateCohortRecord upserts the record at the user's current cohort path.
	UpdateCohortRecord(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	DeleteCohortRecord(ctx context.Context, u *domain.User) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
}

// RosterCache holds recently listed cohort rosters. A miss is reported with
// ok=false and a nil error.
type RosterCache interface {
	Get(ctx context.Context, key string) (users []domain.User, ok bool, err error)
	Set(ctx context.Context, key string, users []domain.User) error
	Invalidate(ctx context.Context, keys ...string) error
}
