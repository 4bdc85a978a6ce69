package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

const (
	collectionUsers  = "users"
	collectionCohort = "cohort_students"
)

// UserRepository keeps the flat users collection and the cohort-organised
// student collection.
type UserRepository struct {
	users  *mongo.Collection
	cohort *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:  db.Collection(collectionUsers),
		cohort: db.Collection(collectionCohort),
	}
}

// cohortStudent is a student stored under its cohort path. The _id is
// "<year>/<sem>/<div>/<roll>".
type cohortStudent struct {
	Path        string    `bson:"_id"`
	CohortKey   string    `bson:"cohort_key"`
	UserID      string    `bson:"user_id"`
	Name        string    `bson:"name"`
	Email       string    `bson:"email"`
	Phone       string    `bson:"phone"`
	Gender      string    `bson:"gender"`
	RollNumber  string    `bson:"roll_number"`
	Year        string    `bson:"year"`
	Semester    string    `bson:"sem"`
	Division    string    `bson:"div"`
	Department  string    `bson:"department"`
	Role        string    `bson:"role"`
	AccessLevel string    `bson:"access_level"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
}

func cohortPath(u *domain.User) string {
	return u.Cohort().Key() + "/" + u.RosterKey()
}

func toCohortStudent(u *domain.User) cohortStudent {
	return cohortStudent{
		Path:        cohortPath(u),
		CohortKey:   u.Cohort().Key(),
		UserID:      u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Gender:      u.Gender,
		RollNumber:  u.RollNumber,
		Year:        u.Year,
		Semester:    u.Semester,
		Division:    u.Division,
		Department:  u.Department,
		Role:        u.Role,
		AccessLevel: u.AccessLevel,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func (c cohortStudent) toDomain() domain.User {
	return domain.User{
		ID:          c.UserID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Gender:      c.Gender,
		RollNumber:  c.RollNumber,
		Year:        c.Year,
		Semester:    c.Semester,
		Division:    c.Division,
		Department:  c.Department,
		Role:        c.Role,
		AccessLevel: c.AccessLevel,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return r.findUsers(ctx, bson.M{})
}

func (r *UserRepository) ListStudents(ctx context.Context) ([]domain.User, error) {
	return r.findUsers(ctx, bson.M{"role": domain.RoleStudent})
}

func (r *UserRepository) findUsers(ctx context.Context, filter bson.M) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "roll_number", Value: 1}})
	cur, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) ListCohortStudents(ctx context.Context, cohort domain.Cohort) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "roll_number", Value: 1}})
	cur, err := r.cohort.Find(ctx, bson.M{"cohort_key": cohort.Key()}, opts)
	if err != nil {
		return nil, fmt.Errorf("find cohort %s: %w", cohort.Key(), err)
	}
	defer cur.Close(ctx)

	var docs []cohortStudent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cohort %s: %w", cohort.Key(), err)
	}

	users := make([]domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.users.InsertOne(ctx, u); err != nil {
		return duplicateError(err)
	}
	return nil
}

func (r *UserRepository) CreateCohortRecord(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.cohort.InsertOne(ctx, toCohortStudent(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRollNumberExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return duplicateError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func (r *UserRepository) UpdateCohortRecord(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCohortStudent(u)
	_, err := r.cohort.ReplaceOne(ctx, bson.M{"_id": doc.Path}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// DeleteCohortRecord removes the record at the user's cohort path. A missing
// record is not an error.
func (r *UserRepository) DeleteCohortRecord(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.cohort.DeleteOne(ctx, bson.M{"_id": cohortPath(u)})
	return err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *UserRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	return r.exists(ctx, bson.M{"roll_number": rollNumber})
}

func (r *UserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureIndexes creates the lookup and uniqueness indexes of both collections.
// Roll numbers are only unique among records that have one.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{
			Keys: bson.D{{Key: "roll_number", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_roll_number").
				SetPartialFilterExpression(bson.M{"roll_number": bson.M{"$gt": ""}}),
		},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "department", Value: 1}}},
	}
	if _, err := r.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	_, err := r.cohort.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "cohort_key", Value: 1}}})
	return err
}

func duplicateError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "email") {
		return domain.ErrEmailExists
	}
	return domain.ErrRollNumberExists
}
