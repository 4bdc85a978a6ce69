package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

const collectionAttendance = "attendance_logs"

type AttendanceRepository struct {
	col *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(collectionAttendance)}
}

// Create appends a log. Logs are never updated in place.
func (r *AttendanceRepository) Create(ctx context.Context, log *domain.AttendanceLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, log)
	return err
}

// FindByUserAndRange returns the user's logs ordered by date.
func (r *AttendanceRepository) FindByUserAndRange(ctx context.Context, userID string, rng domain.DateRange) ([]domain.AttendanceLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	from, until := rng.Bounds()
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lt": until},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	defer cur.Close(ctx)

	logs := make([]domain.AttendanceLog, 0)
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return logs, nil
}

func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "subject", Value: 1}}},
	})
	return err
}
