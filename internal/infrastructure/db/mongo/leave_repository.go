package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

const collectionLeaves = "leave_requests"

type LeaveRepository struct {
	col *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{col: db.Collection(collectionLeaves)}
}

func (r *LeaveRepository) Create(ctx context.Context, l *domain.LeaveRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.LeaveRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns matching requests, newest first.
func (r *LeaveRepository) List(ctx context.Context, f ports.LeaveFilter) ([]domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, leaveFilter(f.UserID, f.Department, f.Status),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find leaves: %w", err)
	}
	defer cur.Close(ctx)

	leaves := make([]domain.LeaveRequest, 0)
	if err := cur.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("decode leaves: %w", err)
	}
	return leaves, nil
}

// UpdateStatus is a compare-and-set on the status field, so two reviewers
// racing on the same request cannot both win.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, review ports.LeaveReview) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":      review.To,
		"reviewer_id": review.ReviewerID,
		"review_note": review.Note,
		"reviewed_at": review.At,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": review.From}, update)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *LeaveRepository) CountByStatus(ctx context.Context, department string, status domain.LeaveStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, leaveFilter("", department, status))
}

func (r *LeaveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "department", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func leaveFilter(userID, department string, status domain.LeaveStatus) bson.M {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	if department != "" {
		filter["department"] = department
	}
	if status != "" {
		filter["status"] = status
	}
	return filter
}
