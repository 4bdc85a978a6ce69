package domain

import (
	"errors"
	"time"
)

// LeaveStatus represents the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// validTransitions defines the allowed leave state machine transitions.
var validTransitions = map[LeaveStatus][]LeaveStatus{
	LeavePending: {LeaveApproved, LeaveRejected, LeaveCancelled},
}

var (
	ErrInvalidTransition = errors.New("invalid leave status transition")
	ErrLeaveNotFound     = errors.New("leave request not found")
	ErrReasonRequired    = errors.New("leave reason is required")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LeaveRequest is a student's request to be excused between two dates.
type LeaveRequest struct {
	ID         string      `json:"id" bson:"_id"`
	UserID     string      `json:"user_id" bson:"user_id"`
	UserName   string      `json:"user_name" bson:"user_name"`
	Department string      `json:"department" bson:"department"`
	From       time.Time   `json:"from" bson:"from"`
	To         time.Time   `json:"to" bson:"to"`
	Reason     string      `json:"reason" bson:"reason"`
	Status     LeaveStatus `json:"status" bson:"status"`
	ReviewerID string      `json:"reviewer_id,omitempty" bson:"reviewer_id,omitempty"`
	ReviewNote string      `json:"review_note,omitempty" bson:"review_note,omitempty"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	ReviewedAt *time.Time  `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}
