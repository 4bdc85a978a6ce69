package handler

import (
	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type errorResponse struct {
	Error string `json:"error"`
}

// --- Students ---

type studentRequest struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	RollNumber string `json:"roll_number" validate:"required,rollnumber"`
	Year       string `json:"year"`
	Semester   string `json:"sem"`
	Division   string `json:"div"`
	Department string `json:"department"`
	IsActive   *bool  `json:"is_active"`
}

func (r studentRequest) toInput() ports.StudentInput {
	return ports.StudentInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Gender:     r.Gender,
		RollNumber: r.RollNumber,
		Year:       r.Year,
		Semester:   r.Semester,
		Division:   r.Division,
		Department: r.Department,
		IsActive:   r.IsActive,
	}
}

type studentListResponse struct {
	Cohort   domain.Cohort `json:"cohort"`
	Count    int           `json:"count"`
	Students []domain.User `json:"students"`
}

// --- Attendance ---

type sessionRequest struct {
	Year         string `json:"year"`
	Semester     string `json:"sem"`
	Division     string `json:"div"`
	Subject      string `json:"subject"       validate:"required"`
	Date         string `json:"date"          validate:"omitempty,datetime=2006-01-02"`
	PresentRolls string `json:"present_rolls"`
	AllPresent   bool   `json:"all_present"`
	Note         string `json:"note"`
}

type sessionResponse struct {
	Date     string             `json:"date"`
	Subject  string             `json:"subject"`
	Present  []ports.StudentRef `json:"present"`
	Absent   []ports.StudentRef `json:"absent"`
	Recorded int                `json:"recorded"`
}

func toSessionResponse(r *ports.SessionResult) sessionResponse {
	return sessionResponse{
		Date:     r.Date.Format(dateLayout),
		Subject:  r.Subject,
		Present:  r.Present,
		Absent:   r.Absent,
		Recorded: r.Recorded,
	}
}

type summaryResponse struct {
	UserID  string                   `json:"user_id"`
	Start   string                   `json:"start"`
	End     string                   `json:"end"`
	Subject string                   `json:"subject,omitempty"`
	Summary domain.AttendanceSummary `json:"summary"`
}

// --- Leaves ---

type applyLeaveRequest struct {
	From   string `json:"from"   validate:"required,datetime=2006-01-02"`
	To     string `json:"to"     validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"required"`
}

type reviewLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected cancelled"`
	Note   string `json:"note"`
}

// --- Dashboard ---

type dashboardResponse struct {
	Role          string                    `json:"role"`
	Month         string                    `json:"month"`
	Attendance    *domain.AttendanceSummary `json:"attendance,omitempty"`
	Leaves        []domain.LeaveRequest     `json:"leaves,omitempty"`
	StudentCount  *int                      `json:"student_count,omitempty"`
	PendingLeaves *int64                    `json:"pending_leaves,omitempty"`
}

func toDashboardResponse(d *ports.Dashboard) dashboardResponse {
	resp := dashboardResponse{Role: d.Role, Month: d.Month}
	if domain.IsStaff(d.Role) {
		resp.StudentCount = &d.StudentCount
		resp.PendingLeaves = &d.PendingLeaves
		return resp
	}
	resp.Attendance = d.Attendance
	resp.Leaves = d.Leaves
	return resp
}
