package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleHOD     = "hod"
)

const (
	AccessBasic = "basic"
	AccessFull  = "full"
)

// Cohort defaults applied when a roster row or request leaves them blank.
const (
	DefaultYear     = "2nd"
	DefaultSemester = "3"
	DefaultDivision = "A"
)

var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrEmailExists        = errors.New("a student with this email already exists")
	ErrRollNumberExists   = errors.New("a student with this roll number already exists")
	ErrMissingFields      = errors.New("name, email and roll number are required")
	ErrInvalidRollNumber  = errors.New("roll number cannot contain slashes")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// Cohort is the (year, semester, division) grouping students are organised by.
type Cohort struct {
	Year     string `json:"year" bson:"year"`
	Semester string `json:"sem" bson:"sem"`
	Division string `json:"div" bson:"div"`
}

// WithDefaults fills blank cohort fields with the default cohort.
func (c Cohort) WithDefaults() Cohort {
	if c.Year == "" {
		c.Year = DefaultYear
	}
	if c.Semester == "" {
		c.Semester = DefaultSemester
	}
	if c.Division == "" {
		c.Division = DefaultDivision
	}
	return c
}

// Key returns the cohort path "year/sem/div".
func (c Cohort) Key() string {
	return c.Year + "/" + c.Semester + "/" + c.Division
}

// User is a student, teacher or HOD record held in the roster.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Phone       string    `json:"phone" bson:"phone"`
	Gender      string    `json:"gender" bson:"gender"`
	RollNumber  string    `json:"roll_number" bson:"roll_number"`
	Year        string    `json:"year" bson:"year"`
	Semester    string    `json:"sem" bson:"sem"`
	Division    string    `json:"div" bson:"div"`
	Department  string    `json:"department" bson:"department"`
	Role        string    `json:"role" bson:"role"`
	AccessLevel string    `json:"access_level" bson:"access_level"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	LastLogin   time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	LoginCount  int       `json:"login_count" bson:"login_count"`
}

// Cohort returns the user's academic placement.
func (u *User) Cohort() Cohort {
	return Cohort{Year: u.Year, Semester: u.Semester, Division: u.Division}
}

// RosterKey is the roster identifier used in attendance input: the roll number,
// or the id when a record has none.
func (u *User) RosterKey() string {
	if u.RollNumber != "" {
		return u.RollNumber
	}
	return u.ID
}

// ValidateStudent checks the fields every student record must carry before it is
// written anywhere.
func ValidateStudent(name, email, rollNumber string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(rollNumber) == "" {
		return ErrMissingFields
	}
	if strings.Contains(rollNumber, "/") {
		return ErrInvalidRollNumber
	}
	return nil
}

// Account is an authenticated identity able to log in.
type Account struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	AccessLevel  string    `json:"access_level"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitempty"`
	LoginCount   int       `json:"login_count"`
}

// IsStaff reports whether the role may manage rosters and attendance.
func IsStaff(role string) bool {
	return role == RoleTeacher || role == RoleHOD
}
