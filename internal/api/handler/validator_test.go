package handler

import (
	"strings"
	"testing"
)

func TestValidator_JSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&studentRequest{Name: "Asha", Email: "asha@dypsn.edu", RollNumber: "CS/01"})
	if err == nil || err.Error() != "roll_number cannot contain slashes" {
		t.Fatalf("unexpected error %v", err)
	}

	err = v.Validate(&sessionRequest{Date: "2024-13-01"})
	if err == nil {
		t.Fatalf("expected errors")
	}
	for _, want := range []string{"subject is required", "date must be a date in YYYY-MM-DD format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}

	if err := v.Validate(&studentRequest{Name: "Asha", Email: "asha@dypsn.edu", RollNumber: "CS01"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}
