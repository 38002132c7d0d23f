package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHHMMValidation(t *testing.T) {
	type P struct {
		VisitTime string `json:"visit_time" validate:"hhmm"`
	}
	cv := NewValidator()

	for _, s := range []string{"00:00", "09:05", "10:30", "23:59"} {
		if err := cv.Validate(P{VisitTime: s}); err != nil {
			t.Fatalf("expected valid hhmm for %q, got err: %v", s, err)
		}
	}

	for _, s := range []string{
		"",         // empty
		"24:00",    // hour out of range
		"12:60",    // minute out of range
		"9:30",     // single digit hour
		"10:30:00", // seconds
		"ab:cd",    // garbage
	} {
		err := cv.Validate(P{VisitTime: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "visit_time", "HH:MM") {
			t.Fatalf("expected hhmm message for %q, got: %+v", s, fe)
		}
	}
}

func TestRoleValidation(t *testing.T) {
	type P struct {
		RoleID uint `json:"role_id" validate:"role"`
	}
	cv := NewValidator()

	for _, r := range []uint{1, 2, 3} {
		if err := cv.Validate(P{RoleID: r}); err != nil {
			t.Fatalf("expected role %d valid, got %v", r, err)
		}
	}
	for _, r := range []uint{0, 4, 99} {
		err := cv.Validate(P{RoleID: r})
		if err == nil {
			t.Fatalf("expected error for role %d", r)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "role_id", "known role") {
			t.Fatalf("expected role message, got: %+v", fe)
		}
	}
}

func TestToFieldErrors_UsesJSONNames(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(submitVisitReq{VisitDate: "01/06/2025", VisitTime: "10:30", Purpose: strings.Repeat("x", 300)})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "pupc_id", "is required") {
		t.Fatalf("missing pupc_id: %+v", fe)
	}
	if !containsFieldMsg(fe, "visit_date", "2006-01-02") {
		t.Fatalf("missing visit_date: %+v", fe)
	}
	if !containsFieldMsg(fe, "purpose", "at most 255") {
		t.Fatalf("missing purpose: %+v", fe)
	}
}

func TestApprovedVisitorRequiresNamesUnlessExisting(t *testing.T) {
	cv := NewValidator()
	id := uint64(4)

	ok := createPUCReq{FirstName: "Ray", LastName: "Doe", ApprovedVisitors: []approvedVisitorReq{
		{ApprovalID: &id},
		{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
	}}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	bad := createPUCReq{FirstName: "Ray", LastName: "Doe", ApprovedVisitors: []approvedVisitorReq{{Email: "nope"}}}
	err := cv.Validate(bad)
	if err == nil {
		t.Fatal("expected error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "first_name", "") || !containsFieldMsg(fe, "email", "valid email") {
		t.Fatalf("details: %+v", fe)
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errors.New("some other error"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "some other error" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}
