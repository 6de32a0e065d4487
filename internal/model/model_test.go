package model

import (
	"strings"
	"testing"
)

func TestUserValidateCreate_Order(t *testing.T) {
	// Emptiness is reported before length violations.
	u := User{Name: strings.Repeat("x", 40), Username: "", Email: "a@b.c"}
	err := u.ValidateCreate()
	if err == nil || !strings.Contains(err.Error(), "fill in all fields") {
		t.Fatalf("expected required-field error first, got %v", err)
	}

	u.Username = "ok"
	err = u.ValidateCreate()
	if err == nil || !strings.Contains(err.Error(), "name must be at most") {
		t.Fatalf("expected name length error, got %v", err)
	}
}

func TestUserValidateCreate_SkipsEmailFormat(t *testing.T) {
	u := User{Name: "Ada", Username: "ada", Email: "not-an-email"}
	if err := u.ValidateCreate(); err != nil {
		t.Fatalf("create must not enforce email format, got %v", err)
	}
}

func TestUserValidateUpdate(t *testing.T) {
	tests := []struct {
		name string
		u    User
		want string // substring of the error, "" for ok
	}{
		{"ok", User{Name: "Ada", Username: "ada", Email: "ada@lovelace.dev"}, ""},
		{"whitespace name", User{Name: "   ", Username: "ada", Email: "a@b.c"}, "fill in all fields"},
		{"long username", User{Name: "Ada", Username: strings.Repeat("u", 21), Email: "a@b.c"}, "username must be at most 20"},
		{"long email", User{Name: "Ada", Username: "ada", Email: strings.Repeat("e", 39) + "@b.c"}, "email must be at most 40"},
		{"bad email", User{Name: "Ada", Username: "ada", Email: "bad-email"}, "valid email"},
		{"email with spaces", User{Name: "Ada", Username: "ada", Email: "a b@c.d"}, "valid email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.u.ValidateUpdate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestPostValidate(t *testing.T) {
	if err := (Post{Title: "hello", UserID: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Post{Title: "   "}).Validate(); err == nil {
		t.Fatalf("whitespace-only title must fail")
	}
	if err := (Post{Title: strings.Repeat("t", 151)}).Validate(); err == nil {
		t.Fatalf("over-long title must fail")
	}
	if err := (Post{Title: strings.Repeat("t", 150)}).Validate(); err != nil {
		t.Fatalf("150-char title is allowed, got %v", err)
	}
}

func TestPostSearchFields_IncludesDecimalUserID(t *testing.T) {
	p := Post{UserID: 42, Title: "T"}
	fields := p.SearchFields()
	found := false
	for _, f := range fields {
		if f == "42" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected decimal userId among search fields, got %v", fields)
	}
}
