package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// User mirrors the remote /users record shape.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Post mirrors the remote /posts record shape.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

const (
	MaxUserNameLen     = 30
	MaxUserUsernameLen = 20
	MaxUserEmailLen    = 40
	MaxPostTitleLen    = 150
)

// emailRe is deliberately loose: anything@anything.anything without whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Key reports the record identity used by stores and filters.
func (u User) Key() int { return u.ID }

// Label is the human-facing name used in toast messages.
func (u User) Label() string { return u.Name }

func (p Post) Key() int { return p.ID }

func (p Post) Label() string { return fmt.Sprintf("%q", p.Title) }

// SearchFields returns the values the search filter matches against.
func (u User) SearchFields() []string {
	return []string{u.Name, u.Username, u.Email}
}

func (p Post) SearchFields() []string {
	return []string{p.Title, strconv.Itoa(p.UserID)}
}

// ValidateCreate checks a draft user before it is added.
//
// Order matters: emptiness before lengths. Creation intentionally skips the
// email format check; only edit-commit enforces it.
func (u User) ValidateCreate() error {
	if u.Name == "" || u.Username == "" || u.Email == "" {
		return fmt.Errorf("please fill in all fields")
	}
	return u.checkLengths()
}

// ValidateUpdate checks a full user record before an edit is committed.
// Emptiness (trimmed), then lengths, then email format.
func (u User) ValidateUpdate() error {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("please fill in all fields")
	}
	if err := u.checkLengths(); err != nil {
		return err
	}
	if !emailRe.MatchString(u.Email) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func (u User) checkLengths() error {
	if len(u.Name) > MaxUserNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxUserNameLen)
	}
	if len(u.Username) > MaxUserUsernameLen {
		return fmt.Errorf("username must be at most %d characters", MaxUserUsernameLen)
	}
	if len(u.Email) > MaxUserEmailLen {
		return fmt.Errorf("email must be at most %d characters", MaxUserEmailLen)
	}
	return nil
}

// Validate checks a post draft. The same rules apply on create and
// edit-commit; the body is unconstrained.
func (p Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("please fill in the title field")
	}
	if len(p.Title) > MaxPostTitleLen {
		return fmt.Errorf("title must be at most %d characters", MaxPostTitleLen)
	}
	return nil
}
