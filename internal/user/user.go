package user

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Normalize trims the username and lower-cases the email so uniqueness is
// case-insensitive on email.
func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Validate returns human-readable problems with the user record.
func (u *User) Validate() []string {
	var errs []string
	if len(strings.TrimSpace(u.Username)) < 2 {
		errs = append(errs, "username must be at least 2 characters")
	}
	if u.Email == "" || !emailPattern.MatchString(u.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}
