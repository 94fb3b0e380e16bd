// Package domain contains core concepts of the alumni network.
// Records here mirror what the realtime store persists; they carry
// no behavior beyond small derivations.
package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleTeacher Role = "teacher"
)

// User is the profile stored at users/{id}. The identity provider owns
// the account itself; the profile is mutated only by its owner and is
// never deleted by the application.
type User struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	UserType       Role     `json:"userType"`
	GraduationYear string   `json:"graduationYear,omitempty"`
	Department     string   `json:"department,omitempty"`
	Company        string   `json:"company,omitempty"`
	Designation    string   `json:"designation,omitempty"`
	InterestDomain string   `json:"interestDomain,omitempty"`
	Domains        []string `json:"domains,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// CurrentUser is the ambient identity handle every feature reads.
// A nil *CurrentUser means nobody is signed in.
type CurrentUser struct {
	ID    string
	Email string
}

// DisplayName is the short handle attached to chat messages, the
// local part of the sender's email. An address without "@" yields no
// handle, and the name field stays off the stored message.
func DisplayName(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return local
}

// Timestamp is the wire format for every time value the store holds.
// The store orders messages by parsing these back, so all writers must
// go through here.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp returns the zero time for values that do not parse;
// sorting treats those as older than any valid stamp.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
