package model

import "time"

// User represents a row in the `users` table.  PasswordHash is never
// serialized; every response that embeds a User is safe to send as-is.
//
// Age, Gender and Bio stay NULL until the first profile update, which also
// flips ProfileComplete.  JoinDate is set by the database on insert and is
// never updated.
type User struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Age             *int      `json:"age"`
	Gender          *string   `json:"gender"`
	Bio             *string   `json:"bio"`
	JoinDate        time.Time `json:"joinDate"`
	ProfileComplete bool      `json:"profileComplete"`
}

// ProfileUpdate carries the fields a user may change on their profile.
// Email and password are deliberately absent.
type ProfileUpdate struct {
	Name   string
	Age    *int
	Gender *string
	Bio    *string
}

// Member is the public view of another user shown on the connect page.
type Member struct {
	ID       uint64    `json:"id"`
	Name     string    `json:"name"`
	Age      *int      `json:"age"`
	Gender   *string   `json:"gender"`
	Bio      *string   `json:"bio"`
	JoinDate time.Time `json:"join_date"`
}
