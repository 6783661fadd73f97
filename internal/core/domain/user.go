package domain

import (
	"sort"
	"time"
)

// User models a registered account: identity, profile, and role assignment.
// PasswordHash and RefreshToken never leave the process; both are excluded
// from JSON marshalling.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage,omitempty"`
	Batch        int       `json:"batch,omitempty"`
	UniversityID int       `json:"uniId,omitempty"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the externally visible projection of a User: every profile
// field, no credentials.
type PublicUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage,omitempty"`
	Batch        int       `json:"batch,omitempty"`
	UniversityID int       `json:"uniId,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the minimal author attribution attached to blogs and
// comments in listings and profiles.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Fullname:     u.Fullname,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		Batch:        u.Batch,
		UniversityID: u.UniversityID,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Avatar:   u.Avatar,
	}
}

// SortBySeniority orders a single-category listing in place: seniority first
// for ranked roles, newest account first among equals (members all share
// position 0, so member listings come out newest-first).
func SortBySeniority(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Role.Position != users[j].Role.Position {
			return users[i].Role.MoreSenior(users[j].Role)
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}
