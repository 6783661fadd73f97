package domain

import (
	"fmt"
	"strings"
)

// RoleName is one of the four fixed membership categories.
type RoleName string

const (
	RoleAdmin     RoleName = "admin"
	RoleModerator RoleName = "moderator"
	RoleMentor    RoleName = "mentor"
	RoleMember    RoleName = "member"
)

// Role combines a category with a signed seniority position. The sign of the
// position encodes the category: committee members (admin, moderator) rank
// ascending from 1, mentors rank descending below zero (more negative = more
// senior), and plain members sit at 0.
type Role struct {
	Role         RoleName `json:"role" bson:"role"`
	Position     int      `json:"position" bson:"position"`
	PositionName string   `json:"positionName" bson:"position_name,omitempty"`
}

// Validate enforces the position-sign convention before a role assignment is
// accepted. Storage never checks this; every write path must.
func (r Role) Validate() error {
	switch r.Role {
	case RoleAdmin:
		if r.Position != 1 {
			return fmt.Errorf("%w: admin must hold position 1", ErrInvalidRole)
		}
	case RoleModerator:
		if r.Position <= 1 {
			return fmt.Errorf("%w: moderator position must be greater than 1", ErrInvalidRole)
		}
	case RoleMentor:
		if r.Position >= 0 {
			return fmt.Errorf("%w: mentor position must be negative", ErrInvalidRole)
		}
	case RoleMember:
		if r.Position != 0 {
			return fmt.Errorf("%w: member position must be 0", ErrInvalidRole)
		}
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidRole, r.Role)
	}
	return nil
}

// MoreSenior orders two roles within one listing category. Committee ranks
// ascend from 1 (the top); mentor ranks grow more negative with seniority.
// Both conventions put the numerically smaller position first, so the most
// senior entry always leads the listing. Callers only sort within a single
// category, so mixed signs never meet.
func (r Role) MoreSenior(other Role) bool {
	return r.Position < other.Position
}

// Category is the value of the ?role= listing filter. It is a superset of
// RoleName: "all" matches every user.
type Category string

const (
	CategoryAdmin     Category = "admin"
	CategoryModerator Category = "moderator"
	CategoryMentor    Category = "mentor"
	CategoryMember    Category = "member"
	CategoryAll       Category = "all"
)

// ParseCategory normalizes and validates a raw ?role= query value. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case CategoryAdmin, CategoryModerator, CategoryMentor, CategoryMember, CategoryAll:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown role category %q", ErrInvalidInput, raw)
	}
}

// Roles returns the role names the category matches. The moderator category
// includes admins: moderation-scoped listings always show both. A nil result
// means the category matches everyone.
func (c Category) Roles() []RoleName {
	switch c {
	case CategoryAdmin:
		return []RoleName{RoleAdmin}
	case CategoryModerator:
		return []RoleName{RoleAdmin, RoleModerator}
	case CategoryMentor:
		return []RoleName{RoleMentor}
	case CategoryMember:
		return []RoleName{RoleMember}
	default:
		return nil
	}
}

// Matches reports whether a role belongs to the category's listing.
func (r Role) Matches(c Category) bool {
	if c == CategoryAll {
		return true
	}
	for _, name := range c.Roles() {
		if r.Role == name {
			return true
		}
	}
	return false
}
