package domain

import (
	"errors"
	"testing"
	"time"
)

func TestRoleValidate(t *testing.T) {
	cases := []struct {
		name string
		role Role
		ok   bool
	}{
		{"admin at 1", Role{Role: RoleAdmin, Position: 1}, true},
		{"admin elsewhere", Role{Role: RoleAdmin, Position: 0}, false},
		{"moderator above 1", Role{Role: RoleModerator, Position: 4}, true},
		{"moderator at 1", Role{Role: RoleModerator, Position: 1}, false},
		{"moderator negative", Role{Role: RoleModerator, Position: -2}, false},
		{"mentor negative", Role{Role: RoleMentor, Position: -1}, true},
		{"mentor at 0", Role{Role: RoleMentor, Position: 0}, false},
		{"mentor positive", Role{Role: RoleMentor, Position: 3}, false},
		{"member at 0", Role{Role: RoleMember, Position: 0}, true},
		{"member nonzero", Role{Role: RoleMember, Position: -1}, false},
		{"unknown name", Role{Role: "owner", Position: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.role.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				if !errors.Is(err, ErrInvalidRole) {
					t.Fatalf("expected ErrInvalidRole, got %v", err)
				}
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for raw, want := range map[string]Category{
		"admin":      CategoryAdmin,
		"Moderator":  CategoryModerator,
		"  MENTOR  ": CategoryMentor,
		"member":     CategoryMember,
		"All":        CategoryAll,
	} {
		got, err := ParseCategory(raw)
		if err != nil {
			t.Fatalf("ParseCategory(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseCategory("editor"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
	if _, err := ParseCategory(""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty category, got %v", err)
	}
}

func TestCategoryMatches(t *testing.T) {
	admin := Role{Role: RoleAdmin, Position: 1}
	moderator := Role{Role: RoleModerator, Position: 2}
	mentor := Role{Role: RoleMentor, Position: -1}
	member := Role{Role: RoleMember}

	if !admin.Matches(CategoryModerator) {
		t.Fatalf("admins must appear in the moderator category")
	}
	if !moderator.Matches(CategoryModerator) {
		t.Fatalf("moderators must appear in their own category")
	}
	if mentor.Matches(CategoryModerator) {
		t.Fatalf("mentors must not appear in the moderator category")
	}
	for _, r := range []Role{admin, moderator, mentor, member} {
		if !r.Matches(CategoryAll) {
			t.Fatalf("every role must match the all category, %+v did not", r)
		}
	}
}

func TestSortBySeniority(t *testing.T) {
	now := time.Now()
	users := []User{
		{Username: "third", Role: Role{Role: RoleModerator, Position: 3}},
		{Username: "first", Role: Role{Role: RoleAdmin, Position: 1}},
		{Username: "second", Role: Role{Role: RoleModerator, Position: 2}},
	}
	SortBySeniority(users)
	for i, want := range []string{"first", "second", "third"} {
		if users[i].Username != want {
			t.Fatalf("index %d: expected %s, got %s", i, want, users[i].Username)
		}
	}

	mentors := []User{
		{Username: "junior", Role: Role{Role: RoleMentor, Position: -1}},
		{Username: "senior", Role: Role{Role: RoleMentor, Position: -4}},
	}
	SortBySeniority(mentors)
	if mentors[0].Username != "senior" {
		t.Fatalf("most senior mentor must come first, got %s", mentors[0].Username)
	}

	members := []User{
		{Username: "old", Role: Role{Role: RoleMember}, CreatedAt: now.Add(-time.Hour)},
		{Username: "new", Role: Role{Role: RoleMember}, CreatedAt: now},
	}
	SortBySeniority(members)
	if members[0].Username != "new" {
		t.Fatalf("members must list newest first, got %s", members[0].Username)
	}
}
