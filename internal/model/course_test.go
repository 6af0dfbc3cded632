package model

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Full Stack Web Development", "full-stack-web-development"},
		{"Advanced Go Patterns!", "advanced-go-patterns"},
		{"  spaced   out  ", "spaced-out"},
		{"C++ & Friends", "c-friends"},
		{"already-a-slug", "already-a-slug"},
		{"123 Numbers", "123-numbers"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserIsStaff(t *testing.T) {
	tests := []struct {
		role UserRole
		want bool
	}{
		{Student, false},
		{Staff, true},
		{Admin, true},
	}
	for _, tt := range tests {
		u := &User{Role: tt.role}
		if got := u.IsStaff(); got != tt.want {
			t.Errorf("IsStaff(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
