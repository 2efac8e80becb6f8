package domain

import "testing"

func TestPrincipal_Authorize(t *testing.T) {
	admin := Principal{Subject: "1", Username: "admin", Roles: []string{RoleAdmin}}
	user := Principal{Subject: "2", Username: "alice", Roles: []string{RoleUser}}

	cases := []struct {
		name     string
		p        Principal
		required []string
		want     bool
	}{
		{"no requirement allows user", user, nil, true},
		{"no requirement allows principal without roles", Principal{Subject: "3"}, nil, true},
		{"admin route allows admin", admin, []string{RoleAdmin}, true},
		{"admin route denies user", user, []string{RoleAdmin}, false},
		{"any of several roles", user, []string{RoleAdmin, RoleUser}, true},
		{"case-insensitive match", Principal{Roles: []string{"admin"}}, []string{RoleAdmin}, true},
		{"no roles denied when required", Principal{Subject: "4"}, []string{RoleUser}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Authorize(tc.required...); got != tc.want {
				t.Fatalf("Authorize(%v) = %v, want %v", tc.required, got, tc.want)
			}
		})
	}
}

func TestCanonicalRole(t *testing.T) {
	cases := map[string]struct {
		role string
		ok   bool
	}{
		"":       {RoleUser, true},
		"  ":     {RoleUser, true},
		"User":   {RoleUser, true},
		"user":   {RoleUser, true},
		"ADMIN":  {RoleAdmin, true},
		"Admin":  {RoleAdmin, true},
		"Editor": {"", false},
		"root":   {"", false},
	}
	for in, want := range cases {
		got, ok := CanonicalRole(in)
		if got != want.role || ok != want.ok {
			t.Errorf("CanonicalRole(%q) = (%q, %v), want (%q, %v)", in, got, ok, want.role, want.ok)
		}
	}
}
