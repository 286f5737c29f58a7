package model

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range AllRoles {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	for _, r := range []Role{"", "root", "Superadmin", "ADMIN"} {
		if r.Valid() {
			t.Errorf("%q should be invalid", r)
		}
	}
}

func TestContentAndUserGates(t *testing.T) {
	cases := []struct {
		role    Role
		content bool
		users   bool
	}{
		{RoleSuperadmin, true, true},
		{RoleAgency, true, true},
		{RoleAdmin, true, true},
		{RoleViewer, false, false},
		{Role("root"), false, false},
	}

	for _, c := range cases {
		if got := c.role.CanModifyContent(); got != c.content {
			t.Errorf("%s.CanModifyContent() = %v, want %v", c.role, got, c.content)
		}
		if got := c.role.CanManageUsers(); got != c.users {
			t.Errorf("%s.CanManageUsers() = %v, want %v", c.role, got, c.users)
		}
	}
}

func TestAllowedRoles(t *testing.T) {
	want := map[Role][]Role{
		RoleSuperadmin: {RoleSuperadmin, RoleAgency, RoleAdmin, RoleViewer},
		RoleAgency:     {RoleAgency, RoleAdmin, RoleViewer},
		RoleAdmin:      {RoleAdmin, RoleViewer},
		RoleViewer:     {},
	}

	for actor, expected := range want {
		got := actor.AllowedRoles()
		if len(got) != len(expected) {
			t.Errorf("%s: allowed = %v, want %v", actor, got, expected)
			continue
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("%s: allowed = %v, want %v", actor, got, expected)
				break
			}
		}
	}
}

func TestAllowedRolesReturnsCopy(t *testing.T) {
	first := RoleSuperadmin.AllowedRoles()
	first[0] = RoleViewer
	if RoleSuperadmin.AllowedRoles()[0] != RoleSuperadmin {
		t.Error("mutating the returned slice leaked into the allow-list")
	}
}

func TestCanAdminister(t *testing.T) {
	// Only superadmins may grant or touch superadmin; the allow-lists are
	// monotone down the rank order.
	cases := []struct {
		actor, target Role
		want          bool
	}{
		{RoleSuperadmin, RoleSuperadmin, true},
		{RoleSuperadmin, RoleViewer, true},
		{RoleAgency, RoleSuperadmin, false},
		{RoleAgency, RoleAgency, true},
		{RoleAgency, RoleAdmin, true},
		{RoleAdmin, RoleAgency, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleViewer, true},
		{RoleViewer, RoleViewer, false},
		{Role("root"), RoleViewer, false},
	}

	for _, c := range cases {
		if got := c.actor.CanAdminister(c.target); got != c.want {
			t.Errorf("%s.CanAdminister(%s) = %v, want %v", c.actor, c.target, got, c.want)
		}
	}
}
