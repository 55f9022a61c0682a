package users

import "testing"

func TestIsAdminMatchesRoleOnly(t *testing.T) {
	cases := []struct {
		user User
		want bool
	}{
		{User{Username: "ana", Role: RoleAdmin}, true},
		{User{Username: "admin", Role: RoleUser}, false},
		{User{Username: "admin"}, false},
		{User{Username: "guest", Role: "Admin"}, false},
		{User{}, false},
	}
	for _, tc := range cases {
		if got := tc.user.IsAdmin(); got != tc.want {
			t.Fatalf("user %+v: expected IsAdmin=%v, got %v", tc.user, tc.want, got)
		}
	}
}
