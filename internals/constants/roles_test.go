package constants

import "testing"

func TestHasRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    bool
	}{
		{"student in student-only", RoleStudent, StudentOnly, true},
		{"ta can review", RoleTA, InstructorAndAbove, true},
		{"instructor can review", RoleInstructor, InstructorAndAbove, true},
		{"student cannot review", RoleStudent, InstructorAndAbove, false},
		{"instructor is not admin", RoleInstructor, AdminOnly, false},
		{"admin only", RoleAdmin, AdminOnly, true},
		{"known role", RoleTA, AllRoles, true},
		{"unknown role", "superuser", AllRoles, false},
		{"empty role", "", StudentOnly, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.role, tt.allowed); got != tt.want {
				t.Errorf("HasRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestAllRolesCoversEveryRole(t *testing.T) {
	for _, role := range []string{RoleStudent, RoleTA, RoleInstructor, RoleAdmin} {
		if !HasRole(role, AllRoles) {
			t.Errorf("%s missing from AllRoles", role)
		}
	}
	if len(AllRoles) != 4 {
		t.Errorf("AllRoles has %d entries, want 4", len(AllRoles))
	}
}
