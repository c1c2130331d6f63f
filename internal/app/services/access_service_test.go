package services

import (
	"testing"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/config"
)

func testPolicy() config.DashboardConfig {
	return config.DashboardConfig{
		AdminRoles:              []string{"manager"},
		TeacherRoles:            []string{"editingteacher", "teacher"},
		StudentRoles:            []string{"student"},
		GuestUsers:              []string{"guest"},
		AllowUnassignedStudents: true,
	}
}

func TestResolveRoleSet(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		name                 string
		isSiteAdmin          bool
		isGuest              bool
		systemRoles          []string
		hasTeacherEnrollment bool
		want                 models.RoleSet
	}{
		{
			name: "no roles at all",
			want: models.RoleSet{},
		},
		{
			name:        "site admin",
			isSiteAdmin: true,
			want:        models.RoleSet{IsAdmin: true},
		},
		{
			name:        "manager role",
			systemRoles: []string{"manager"},
			want:        models.RoleSet{IsAdmin: true},
		},
		{
			name:        "teacher by role name",
			systemRoles: []string{"editingteacher"},
			want:        models.RoleSet{IsTeacher: true},
		},
		{
			name:                 "teacher by enrollment only",
			hasTeacherEnrollment: true,
			want:                 models.RoleSet{IsTeacher: true},
		},
		{
			name:        "student role",
			systemRoles: []string{"student"},
			want:        models.RoleSet{IsStudent: true},
		},
		{
			name:                 "teacher and student together",
			systemRoles:          []string{"student"},
			hasTeacherEnrollment: true,
			want:                 models.RoleSet{IsTeacher: true, IsStudent: true},
		},
		{
			name:        "unrecognized role names",
			systemRoles: []string{"coursecreator", "auditor"},
			want:        models.RoleSet{},
		},
		{
			name:                 "guest gets nothing",
			isGuest:              true,
			isSiteAdmin:          true,
			systemRoles:          []string{"manager", "student"},
			hasTeacherEnrollment: true,
			want:                 models.RoleSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRoleSet(tt.isSiteAdmin, tt.isGuest, tt.systemRoles, tt.hasTeacherEnrollment, policy)
			if got != tt.want {
				t.Errorf("ResolveRoleSet() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRoleSetViewPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		roles models.RoleSet
		want  models.RoleView
	}{
		{"admin beats everything", models.RoleSet{IsAdmin: true, IsTeacher: true, IsStudent: true}, models.RoleAdmin},
		{"teacher beats student", models.RoleSet{IsTeacher: true, IsStudent: true}, models.RoleTeacher},
		{"student alone", models.RoleSet{IsStudent: true}, models.RoleStudent},
		{"nothing", models.RoleSet{}, models.RoleView("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.roles.View(); got != tt.want {
				t.Errorf("View() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStudentAccessAllowed(t *testing.T) {
	tests := []struct {
		name            string
		roles           models.RoleSet
		isGuest         bool
		allowUnassigned bool
		want            bool
	}{
		{"student role", models.RoleSet{IsStudent: true}, false, false, true},
		{"admin may inspect", models.RoleSet{IsAdmin: true}, false, false, true},
		{"teacher without student role", models.RoleSet{IsTeacher: true}, false, true, false},
		{"unassigned with fallback", models.RoleSet{}, false, true, true},
		{"unassigned without fallback", models.RoleSet{}, false, false, false},
		{"guest never", models.RoleSet{}, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := testPolicy()
			policy.AllowUnassignedStudents = tt.allowUnassigned
			svc := &AccessService{policy: policy}
			if got := svc.StudentAccessAllowed(tt.roles, tt.isGuest); got != tt.want {
				t.Errorf("StudentAccessAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsGuest(t *testing.T) {
	svc := &AccessService{policy: testPolicy()}

	if !svc.IsGuest("guest") {
		t.Error("IsGuest(guest) = false, want true")
	}
	if svc.IsGuest("ivanov") {
		t.Error("IsGuest(ivanov) = true, want false")
	}
}
