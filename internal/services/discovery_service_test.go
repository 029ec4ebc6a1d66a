package services

import (
	"context"
	"testing"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
)

func seedTeacher(t *testing.T, repo *fakeRepository, name, email, subject string) *models.User {
	t.Helper()
	user := &models.User{
		Name: name, Email: email, PasswordHash: "hash", Role: models.RoleTeacher,
		Subject: &subject,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed teacher %s: %v", email, err)
	}
	return user
}

func TestSearchTeachers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewDiscoveryService(repo, testLogger())

	seedTeacher(t, repo, "Ravi Menon", "ravi@example.com", "Mathematics")
	seedTeacher(t, repo, "Meera Iyer", "meera@example.com", "Physics")
	seedTeacher(t, repo, "John Mathew", "john@example.com", "Chemistry")
	seedAccount(t, repo, "Asha Verma", "asha@example.com", models.RoleStudent)

	tests := []struct {
		name    string
		filters repositories.TeacherFilters
		want    []string
	}{
		{"no filters lists all teachers", repositories.TeacherFilters{}, []string{"Ravi Menon", "Meera Iyer", "John Mathew"}},
		{"query matches name case-insensitively", repositories.TeacherFilters{Query: "ravi"}, []string{"Ravi Menon"}},
		{"query matches subject substring", repositories.TeacherFilters{Query: "math"}, []string{"Ravi Menon", "John Mathew"}},
		{"subject is an exact match", repositories.TeacherFilters{Subject: "Physics"}, []string{"Meera Iyer"}},
		{"query and subject are AND-combined", repositories.TeacherFilters{Query: "math", Subject: "Chemistry"}, []string{"John Mathew"}},
		{"no matches yields empty slice", repositories.TeacherFilters{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := service.SearchTeachers(ctx, tt.filters)
			if err != nil {
				t.Fatalf("SearchTeachers failed: %v", err)
			}
			if results == nil {
				t.Fatal("expected a non-nil slice")
			}
			if len(results) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(results))
			}
			for i, name := range tt.want {
				if results[i].Name != name {
					t.Errorf("result %d: expected %q, got %q", i, name, results[i].Name)
				}
			}
		})
	}

	t.Run("students never appear", func(t *testing.T) {
		results, err := service.SearchTeachers(ctx, repositories.TeacherFilters{Query: "asha"})
		if err != nil {
			t.Fatalf("SearchTeachers failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("student account leaked into discovery: %+v", results)
		}
	})
}
