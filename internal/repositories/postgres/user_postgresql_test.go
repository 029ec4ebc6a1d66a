package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sikado/tutoring-service/internal/cache"
	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
)

func TestSearchCacheKey(t *testing.T) {
	t.Run("filter values cannot forge another combination", func(t *testing.T) {
		smuggled := searchCacheKey(repositories.TeacherFilters{Query: "math&subject=Physics"})
		split := searchCacheKey(repositories.TeacherFilters{Query: "math", Subject: "Physics"})
		if smuggled == split {
			t.Errorf("distinct filters share cache key %q", smuggled)
		}
	})

	t.Run("same filters produce the same key", func(t *testing.T) {
		filters := repositories.TeacherFilters{Query: "math", Subject: "Physics"}
		if searchCacheKey(filters) != searchCacheKey(filters) {
			t.Error("key is not deterministic")
		}
	})

	t.Run("keys stay under the search prefix for invalidation", func(t *testing.T) {
		key := searchCacheKey(repositories.TeacherFilters{Query: "math"})
		if !strings.HasPrefix(key, "search:") {
			t.Errorf("key %q escapes the search: prefix", key)
		}
	})
}

func TestSearchTeachersCacheHit(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	// No database handle: a cache hit must be served without touching it.
	repo := &userRepository{cacheManager: cache.NewCacheManager(client)}

	filters := repositories.TeacherFilters{Query: "math", Subject: "Physics"}
	subject := "Physics"
	cached := []*models.User{{ID: 7, Name: "Meera Iyer", Role: models.RoleTeacher, Subject: &subject}}
	if err := repo.cacheManager.Teachers.Set(ctx, searchCacheKey(filters), cached, time.Minute); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	got, err := repo.SearchTeachers(ctx, filters)
	if err != nil {
		t.Fatalf("SearchTeachers failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 || got[0].Name != "Meera Iyer" {
		t.Errorf("unexpected cached result: %+v", got)
	}
}
