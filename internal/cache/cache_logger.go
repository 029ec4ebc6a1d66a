package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateTeacherCache drops cached discovery results and the teacher's
// profile after a profile or account write.
func InvalidateTeacherCache(ctx context.Context, cm *CacheManager, teacherID uint) {
	SafeInvalidatePattern(ctx, cm.Teachers, "search:*")
	SafeDelete(ctx, cm.Profiles, fmt.Sprintf("id:%d", teacherID))
}
