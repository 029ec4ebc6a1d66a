package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sikado/tutoring-service/internal/cache"
	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
)

type userRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &userRepository{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}

	if user.Role == models.RoleTeacher {
		cache.InvalidateTeacherCache(ctx, r.cacheManager, user.ID)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}

	if user.Role == models.RoleTeacher {
		cache.InvalidateTeacherCache(ctx, r.cacheManager, user.ID)
	} else {
		cache.SafeDelete(ctx, r.cacheManager.Profiles, fmt.Sprintf("id:%d", user.ID))
	}
	return nil
}

// ===== QUERY OPERATIONS =====

// searchCacheKey encodes the filters so that values containing '&' or '='
// cannot collide with a different filter combination.
func searchCacheKey(filters repositories.TeacherFilters) string {
	params := url.Values{}
	params.Set("q", filters.Query)
	params.Set("subject", filters.Subject)
	return "search:" + params.Encode()
}

func (r *userRepository) SearchTeachers(ctx context.Context, filters repositories.TeacherFilters) ([]*models.User, error) {
	cacheKey := searchCacheKey(filters)

	var cached []*models.User
	if err := r.cacheManager.Teachers.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var teachers []*models.User
	query := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleTeacher)

	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR subject ILIKE ?", pattern, pattern)
	}
	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}

	if err := query.Order("id ASC").Find(&teachers).Error; err != nil {
		return nil, handleDBError(err, "search teachers")
	}

	// Cache writes are best effort
	_ = r.cacheManager.Teachers.Set(ctx, cacheKey, teachers, cache.TeacherCacheConfig.TTL)

	return teachers, nil
}

// ===== VALIDATION AND CHECKS =====

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check email existence")
	}
	return count > 0, nil
}
