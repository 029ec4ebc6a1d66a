package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests. It enforces
// the same email uniqueness and ordering guarantees as the real store.
type fakeRepository struct {
	mu sync.Mutex

	users       map[uint]*models.User
	requests    map[uint]*models.ContactRequest
	nextUserID  uint
	nextReqID   uint
	clock       time.Time
	failCreate  error
	failSearch  error
	failGetByID error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:      make(map[uint]*models.User),
		requests:   make(map[uint]*models.ContactRequest),
		nextUserID: 1,
		nextReqID:  1,
		clock:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepository) User() repositories.UserRepository {
	return (*fakeUserRepo)(f)
}

func (f *fakeRepository) ContactRequest() repositories.ContactRequestRepository {
	return (*fakeRequestRepo)(f)
}

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// tick returns a strictly increasing timestamp so creation order is
// unambiguous in ordering tests.
func (f *fakeRepository) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

type fakeUserRepo fakeRepository

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return f.failCreate
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}

	user.ID = f.nextUserID
	f.nextUserID++
	user.CreatedAt = f.tick()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGetByID != nil {
		return nil, f.failGetByID
	}
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	user.UpdatedAt = f.tick()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) SearchTeachers(ctx context.Context, filters repositories.TeacherFilters) ([]*models.User, error) {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSearch != nil {
		return nil, f.failSearch
	}

	matched := make([]*models.User, 0)
	for _, user := range f.users {
		if user.Role != models.RoleTeacher {
			continue
		}
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			subject := ""
			if user.Subject != nil {
				subject = *user.Subject
			}
			if !strings.Contains(strings.ToLower(user.Name), q) &&
				!strings.Contains(strings.ToLower(subject), q) {
				continue
			}
		}
		if filters.Subject != "" {
			if user.Subject == nil || *user.Subject != filters.Subject {
				continue
			}
		}
		copied := *user
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo fakeRepository

func (r *fakeRequestRepo) Create(ctx context.Context, request *models.ContactRequest) error {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	request.ID = f.nextReqID
	f.nextReqID++
	request.CreatedAt = f.tick()

	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id uint) (*models.ContactRequest, error) {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.ContactRequest, error) {
	f := (*fakeRepository)(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*models.ContactRequest, 0)
	for _, request := range f.requests {
		if request.TeacherID == teacherID {
			copied := *request
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
