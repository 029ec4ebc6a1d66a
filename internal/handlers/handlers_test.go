package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/services"
	"github.com/sikado/tutoring-service/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubIdentityService drives auth handler and middleware tests.
type stubIdentityService struct {
	registerResp *services.AuthResponse
	registerErr  error
	loginResp    *services.AuthResponse
	loginErr     error
	verifyID     uint
	verifyErr    error
}

func (s *stubIdentityService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubIdentityService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubIdentityService) Verify(token string) (uint, error) {
	return s.verifyID, s.verifyErr
}

// stubUserRepo satisfies the account lookup done by the auth middleware.
type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.user, s.err
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.user, s.err
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) SearchTeachers(ctx context.Context, filters repositories.TeacherFilters) ([]*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type stubContactService struct {
	sendResp *services.SendContactResponse
	sendErr  error
	requests []*models.ContactRequest
	listErr  error
}

func (s *stubContactService) SendRequest(ctx context.Context, studentID uint, req *services.SendContactRequest) (*services.SendContactResponse, error) {
	return s.sendResp, s.sendErr
}

func (s *stubContactService) ListForTeacher(ctx context.Context, teacherID uint) ([]*models.ContactRequest, error) {
	return s.requests, s.listErr
}

func (s *stubContactService) ExportForTeacher(ctx context.Context, teacherID uint) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

func performRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("successful registration returns 201", func(t *testing.T) {
		identity := &stubIdentityService{
			registerResp: &services.AuthResponse{
				Token:   "token-123",
				Account: &models.AccountSummary{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleStudent},
			},
		}
		handler := NewAuthHandler(identity, testLogger())

		router := gin.New()
		router.POST("/register", handler.Register)

		w := performRequest(router, http.MethodPost, "/register",
			`{"name":"Asha","email":"asha@example.com","password":"secret123","role":"student"}`, nil)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp services.AuthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.Token != "token-123" {
			t.Errorf("unexpected token %q", resp.Token)
		}
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		handler := NewAuthHandler(&stubIdentityService{registerErr: services.ErrEmailTaken}, testLogger())

		router := gin.New()
		router.POST("/register", handler.Register)

		w := performRequest(router, http.MethodPost, "/register",
			`{"name":"Asha","email":"asha@example.com","password":"secret123","role":"student"}`, nil)

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		handler := NewAuthHandler(&stubIdentityService{}, testLogger())

		router := gin.New()
		router.POST("/register", handler.Register)

		w := performRequest(router, http.MethodPost, "/register", `{"name":`, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("bad credentials return 401", func(t *testing.T) {
		handler := NewAuthHandler(&stubIdentityService{loginErr: services.ErrInvalidCredentials}, testLogger())

		router := gin.New()
		router.POST("/login", handler.Login)

		w := performRequest(router, http.MethodPost, "/login",
			`{"email":"asha@example.com","password":"wrong"}`, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestTokenAuthMiddleware(t *testing.T) {
	protected := func(middleware *TokenAuthMiddleware) *gin.Engine {
		router := gin.New()
		router.GET("/protected", middleware.AuthMiddleware(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id")})
		})
		return router
	}

	t.Run("missing header", func(t *testing.T) {
		middleware := NewTokenAuthMiddleware(&stubIdentityService{}, &stubUserRepo{})
		w := performRequest(protected(middleware), http.MethodGet, "/protected", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		middleware := NewTokenAuthMiddleware(&stubIdentityService{}, &stubUserRepo{})
		w := performRequest(protected(middleware), http.MethodGet, "/protected", "",
			map[string]string{"Authorization": "Token abc"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		middleware := NewTokenAuthMiddleware(&stubIdentityService{verifyErr: services.ErrUnauthenticated}, &stubUserRepo{})
		w := performRequest(protected(middleware), http.MethodGet, "/protected", "",
			map[string]string{"Authorization": "Bearer bad-token"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token resolves the account", func(t *testing.T) {
		middleware := NewTokenAuthMiddleware(
			&stubIdentityService{verifyID: 42},
			&stubUserRepo{user: &models.User{ID: 42, Role: models.RoleStudent}},
		)
		w := performRequest(protected(middleware), http.MethodGet, "/protected", "",
			map[string]string{"Authorization": "Bearer good-token"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("role check forbids the wrong role", func(t *testing.T) {
		middleware := NewTokenAuthMiddleware(
			&stubIdentityService{verifyID: 42},
			&stubUserRepo{user: &models.User{ID: 42, Role: models.RoleStudent}},
		)
		router := gin.New()
		router.GET("/teacher-only",
			middleware.AuthMiddleware(),
			middleware.RequireRoleMiddleware(models.RoleTeacher),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := performRequest(router, http.MethodGet, "/teacher-only", "",
			map[string]string{"Authorization": "Bearer good-token"})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})
}

func TestContactHandler(t *testing.T) {
	authed := func(contactService services.ContactService) *gin.Engine {
		handler := NewContactHandler(contactService, testLogger())
		router := gin.New()
		router.POST("/contact-requests", func(c *gin.Context) {
			c.Set("user_id", uint(1))
			handler.CreateContactRequest(c)
		})
		return router
	}

	body := `{"teacher_id":2,"student_name":"Asha","requirements":"Calculus","availability":"Weekends"}`

	t.Run("created request returns 201 with notification outcome", func(t *testing.T) {
		router := authed(&stubContactService{
			sendResp: &services.SendContactResponse{
				Request:  &models.ContactRequest{ID: 1, Status: models.RequestPending},
				Notified: false,
				Message:  "Request saved but notification failed to send",
			},
		})

		w := performRequest(router, http.MethodPost, "/contact-requests", body, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp services.SendContactResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.Notified {
			t.Error("expected notified=false to pass through")
		}
	})

	t.Run("unknown teacher returns 404", func(t *testing.T) {
		router := authed(&stubContactService{sendErr: services.ErrTeacherNotFound})

		w := performRequest(router, http.MethodPost, "/contact-requests", body, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("validation failure returns 400", func(t *testing.T) {
		router := authed(&stubContactService{sendErr: services.ErrValidationFailed})

		w := performRequest(router, http.MethodPost, "/contact-requests", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing auth context returns 401", func(t *testing.T) {
		handler := NewContactHandler(&stubContactService{}, testLogger())
		router := gin.New()
		router.POST("/contact-requests", handler.CreateContactRequest)

		w := performRequest(router, http.MethodPost, "/contact-requests", body, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
