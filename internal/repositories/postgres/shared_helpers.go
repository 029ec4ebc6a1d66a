package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sikado/tutoring-service/internal/repositories"
)

// handleDBError translates gorm errors into the repository error taxonomy so
// callers can branch with IsNotFoundError / IsDuplicateKeyError.
func handleDBError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, repositories.ErrRecordNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, repositories.ErrDuplicateKey)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, repositories.ErrDuplicateKey)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// isUniqueViolation catches postgres unique violations that gorm did not
// translate (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "SQLSTATE 23505")
}
