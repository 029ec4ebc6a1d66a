package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound marks lookups that matched no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey marks inserts rejected by a uniqueness constraint. The
	// email unique index reports through this, which is the authoritative
	// guard behind the registration check-then-insert sequence.
	ErrDuplicateKey = errors.New("duplicate key")
)

// IsNotFoundError reports whether err is a missing-row error from any layer.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a uniqueness violation.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey)
}
