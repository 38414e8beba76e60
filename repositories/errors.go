package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested record (or favorite target) does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation, e.g. a reused email.
	ErrDuplicate = errors.New("record already exists")
)

// translate maps GORM's translated errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrNotFound
	default:
		return err
	}
}

// Page size bounds shared by every listing surface.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage defaults missing values and caps pageSize at MaxPageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func paginate(page, pageSize int) (offset, limit int) {
	page, pageSize = NormalizePage(page, pageSize)
	return (page - 1) * pageSize, pageSize
}
