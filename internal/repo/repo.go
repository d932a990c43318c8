package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the storage-level miss; services translate it into
// their own taxonomy.
var ErrNotFound = errors.New("record not found")

type GormRepo struct {
	DB *gorm.DB
}

// Transaction runs fn against a repo bound to a single transaction, so
// multi-write request paths commit or roll back as one unit.
func (r *GormRepo) Transaction(ctx context.Context, fn func(*GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
