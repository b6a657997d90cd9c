package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

func nowUTC() time.Time { return time.Now().UTC() }

// runTx wraps fn in a database transaction. With a nil db (in-memory fakes
// in unit tests) fn runs directly with a nil tx; repository fakes ignore it.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
