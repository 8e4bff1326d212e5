package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// checkID turns malformed ids into not-found instead of a uuid cast error
// from postgres.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return gorm.ErrRecordNotFound
	}
	return nil
}
