package repository

import (
	"errors"

	"gorm.io/gorm"
)

// notFound swaps gorm's record-not-found for the domain error nf.
func notFound(err, nf error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return err
}
