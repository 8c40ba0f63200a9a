package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidTranspose = errors.New("invalid transposition")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("already exists")
)

// translate maps gorm's not-found error onto ErrNotFound and leaves others alone
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
