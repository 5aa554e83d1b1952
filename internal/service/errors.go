package service

import (
	"errors"

	"quiz_app_backend/internal/util"

	"gorm.io/gorm"
)

// asNotFound turns a gorm record-not-found into the typed domain error and
// passes every other failure through untouched.
func asNotFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewNotFoundError(entity, id)
	}
	return err
}
