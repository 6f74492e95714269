package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/domain"
)

func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
