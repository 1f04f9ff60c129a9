package httpserver

import (
	"errors"

	"gorm.io/gorm"

	"github.com/crafthub/storefront/internal/catalog"
)

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, catalog.ErrNotFound)
}
