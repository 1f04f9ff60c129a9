package transport

import (
	"errors"

	"github.com/google/uuid"
)

// Request validation runs at the top of each handler and returns a
// human-readable message suitable for a 400 body.

func (r CreateProductRequest) Validate() error {
	if len(r.Name) < 3 {
		return errors.New("name must be at least 3 characters long")
	}
	if r.OriginalPrice.Sign() <= 0 {
		return errors.New("original price must be greater than 0")
	}
	if r.CurrentPrice.Sign() <= 0 {
		return errors.New("current price must be greater than 0")
	}
	if r.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if r.StockQuantity < 0 {
		return errors.New("stock quantity must not be negative")
	}
	return nil
}

func (r UpdateProductRequest) Validate() error {
	if r.Name != nil && len(*r.Name) < 3 {
		return errors.New("name must be at least 3 characters long")
	}
	if r.OriginalPrice != nil && r.OriginalPrice.Sign() <= 0 {
		return errors.New("original price must be greater than 0")
	}
	if r.CurrentPrice != nil && r.CurrentPrice.Sign() <= 0 {
		return errors.New("current price must be greater than 0")
	}
	if r.StockQuantity != nil && *r.StockQuantity < 0 {
		return errors.New("stock quantity must not be negative")
	}
	return nil
}

func (r CreateReviewRequest) Validate() error {
	if r.ProductID == uuid.Nil {
		return errors.New("product ID is required")
	}
	if r.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

func (r UpdateReviewRequest) Validate() error {
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

func (r CreateCategoryRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
