package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	ImageURL      string          `json:"imageUrl"`
	UserID        uuid.UUID       `json:"userId"`
	CategoryID    *uuid.UUID      `json:"categoryId"`
	StockQuantity int             `json:"stockQuantity"`
	Materials     []string        `json:"materials"`
	Dimensions    string          `json:"dimensions"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice"`
	ImageURL      *string          `json:"imageUrl"`
	CategoryID    *uuid.UUID       `json:"categoryId"`
	StockQuantity *int             `json:"stockQuantity"`
	Materials     []string         `json:"materials"`
	Dimensions    *string          `json:"dimensions"`
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// OK and Fail build the response envelope shared by every endpoint:
// {"success":true, <key>: <payload>} or {"success":false, "message": ...}.
func OK(key string, v any) map[string]any {
	return map[string]any{"success": true, key: v}
}

func OKMessage(msg string) map[string]any {
	return map[string]any{"success": true, "message": msg}
}

func Fail(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg}
}
