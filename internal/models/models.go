package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product holds only stored attributes. Rating, review count, the is-new
// flag and the discount percent are recomputed on every read by the catalog
// package and never written back.
type Product struct {
	ID            uuid.UUID       `gorm:"primaryKey"                json:"id"`
	Name          string          `gorm:"not null"                  json:"name"`
	Description   string          `json:"description,omitempty"`
	OriginalPrice decimal.Decimal `gorm:"type:numeric;not null"     json:"originalPrice"`
	CurrentPrice  decimal.Decimal `gorm:"type:numeric;not null"     json:"currentPrice"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	StockQuantity int             `gorm:"not null"                  json:"stockQuantity"`
	Materials     []string        `gorm:"serializer:json"           json:"materials,omitempty"`
	Dimensions    string          `json:"dimensions,omitempty"`
	CategoryID    *uuid.UUID      `gorm:"index"                     json:"categoryId,omitempty"`
	UserID        uuid.UUID       `gorm:"index;not null"            json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

type Review struct {
	ID        uuid.UUID `gorm:"primaryKey"                            json:"id"`
	ProductID uuid.UUID `gorm:"index;not null"                        json:"productId"`
	UserID    uuid.UUID `gorm:"index;not null"                        json:"userId"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}

type Category struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null"   json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Name         string    `gorm:"not null"         json:"name"`
	Email        string    `gorm:"unique;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	Biography    string    `json:"biography,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
