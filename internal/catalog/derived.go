package catalog

import (
	"time"

	"github.com/crafthub/storefront/internal/models"
	"github.com/crafthub/storefront/internal/pricing"
)

// NewProductWindow is how long a product counts as "new" after creation.
// The boundary is inclusive: a product exactly this old is still new.
const NewProductWindow = 7 * 24 * time.Hour

// DerivedFields are the read-only product attributes recomputed from the
// stored product and its reviews on every read. They are never persisted.
type DerivedFields struct {
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"reviewCount"`
	IsNew           bool    `json:"isNew"`
	DiscountPercent *int    `json:"discountPercent,omitempty"`
}

// ComputeDerived is a pure function of the product, its review set and the
// current time. Storage is assumed to hold valid ratings (1-5, enforced at
// write time), so no clamping happens here.
func ComputeDerived(p *models.Product, reviews []models.Review, now time.Time) DerivedFields {
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}

	return DerivedFields{
		Rating:          pricing.Rating(sum, len(reviews)),
		ReviewCount:     len(reviews),
		IsNew:           now.Sub(p.CreatedAt) <= NewProductWindow,
		DiscountPercent: pricing.DiscountPercent(p.OriginalPrice, p.CurrentPrice),
	}
}
