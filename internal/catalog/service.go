// Package catalog is the aggregation engine: it joins stored products with
// their reviews and produces fully computed read-models.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crafthub/storefront/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type ProductStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error)
	GetProductsByUser(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
}

type ReviewStore interface {
	GetReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	GetReviewsByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]models.Review, error)
	GetReviewsByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
}

type CategoryStore interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

type Service struct {
	Products   ProductStore
	Reviews    ReviewStore
	Categories CategoryStore
	Users      UserStore

	// Now is the clock used for the is-new computation. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type ProductReadModel struct {
	models.Product
	DerivedFields

	Category *models.Category  `json:"category,omitempty"`
	Reviews  []ReviewReadModel `json:"reviews,omitempty"`
}

type ReviewReadModel struct {
	models.Review

	// User is the review author, joined best-effort: nil when the author
	// record no longer exists.
	User *Author `json:"user,omitempty"`
}

type Author struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

type UserReadModel struct {
	models.User

	// AverageRating is the unweighted mean rating across the user's
	// reviewed products. Products without reviews do not dilute it.
	AverageRating float64            `json:"averageRating"`
	Products      []ProductReadModel `json:"products"`
}

// ProductFilter narrows ResolveProducts. Zero value means all products.
type ProductFilter struct {
	CategoryID *uuid.UUID
	UserID     *uuid.UUID
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}

// ResolveProduct returns the read-model for one product. withRelations also
// loads the category and the review list with author names; those joins are
// best-effort and a dangling reference degrades to nil instead of failing
// the whole resolution.
func (s *Service) ResolveProduct(ctx context.Context, id uuid.UUID, withRelations bool) (*ProductReadModel, error) {
	product, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	reviews, err := s.Reviews.GetReviewsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	rm := &ProductReadModel{
		Product:       *product,
		DerivedFields: ComputeDerived(product, reviews, s.now()),
	}

	if withRelations {
		if product.CategoryID != nil {
			if cat, err := s.Categories.GetCategory(ctx, *product.CategoryID); err == nil {
				rm.Category = cat
			}
		}
		rm.Reviews = s.joinAuthors(ctx, reviews)
	}

	return rm, nil
}

// ResolveProducts aggregates every product matched by the filter. Reviews
// are fetched once for the whole id set and grouped in memory, so the
// review store sees a bounded number of queries however long the list is.
func (s *Service) ResolveProducts(ctx context.Context, filter ProductFilter) ([]ProductReadModel, error) {
	var (
		products []models.Product
		err      error
	)
	switch {
	case filter.CategoryID != nil:
		products, err = s.Products.GetProductsByCategory(ctx, *filter.CategoryID)
	case filter.UserID != nil:
		products, err = s.Products.GetProductsByUser(ctx, *filter.UserID)
	default:
		products, err = s.Products.GetProducts(ctx)
	}
	if err != nil {
		return nil, err
	}

	return s.aggregate(ctx, products)
}

func (s *Service) aggregate(ctx context.Context, products []models.Product) ([]ProductReadModel, error) {
	if len(products) == 0 {
		return []ProductReadModel{}, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	reviews, err := s.Reviews.GetReviewsByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]models.Review, len(products))
	for _, rv := range reviews {
		byProduct[rv.ProductID] = append(byProduct[rv.ProductID], rv)
	}

	now := s.now()
	out := make([]ProductReadModel, len(products))
	for i := range products {
		p := products[i]
		out[i] = ProductReadModel{
			Product:       p,
			DerivedFields: ComputeDerived(&p, byProduct[p.ID], now),
		}
	}
	return out, nil
}

// ResolveUser returns the user read-model with owned products and the
// average rating across the reviewed ones.
func (s *Service) ResolveUser(ctx context.Context, id uuid.UUID) (*UserReadModel, error) {
	user, err := s.Users.GetUser(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}

	products, err := s.Products.GetProductsByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	aggregated, err := s.aggregate(ctx, products)
	if err != nil {
		return nil, err
	}

	return &UserReadModel{
		User:          *user,
		AverageRating: averageRating(aggregated),
		Products:      aggregated,
	}, nil
}

// averageRating excludes unreviewed products so a seller with one rated and
// one unrated product keeps the rated score undiluted. No reviewed products
// at all means 0.
func averageRating(products []ProductReadModel) float64 {
	sumTenths, n := 0, 0
	for _, p := range products {
		if p.ReviewCount == 0 {
			continue
		}
		sumTenths += int(p.Rating*10 + 0.5)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64((2*sumTenths+n)/(2*n)) / 10
}

// ResolveReviews joins each review with its author display name,
// best-effort.
func (s *Service) ResolveReviews(ctx context.Context, reviews []models.Review) []ReviewReadModel {
	return s.joinAuthors(ctx, reviews)
}

func (s *Service) joinAuthors(ctx context.Context, reviews []models.Review) []ReviewReadModel {
	out := make([]ReviewReadModel, len(reviews))
	if len(reviews) == 0 {
		return out
	}

	seen := make(map[uuid.UUID]struct{}, len(reviews))
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, rv := range reviews {
		if _, ok := seen[rv.UserID]; !ok {
			seen[rv.UserID] = struct{}{}
			ids = append(ids, rv.UserID)
		}
	}

	authors := make(map[uuid.UUID]*Author, len(ids))
	if users, err := s.Users.GetUsersByIDs(ctx, ids); err == nil {
		for i := range users {
			u := users[i]
			authors[u.ID] = &Author{ID: u.ID, Name: u.Name, ImageURL: u.ImageURL}
		}
	}

	for i, rv := range reviews {
		out[i] = ReviewReadModel{Review: rv, User: authors[rv.UserID]}
	}
	return out
}

// SortByRating orders products by rating, highest first. Unreviewed
// products carry rating 0 and therefore sort last, not out.
func SortByRating(products []ProductReadModel) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Rating > products[j].Rating
	})
}
