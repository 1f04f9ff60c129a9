package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crafthub/storefront/internal/models"
)

func (r *GormRepo) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	review := models.Review{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) GetReviews(ctx context.Context) ([]models.Review, error) {
	var items []models.Review
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var items []models.Review
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetReviewsByProductIDs is the batch lookup behind product list resolution:
// one query for the whole id set, grouping happens in memory in the caller.
func (r *GormRepo) GetReviewsByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]models.Review, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var items []models.Review
	if err := r.DB.WithContext(ctx).Where("product_id IN ?", productIDs).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetReviewsByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var items []models.Review
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *GormRepo) UpdateReview(ctx context.Context, rating *int, comment *string, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}

	if rating != nil {
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}

	if err := r.DB.WithContext(ctx).Save(&review).Error; err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
