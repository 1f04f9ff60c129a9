package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/crafthub/storefront/internal/catalog"
	"github.com/crafthub/storefront/internal/events"
	"github.com/crafthub/storefront/internal/models"
	"github.com/crafthub/storefront/internal/repo"
	"github.com/crafthub/storefront/internal/transport"
	"github.com/crafthub/storefront/pkg/logging"
)

type ReviewHTTP struct {
	Svc      *catalog.Service
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (h *ReviewHTTP) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, events.ReviewTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.ReviewTopic, "error", err)
	}
}

// CreateReview stores the review and returns. No aggregate is recomputed
// here: the next read of the product picks the new review up.
func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create_review")

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_review_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid body"))
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_review_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(err.Error()))
	}

	review := models.Review{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	created, err := h.Repo.CreateReview(ctx, &review)
	if err != nil {
		l.Error("create_review_failed", "status", 500, "reason", "cannot store review", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot create review"))
	}

	h.publish(c, created.ProductID.String(), map[string]any{
		"type":      "review_created",
		"reviewID":  created.ID,
		"productID": created.ProductID,
		"rating":    created.Rating,
	})

	l.Info("create_review_success", "review_id", created.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Review created successfully",
		"review":  created,
	})
}

func (h *ReviewHTTP) GetReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_reviews")

	reviews, err := h.Repo.GetReviews(ctx)
	if err != nil {
		l.Error("get_reviews_failed", "status", 500, "reason", "cannot load reviews", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get reviews"))
	}

	return c.JSON(http.StatusOK, transport.OK("reviews", h.Svc.ResolveReviews(ctx, reviews)))
}

func (h *ReviewHTTP) GetReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_review")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_review_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid review id"))
	}

	review, err := h.Repo.GetReview(ctx, id)
	if err != nil {
		if notFound(err) {
			l.Warn("get_review_failed", "status", 404, "reason", "review does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Review not found"))
		}
		l.Error("get_review_failed", "status", 500, "reason", "cannot load review", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get review"))
	}

	joined := h.Svc.ResolveReviews(ctx, []models.Review{*review})
	return c.JSON(http.StatusOK, transport.OK("review", joined[0]))
}

func (h *ReviewHTTP) GetReviewsByProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_reviews_by_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_reviews_by_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid product id"))
	}

	reviews, err := h.Repo.GetReviewsByProduct(ctx, id)
	if err != nil {
		l.Error("get_reviews_by_product_failed", "status", 500, "reason", "cannot load reviews", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get reviews"))
	}

	return c.JSON(http.StatusOK, transport.OK("reviews", h.Svc.ResolveReviews(ctx, reviews)))
}

func (h *ReviewHTTP) GetReviewsByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_reviews_by_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_reviews_by_user_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid user id"))
	}

	reviews, err := h.Repo.GetReviewsByUser(ctx, id)
	if err != nil {
		l.Error("get_reviews_by_user_failed", "status", 500, "reason", "cannot load reviews", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get reviews"))
	}

	return c.JSON(http.StatusOK, transport.OK("reviews", h.Svc.ResolveReviews(ctx, reviews)))
}

func (h *ReviewHTTP) UpdateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.update_review")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_review_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid review id"))
	}

	var req transport.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_review_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid body"))
	}
	if err := req.Validate(); err != nil {
		l.Warn("update_review_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(err.Error()))
	}

	review, err := h.Repo.UpdateReview(ctx, req.Rating, req.Comment, id)
	if err != nil {
		if notFound(err) {
			l.Warn("update_review_failed", "status", 404, "reason", "review does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Review not found"))
		}
		l.Error("update_review_failed", "status", 500, "reason", "cannot store review", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot update review"))
	}

	h.publish(c, review.ProductID.String(), map[string]any{
		"type":      "review_updated",
		"reviewID":  review.ID,
		"productID": review.ProductID,
		"rating":    review.Rating,
	})

	l.Info("update_review_success", "review_id", review.ID)
	return c.JSON(http.StatusOK, transport.OK("review", review))
}

func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete_review")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_review_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid review id"))
	}

	if err := h.Repo.DeleteReview(ctx, id); err != nil {
		if notFound(err) {
			l.Warn("delete_review_failed", "status", 404, "reason", "review does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Review not found"))
		}
		l.Error("delete_review_failed", "status", 500, "reason", "cannot delete review", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot delete review"))
	}

	h.publish(c, id.String(), map[string]any{
		"type":     "review_deleted",
		"reviewID": id,
	})

	l.Info("delete_review_success", "review_id", id)
	return c.JSON(http.StatusOK, transport.OKMessage("Review deleted"))
}
