package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafthub/storefront/internal/transport"
)

func TestCreateReview_Success(t *testing.T) {
	env := newTestEnv(t)
	seller := env.seedUser("seller", "seller@example.com")
	reviewer := env.seedUser("reviewer", "reviewer@example.com")
	p := env.seedProduct(seller.ID, "20", "20", 0)

	req := transport.CreateReviewRequest{
		ProductID: p.ID,
		UserID:    reviewer.ID,
		Rating:    5,
		Comment:   "beautiful glaze",
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/reviews", req)
	require.NoError(t, env.R.CreateReview(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Review)
	assert.Equal(t, 5, resp.Review.Rating)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	seller := env.seedUser("seller", "seller@example.com")
	reviewer := env.seedUser("reviewer", "reviewer@example.com")
	p := env.seedProduct(seller.ID, "20", "20", 0)

	for _, rating := range []int{0, 6, -1} {
		req := transport.CreateReviewRequest{ProductID: p.ID, UserID: reviewer.ID, Rating: rating}
		rec, c := env.doJSONRequest(http.MethodPost, "/reviews", req)
		require.NoError(t, env.R.CreateReview(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d must be rejected at write time", rating)
	}
}

func TestGetReviewsByProduct_JoinsAuthors(t *testing.T) {
	env := newTestEnv(t)
	seller := env.seedUser("seller", "seller@example.com")
	reviewer := env.seedUser("reviewer", "reviewer@example.com")
	p := env.seedProduct(seller.ID, "20", "20", 0)
	env.seedReview(p.ID, reviewer.ID, 4)
	env.seedReview(p.ID, uuid.New(), 2) // author record never existed

	rec, c := env.doJSONRequest(http.MethodGet, "/reviews/product/"+p.ID.String(), nil)
	pathParam(c, "id", p.ID.String())

	require.NoError(t, env.R.GetReviewsByProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.Len(t, resp.Reviews, 2)
	require.NotNil(t, resp.Reviews[0].User)
	assert.Equal(t, "reviewer", resp.Reviews[0].User.Name)
	assert.Nil(t, resp.Reviews[1].User)
}

func TestDeleteReview_AffectsNextAggregate(t *testing.T) {
	env := newTestEnv(t)
	seller := env.seedUser("seller", "seller@example.com")
	reviewer := env.seedUser("reviewer", "reviewer@example.com")
	p := env.seedProduct(seller.ID, "20", "20", 0)
	rv := env.seedReview(p.ID, reviewer.ID, 1)
	env.seedReview(p.ID, reviewer.ID, 5)

	rec, c := env.doJSONRequest(http.MethodDelete, "/reviews/"+rv.ID.String(), nil)
	pathParam(c, "id", rv.ID.String())
	require.NoError(t, env.R.DeleteReview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/products/"+p.ID.String(), nil)
	pathParam(c2, "id", p.ID.String())
	require.NoError(t, env.P.GetProduct(c2))

	resp := decodeEnvelope(t, rec2)
	require.NotNil(t, resp.Product)
	assert.Equal(t, 1, resp.Product.ReviewCount)
	assert.Equal(t, 5.0, resp.Product.Rating)
}

func TestUpdateReview_Validation(t *testing.T) {
	env := newTestEnv(t)
	seller := env.seedUser("seller", "seller@example.com")
	reviewer := env.seedUser("reviewer", "reviewer@example.com")
	p := env.seedProduct(seller.ID, "20", "20", 0)
	rv := env.seedReview(p.ID, reviewer.ID, 3)

	bad := 9
	req := transport.UpdateReviewRequest{Rating: &bad}
	rec, c := env.doJSONRequest(http.MethodPut, "/reviews/"+rv.ID.String(), req)
	pathParam(c, "id", rv.ID.String())

	require.NoError(t, env.R.UpdateReview(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
