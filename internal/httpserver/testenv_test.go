package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/crafthub/storefront/internal/catalog"
	"github.com/crafthub/storefront/internal/models"
	"github.com/crafthub/storefront/internal/repo"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	P  *ProductHTTP
	R  *ReviewHTTP
	U  *UserHTTP
	Ct *CategoryHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Review{}))

	store := repo.New(db)
	svc := &catalog.Service{
		Products:   store,
		Reviews:    store,
		Categories: store,
		Users:      store,
	}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		P:  &ProductHTTP{Svc: svc, Repo: store},
		R:  &ReviewHTTP{Svc: svc, Repo: store},
		U:  &UserHTTP{Svc: svc, Repo: store},
		Ct: &CategoryHTTP{Repo: store},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedUser(name, email string) models.User {
	u := models.User{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(env.T, env.DB.Create(&u).Error)
	return u
}

func (env *testEnv) seedProduct(userID uuid.UUID, original, current string, age time.Duration) models.Product {
	p := models.Product{
		Name:          "test_product",
		Description:   "test_description",
		OriginalPrice: decimal.RequireFromString(original),
		CurrentPrice:  decimal.RequireFromString(current),
		StockQuantity: 4,
		UserID:        userID,
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	if age > 0 {
		created := time.Now().Add(-age)
		require.NoError(env.T, env.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("created_at", created).Error)
		p.CreatedAt = created
	}
	return p
}

func (env *testEnv) seedReview(productID, userID uuid.UUID, rating int) models.Review {
	r := models.Review{ProductID: productID, UserID: userID, Rating: rating}
	require.NoError(env.T, env.DB.Create(&r).Error)
	return r
}

type envelope struct {
	Success  bool                       `json:"success"`
	Message  string                     `json:"message"`
	Product  *catalog.ProductReadModel  `json:"product"`
	Products []catalog.ProductReadModel `json:"products"`
	Review   *catalog.ReviewReadModel   `json:"review"`
	Reviews  []catalog.ReviewReadModel  `json:"reviews"`
	User     *catalog.UserReadModel     `json:"user"`
	Category *models.Category           `json:"category"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func pathParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}
