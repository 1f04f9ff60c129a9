package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ProductHandler  *ProductHTTP
	ReviewHandler   *ReviewHTTP
	UserHandler     *UserHTTP
	CategoryHandler *CategoryHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/category/:id", d.ProductHandler.GetProductsByCategory)
	products.GET("/user/:id", d.ProductHandler.GetProductsByUser)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	reviews := e.Group("/reviews")
	reviews.GET("", d.ReviewHandler.GetReviews)
	reviews.GET("/:id", d.ReviewHandler.GetReview)
	reviews.GET("/product/:id", d.ReviewHandler.GetReviewsByProduct)
	reviews.GET("/user/:id", d.ReviewHandler.GetReviewsByUser)
	reviews.POST("", d.ReviewHandler.CreateReview)
	reviews.PUT("/:id", d.ReviewHandler.UpdateReview)
	reviews.DELETE("/:id", d.ReviewHandler.DeleteReview)

	e.GET("/user/:id", d.UserHandler.GetUser)
	e.GET("/user/email/:email", d.UserHandler.GetUserByEmail)

	categories := e.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.POST("", d.CategoryHandler.CreateCategory)
	categories.PUT("/:id", d.CategoryHandler.UpdateCategory)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory)
}
