package httpserver

import (
	"errors"
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

type ProductHTTP struct {
	Svc      *catalog.Service
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (h *ProductHTTP) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, events.ProductTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.ProductTopic, "error", err)
	}
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ResolveProducts(ctx, catalog.ProductFilter{})
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot resolve products", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get products"))
	}

	return c.JSON(http.StatusOK, transport.OK("products", items))
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid product id"))
	}

	product, err := h.Svc.ResolveProduct(ctx, id, true)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Product not found"))
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot resolve product", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get product"))
	}

	return c.JSON(http.StatusOK, transport.OK("product", product))
}

func (h *ProductHTTP) GetProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products_by_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_products_by_category_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid category id"))
	}

	items, err := h.Svc.ResolveProducts(ctx, catalog.ProductFilter{CategoryID: &id})
	if err != nil {
		l.Error("get_products_by_category_failed", "status", 500, "reason", "cannot resolve products", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get products"))
	}

	return c.JSON(http.StatusOK, transport.OK("products", items))
}

func (h *ProductHTTP) GetProductsByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products_by_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_products_by_user_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid user id"))
	}

	items, err := h.Svc.ResolveProducts(ctx, catalog.ProductFilter{UserID: &id})
	if err != nil {
		l.Error("get_products_by_user_failed", "status", 500, "reason", "cannot resolve products", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get products"))
	}

	return c.JSON(http.StatusOK, transport.OK("products", items))
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid body"))
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(err.Error()))
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		OriginalPrice: req.OriginalPrice,
		CurrentPrice:  req.CurrentPrice,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		Materials:     req.Materials,
		Dimensions:    req.Dimensions,
		CategoryID:    req.CategoryID,
		UserID:        req.UserID,
	}

	created, err := h.Repo.CreateProduct(ctx, &product)
	if err != nil {
		l.Error("create_product_failed", "status", 500, "reason", "cannot store product", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot create product"))
	}

	h.publish(c, created.ID.String(), map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Product created successfully",
		"product": created,
	})
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid product id"))
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid body"))
	}
	if err := req.Validate(); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(err.Error()))
	}

	product, err := h.Repo.UpdateProduct(ctx, req, id)
	if err != nil {
		if notFound(err) {
			l.Warn("update_product_failed", "status", 404, "reason", "product does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Product not found"))
		}
		l.Error("update_product_failed", "status", 500, "reason", "cannot store product", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot update product"))
	}

	h.publish(c, product.ID.String(), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.OK("product", product))
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid product id"))
	}

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		if notFound(err) {
			l.Warn("delete_product_failed", "status", 404, "reason", "product does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Product not found"))
		}
		l.Error("delete_product_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot delete product"))
	}

	h.publish(c, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.OKMessage("Product deleted"))
}
