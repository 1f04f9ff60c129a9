package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/crafthub/storefront/internal/models"
	"github.com/crafthub/storefront/internal/repo"
	"github.com/crafthub/storefront/internal/transport"
	"github.com/crafthub/storefront/pkg/logging"
)

type CategoryHTTP struct {
	Repo *repo.GormRepo
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories")

	items, err := h.Repo.GetCategories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "reason", "cannot load categories", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get categories"))
	}

	return c.JSON(http.StatusOK, transport.OK("categories", items))
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_category_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid category id"))
	}

	category, err := h.Repo.GetCategory(ctx, id)
	if err != nil {
		if notFound(err) {
			l.Warn("get_category_failed", "status", 404, "reason", "category does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Category not found"))
		}
		l.Error("get_category_failed", "status", 500, "reason", "cannot load category", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get category"))
	}

	return c.JSON(http.StatusOK, transport.OK("category", category))
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid body"))
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(err.Error()))
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	created, err := h.Repo.CreateCategory(ctx, &category)
	if err != nil {
		l.Error("create_category_failed", "status", 500, "reason", "cannot store category", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot create category"))
	}

	l.Info("create_category_success", "category_id", created.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Category created successfully",
		"category": created,
	})
}

func (h *CategoryHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid category id"))
	}

	var req transport.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid body"))
	}

	category, err := h.Repo.UpdateCategory(ctx, req.Name, req.Description, id)
	if err != nil {
		if notFound(err) {
			l.Warn("update_category_failed", "status", 404, "reason", "category does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Category not found"))
		}
		l.Error("update_category_failed", "status", 500, "reason", "cannot store category", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot update category"))
	}

	l.Info("update_category_success", "category_id", category.ID)
	return c.JSON(http.StatusOK, transport.OK("category", category))
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_category_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid category id"))
	}

	if err := h.Repo.DeleteCategory(ctx, id); err != nil {
		if notFound(err) {
			l.Warn("delete_category_failed", "status", 404, "reason", "category does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("Category not found"))
		}
		l.Error("delete_category_failed", "status", 500, "reason", "cannot delete category", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot delete category"))
	}

	l.Info("delete_category_success", "category_id", id)
	return c.JSON(http.StatusOK, transport.OKMessage("Category deleted"))
}
