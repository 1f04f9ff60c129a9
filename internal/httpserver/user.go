package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/crafthub/storefront/internal/catalog"
	"github.com/crafthub/storefront/internal/repo"
	"github.com/crafthub/storefront/internal/transport"
	"github.com/crafthub/storefront/pkg/logging"
)

type UserHTTP struct {
	Svc  *catalog.Service
	Repo *repo.GormRepo
}

// GetUser returns the artisan read-model: profile, owned products with
// derived fields, and the average rating across reviewed products.
func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_user_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid user id"))
	}

	user, err := h.Svc.ResolveUser(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			l.Warn("get_user_failed", "status", 404, "reason", "user does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("User not found"))
		}
		l.Error("get_user_failed", "status", 500, "reason", "cannot resolve user", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get user"))
	}

	return c.JSON(http.StatusOK, transport.OK("user", user))
}

func (h *UserHTTP) GetUserByEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user_by_email")

	email := c.Param("email")
	if email == "" {
		l.Warn("get_user_by_email_failed", "status", 400, "reason", "empty email")
		return c.JSON(http.StatusBadRequest, transport.Fail("invalid email"))
	}

	user, err := h.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if notFound(err) {
			l.Warn("get_user_by_email_failed", "status", 404, "reason", "user does not exist", "error", err)
			return c.JSON(http.StatusNotFound, transport.Fail("User not found"))
		}
		l.Error("get_user_by_email_failed", "status", 500, "reason", "cannot load user", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("cannot get user"))
	}

	return c.JSON(http.StatusOK, transport.OK("user", user))
}
