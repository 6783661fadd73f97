package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns the users of one role category, most senior first.
//
// @Summary      List users by role
// @Tags         users
// @Produce      json
// @Param        role  query     string  true  "admin | moderator | mentor | member | all"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	listed, err := h.users.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listed, "users fetched")
}

// Profile returns a user's public record with their blogs and each blog's
// comments nested inside. The lookup key may be a username or a user id,
// passed as ?username=, ?id=, or a path parameter.
//
// @Summary      Aggregated user profile
// @Tags         users
// @Produce      json
// @Param        username  query     string  false  "Username"
// @Param        id        query     string  false  "User id"
// @Success      200       {object}  envelope
// @Failure      404       {object}  map[string]any
// @Router       /api/v1/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	key := c.QueryParam("username")
	if key == "" {
		key = c.QueryParam("id")
	}
	if key == "" {
		key = c.Param("user")
	}
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username or id is required")
	}

	view, err := h.users.GetProfile(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, view, "profile fetched")
}
