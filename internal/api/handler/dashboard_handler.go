package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/api/metrics"
	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

// DashboardHandler serves the admin and moderator dashboard operations.
type DashboardHandler struct {
	admin ports.AdminService
}

func NewDashboardHandler(admin ports.AdminService) *DashboardHandler {
	return &DashboardHandler{admin: admin}
}

type changeRoleRequest struct {
	Role         string `json:"role" validate:"required,oneof=admin moderator mentor member"`
	Position     int    `json:"position"`
	PositionName string `json:"positionName"`
}

// ChangeRole assigns a new role and seniority position to a user.
//
// @Summary      Change a user's role
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        userID  path      string             true  "User id"
// @Param        body    body      changeRoleRequest  true  "New role assignment"
// @Success      200     {object}  envelope
// @Failure      400     {object}  map[string]any
// @Router       /api/v1/dashboard/users/{userID}/role [patch]
func (h *DashboardHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := domain.Role{
		Role:         domain.RoleName(req.Role),
		Position:     req.Position,
		PositionName: req.PositionName,
	}

	updated, err := h.admin.ChangeRole(c.Request().Context(), c.Param("userID"), role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated.Public(), "role updated")
}

// DeleteUser removes a user together with all their blogs and comments, and
// the comments other users left on those blogs.
//
// @Summary      Delete a user and everything they touch
// @Tags         dashboard
// @Produce      json
// @Param        userID  path      string  true  "User id"
// @Success      200     {object}  envelope
// @Failure      404     {object}  map[string]any
// @Router       /api/v1/dashboard/users/{userID} [delete]
func (h *DashboardHandler) DeleteUser(c echo.Context) error {
	result, err := h.admin.DeleteUser(c.Request().Context(), c.Param("userID"))
	if err != nil {
		return err
	}

	metrics.CascadeDeletedTotal.WithLabelValues("user").Inc()
	metrics.CascadeDeletedTotal.WithLabelValues("blog").Add(float64(result.BlogsDeleted))
	metrics.CascadeDeletedTotal.WithLabelValues("comment").Add(float64(result.CommentsDeleted))

	return respond(c, http.StatusOK, result, "user deleted")
}

// DeleteBlog removes any blog and its comments on behalf of a moderator.
//
// @Summary      Delete any blog
// @Tags         dashboard
// @Produce      json
// @Param        blogID  path      string  true  "Blog id"
// @Success      200     {object}  envelope
// @Failure      404     {object}  map[string]any
// @Router       /api/v1/dashboard/blogs/{blogID} [delete]
func (h *DashboardHandler) DeleteBlog(c echo.Context) error {
	comments, err := h.admin.DeleteBlog(c.Request().Context(), c.Param("blogID"))
	if err != nil {
		return err
	}

	metrics.CascadeDeletedTotal.WithLabelValues("blog").Inc()
	metrics.CascadeDeletedTotal.WithLabelValues("comment").Add(float64(comments))

	return respond(c, http.StatusOK, map[string]int64{
		"commentsDeleted": comments,
	}, "blog deleted")
}
