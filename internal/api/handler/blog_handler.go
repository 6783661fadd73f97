package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/api/metrics"
	"github.com/campushub/blog-platform/internal/api/middleware"
	"github.com/campushub/blog-platform/internal/core/ports"
)

type BlogHandler struct {
	blogs ports.BlogService
}

func NewBlogHandler(blogs ports.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

type updateBlogRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create publishes a blog from a multipart form: content plus a required
// thumbnail image.
//
// @Summary      Publish a blog
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Param        content    formData  string  true  "Blog body"
// @Param        thumbnail  formData  file    true  "Thumbnail image"
// @Success      201  {object}  envelope
// @Failure      400  {object}  map[string]any
// @Router       /api/v1/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "thumbnail file is required")
	}

	blog, err := h.blogs.Create(c.Request().Context(), user.ID, c.FormValue("content"), file)
	if err != nil {
		return err
	}

	metrics.BlogsCreatedTotal.Inc()
	return respond(c, http.StatusCreated, blog, "blog published")
}

// Update rewrites a blog's content. The ownership guard runs before this
// handler and stashes the loaded blog on the context.
//
// @Summary      Edit a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        blogID  path      string             true  "Blog id"
// @Param        body    body      updateBlogRequest  true  "New content"
// @Success      200     {object}  envelope
// @Failure      403     {object}  map[string]any
// @Router       /api/v1/blogs/{blogID} [patch]
func (h *BlogHandler) Update(c echo.Context) error {
	blog, ok := middleware.CurrentBlog(c)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "blog not loaded")
	}

	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.blogs.Update(c.Request().Context(), blog.ID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated, "blog updated")
}

// Delete removes the caller's own blog.
//
// @Summary      Delete own blog
// @Tags         blogs
// @Produce      json
// @Param        blogID  path      string  true  "Blog id"
// @Success      200     {object}  envelope
// @Failure      403     {object}  map[string]any
// @Router       /api/v1/blogs/{blogID} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	blog, ok := middleware.CurrentBlog(c)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "blog not loaded")
	}

	if err := h.blogs.Delete(c.Request().Context(), blog.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "blog deleted")
}

// List returns blogs filtered by the owners' role category, newest first.
//
// @Summary      List blogs by owner role
// @Tags         blogs
// @Produce      json
// @Param        role  query     string  true  "admin | moderator | mentor | member | all"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	listed, err := h.blogs.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listed, "blogs fetched")
}
