package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/api/metrics"
	"github.com/campushub/blog-platform/internal/core/ports"
)

type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create posts a comment on a blog.
//
// @Summary      Comment on a blog
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        blogID  path      string                true  "Blog id"
// @Param        body    body      createCommentRequest  true  "Comment body"
// @Success      201     {object}  envelope
// @Failure      404     {object}  map[string]any
// @Router       /api/v1/blogs/{blogID}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Create(c.Request().Context(), user.ID, c.Param("blogID"), req.Content)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return respond(c, http.StatusCreated, comment, "comment posted")
}

// Delete removes the caller's own comment.
//
// @Summary      Delete own comment
// @Tags         comments
// @Produce      json
// @Param        commentID  path      string  true  "Comment id"
// @Success      200        {object}  envelope
// @Failure      403        {object}  map[string]any
// @Router       /api/v1/comments/{commentID} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), c.Param("commentID"), user.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "comment deleted")
}
