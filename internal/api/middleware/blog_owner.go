package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

const blogContextKey = "auth.blog"

// BlogOwner loads the blog named by the :blogID route parameter and rejects
// the request unless the authenticated user owns it. Must run after Auth.
func BlogOwner(blogs ports.BlogRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			blog, err := blogs.FindByID(c.Request().Context(), c.Param("blogID"))
			if err != nil {
				return err
			}
			if blog.OwnerID != user.ID {
				return echo.NewHTTPError(http.StatusForbidden, "not the blog owner")
			}

			c.Set(blogContextKey, blog)
			return next(c)
		}
	}
}

// CurrentBlog returns the blog loaded by BlogOwner.
func CurrentBlog(c echo.Context) (*domain.Blog, bool) {
	blog, ok := c.Get(blogContextKey).(*domain.Blog)
	return blog, ok
}
