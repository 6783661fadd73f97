package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/api/middleware"
	"github.com/campushub/blog-platform/internal/core/domain"
)

// envelope is the uniform success body: every endpoint returns statusCode,
// data, and a human-readable message.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

func respond(c echo.Context, code int, data any, message string) error {
	return c.JSON(code, envelope{StatusCode: code, Data: data, Message: message})
}

// mustCurrentUser fetches the user injected by the Auth middleware. Handlers
// mounted behind Auth can rely on it; a miss means a wiring bug, reported as
// 401 rather than a panic.
func mustCurrentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
