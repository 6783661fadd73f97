// Package middleware holds the echo middleware of the API: authentication,
// role gating, and blog ownership checks.
package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

const (
	// AccessCookie is the cookie carrying the access token.
	AccessCookie = "accessToken"
	// RefreshCookie is the cookie carrying the refresh token.
	RefreshCookie = "refreshToken"

	userContextKey = "auth.user"
)

// Auth validates the access token and loads the authenticated user into the
// request context. The token is read from the accessToken cookie first, then
// from a Bearer Authorization header.
func Auth(accessSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(accessSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			user, err := users.FindByID(c.Request().Context(), sub)
			if err != nil {
				// A token for a user that no longer exists is rejected, not 404d.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user loaded by Auth. The second return is false on
// routes that did not pass through Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const prefix = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
