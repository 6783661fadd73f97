package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campushub/blog-platform/internal/api/metrics"
	"github.com/campushub/blog-platform/internal/api/middleware"
	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

// CookieSettings controls how the session cookies are written.
type CookieSettings struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	auth    ports.AuthService
	cookies CookieSettings
}

func NewAuthHandler(auth ports.AuthService, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

// Register creates a new member account from a multipart form.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        username   formData  string  true   "Unique username"
// @Param        email      formData  string  true   "Unique email"
// @Param        fullname   formData  string  true   "Display name"
// @Param        password   formData  string  true   "Password"
// @Param        batch      formData  int     false  "Graduation batch"
// @Param        uniId      formData  int     false  "University id"
// @Param        avatar     formData  file    true   "Avatar image"
// @Param        coverImage formData  file    false  "Cover image"
// @Success      201  {object}  envelope
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /api/v1/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	in := ports.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Fullname: c.FormValue("fullname"),
		Password: c.FormValue("password"),
	}
	in.Batch, _ = strconv.Atoi(c.FormValue("batch"))
	in.UniversityID, _ = strconv.Atoi(c.FormValue("uniId"))

	if avatar, err := c.FormFile("avatar"); err == nil {
		in.Avatar = avatar
	}
	if cover, err := c.FormFile("coverImage"); err == nil {
		in.CoverImage = cover
	}

	user, err := h.auth.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return respond(c, http.StatusCreated, user.Public(), "user registered")
}

// Login verifies credentials and opens a session. The token pair is written
// both to httpOnly cookies and to the response body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials; username or email plus password"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]any
// @Router       /api/v1/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	user, pair, err := h.auth.Login(c.Request().Context(), login, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setSessionCookies(c, pair)
	return respond(c, http.StatusOK, loginResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "login successful")
}

// Logout closes the session: the stored refresh token is discarded and both
// cookies are expired.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), user.ID); err != nil {
		return err
	}

	h.clearSessionCookies(c)
	return respond(c, http.StatusOK, nil, "logged out")
}

// Refresh rotates the token pair. The refresh token is read from the cookie
// first, then from the JSON body.
//
// @Summary      Refresh the session tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token, when not sent as a cookie"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]any
// @Router       /api/v1/users/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(middleware.RefreshCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, pair)
	return respond(c, http.StatusOK, pair, "tokens refreshed")
}

// UpdateAvatar replaces the authenticated user's avatar.
//
// @Summary      Update avatar
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "New avatar image"
// @Success      200     {object}  envelope
// @Router       /api/v1/users/avatar [patch]
func (h *AuthHandler) UpdateAvatar(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}

	updated, err := h.auth.UpdateAvatar(c.Request().Context(), user.ID, file)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated.Public(), "avatar updated")
}

// UpdateCoverImage replaces the authenticated user's cover image.
//
// @Summary      Update cover image
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        coverImage  formData  file  true  "New cover image"
// @Success      200         {object}  envelope
// @Router       /api/v1/users/cover-image [patch]
func (h *AuthHandler) UpdateCoverImage(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("coverImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coverImage file is required")
	}

	updated, err := h.auth.UpdateCoverImage(c.Request().Context(), user.ID, file)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated.Public(), "cover image updated")
}

// Me returns the authenticated user's own public record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /api/v1/users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := mustCurrentUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user.Public(), "current user")
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair ports.TokenPair) {
	c.SetCookie(sessionCookie(middleware.AccessCookie, pair.AccessToken, h.cookies.AccessTTL, h.cookies.Secure))
	c.SetCookie(sessionCookie(middleware.RefreshCookie, pair.RefreshToken, h.cookies.RefreshTTL, h.cookies.Secure))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(sessionCookie(middleware.AccessCookie, "", -time.Hour, h.cookies.Secure))
	c.SetCookie(sessionCookie(middleware.RefreshCookie, "", -time.Hour, h.cookies.Secure))
}

func sessionCookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
