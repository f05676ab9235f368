package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/config"
	"github.com/pulse-hq/pulse/internal/middleware"
	"github.com/pulse-hq/pulse/internal/services"
	"github.com/pulse-hq/pulse/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtConfig   *config.JWTConfig
	cookieCfg   *config.CookieConfig
	ldapEnabled bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.LDAP, &cfg.JWT),
		jwtConfig:   &cfg.JWT,
		cookieCfg:   &cfg.Cookie,
		ldapEnabled: cfg.LDAP.Enabled,
	}
}

// Service exposes the auth service for route wiring (revocation checks).
func (h *AuthHandler) Service() *services.AuthService {
	return h.authService
}

// setTokenCookie writes an HttpOnly, SameSite=Strict cookie on path "/".
func (h *AuthHandler) setTokenCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAge, "/", h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context, name string) {
	h.setTokenCookie(c, name, "", -1)
}

// refreshTokenFrom reads the refresh token from the cookie, falling back to
// the request body.
func refreshTokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(middleware.RefreshCookieName); err == nil && token != "" {
		return token
	}
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.Refresh
	}
	return ""
}

// Login handles user login
// POST /api/auth/login
//
// On success both token cookies are set; tokens are never echoed in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Detail(c, http.StatusUnauthorized, err.Error())
		return
	}

	h.setTokenCookie(c, middleware.AccessCookieName, result.AccessToken, int(result.AccessExpiresIn.Seconds()))
	h.setTokenCookie(c, middleware.RefreshCookieName, result.RefreshToken, int(result.RefreshExpires.Seconds()))
	response.Detail(c, http.StatusOK, "Login successful")
}

// Status reports whether the caller holds a valid, non-revoked access token.
// GET /api/auth/status
//
// Always 200, so polling clients never need an error branch.
func (h *AuthHandler) Status(c *gin.Context) {
	token := middleware.ExtractAccessToken(c)
	c.JSON(http.StatusOK, h.authService.Status(token))
}

// Refresh exchanges the refresh token cookie for a new access token.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := refreshTokenFrom(c)

	result, err := h.authService.Refresh(token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingToken):
			response.Detail(c, http.StatusUnauthorized, "No refresh token provided")
		case errors.Is(err, services.ErrTokenRevoked):
			response.Detail(c, http.StatusUnauthorized, "Token revoked")
		case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrUserDisabled):
			response.Detail(c, http.StatusUnauthorized, "Invalid token")
		default:
			response.Detail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.setTokenCookie(c, middleware.AccessCookieName, result.AccessToken, int(result.AccessExpiresIn.Seconds()))
	if result.RefreshToken != "" {
		h.setTokenCookie(c, middleware.RefreshCookieName, result.RefreshToken, int(result.RefreshExpires.Seconds()))
	}
	response.Detail(c, http.StatusOK, "Token refreshed")
}

// Logout revokes the refresh token and clears both cookies.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := refreshTokenFrom(c)

	if err := h.authService.Logout(token); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingToken):
			response.Detail(c, http.StatusBadRequest, "No refresh token")
		case errors.Is(err, services.ErrInvalidToken):
			response.Detail(c, http.StatusBadRequest, "Invalid token")
		default:
			response.Detail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.clearTokenCookie(c, middleware.AccessCookieName)
	h.clearTokenCookie(c, middleware.RefreshCookieName)
	response.Detail(c, http.StatusOK, "Logged out")
}

// ListSessions returns the caller's login sessions, newest first.
// GET /api/auth/session
func (h *AuthHandler) ListSessions(c *gin.Context) {
	sessions, err := h.authService.ListSessions(middleware.GetUserID(c))
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// RevokeSession revokes one of the caller's sessions by jti.
// DELETE /api/auth/session/revoke/:jti
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	jti := c.Param("jti")

	if err := h.authService.RevokeSession(middleware.GetUserID(c), jti); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			response.Detail(c, http.StatusNotFound, "Session not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Detail(c, http.StatusOK, "Session revoked")
}

// GetCurrentUser returns the current logged-in user
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Detail(c, http.StatusNotFound, "User not found")
		return
	}
	response.Success(c, user)
}

// ChangePassword changes the caller's password
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "password changed successfully"})
}

// GetAuthConfig returns authentication configuration
// GET /api/auth/config
func (h *AuthHandler) GetAuthConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ldap_enabled": h.ldapEnabled,
	})
}

// CreateAdminIfNotExists creates the default admin user on first boot.
func (h *AuthHandler) CreateAdminIfNotExists() error {
	return h.authService.CreateAdminIfNotExists()
}
