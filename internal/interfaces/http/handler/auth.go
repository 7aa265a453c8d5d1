package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/stocker/backend/internal/application/identity"
	"github.com/stocker/backend/internal/infrastructure/config"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles signup, login and password lifecycle endpoints
type AuthHandler struct {
	BaseHandler
	auth   *appidentity.AuthService
	cookie config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// Signup registers a new user
func (h *AuthHandler) Signup(c *gin.Context) {
	var req appidentity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Login authenticates by email and password. The refresh token travels
// back only as an HTTP-only cookie; the body carries the access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tokens, user, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken, tokens.RefreshExpiresAt)
	h.Success(c, gin.H{
		"access_token":      tokens.AccessToken,
		"access_expires_at": tokens.AccessExpiresAt,
		"user":              user,
	})
}

// Refresh mints a new token pair from the refresh cookie. The embedded
// token_version must still match the user's current one.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		h.Unauthorized(c, "Missing refresh token")
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken, tokens.RefreshExpiresAt)
	h.Success(c, gin.H{
		"access_token":      tokens.AccessToken,
		"access_expires_at": tokens.AccessExpiresAt,
	})
}

// Logout revokes the refresh token and clears its cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshCookieName); err == nil && refreshToken != "" {
		if err := h.auth.Logout(c.Request.Context(), refreshToken); err != nil {
			h.clearRefreshCookie(c)
			h.HandleError(c, err)
			return
		}
	}
	h.clearRefreshCookie(c)
	h.Success(c, gin.H{"message": "Logged out."})
}

// Me returns the acting user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword replaces the current password and invalidates every
// outstanding refresh token
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.clearRefreshCookie(c)
	h.Success(c, gin.H{"message": "Password changed."})
}

// RequestPasswordReset starts the reset flow. The response is identical
// whether or not the email is registered.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req appidentity.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "If the email is registered, a reset link has been sent."})
}

// ConfirmPasswordReset completes the reset flow from the mailed link
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req appidentity.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	uid := c.Param("uid")
	token := c.Param("token")
	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), uid, token, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password has been reset."})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(refreshCookieName, token,
		int(time.Until(expiresAt).Seconds()),
		h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(refreshCookieName, "", -1,
		h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
