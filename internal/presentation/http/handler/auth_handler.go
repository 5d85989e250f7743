package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/request"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
	"github.com/sangkips/remodela-api/pkg/apperror"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	// Where the browser lands after Google sign-in. Empty means answer with JSON.
	googleSuccessURL string
	googleErrorURL   string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, googleSuccessURL, googleErrorURL string) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		googleSuccessURL: googleSuccessURL,
		googleErrorURL:   googleErrorURL,
	}
}

// Login handles admin login
// @Summary Login
// @Description Authenticate an administrator and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inicio de sesión exitoso", loginBody(output))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token renovado", loginBody(output))
}

// GetProfile returns the signed-in admin
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Usuario no autenticado")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Perfil obtenido", gin.H{"user": user})
}

// ChangePassword handles password change
// @Summary Change Password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.APIResponse
// @Router /profile/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Usuario no autenticado")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), *userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contraseña actualizada", nil)
}

// GoogleAuth redirects the browser to Google's consent screen
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	authURL, err := h.authService.GoogleAuthURL()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback finishes Google sign-in. Tokens travel to the frontend in
// the URL fragment so they never reach server logs.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	output, err := h.authService.GoogleLogin(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		if h.googleErrorURL == "" {
			response.Error(c, err)
			return
		}
		q := url.Values{}
		q.Set("error", strconv.Itoa(apperror.GetAppError(err).Code))
		c.Redirect(http.StatusTemporaryRedirect, h.googleErrorURL+"?"+q.Encode())
		return
	}

	if h.googleSuccessURL == "" {
		response.OK(c, "Inicio de sesión exitoso", loginBody(output))
		return
	}
	fragment := url.Values{}
	fragment.Set("access_token", output.Tokens.AccessToken)
	fragment.Set("refresh_token", output.Tokens.RefreshToken)
	fragment.Set("expires_at", strconv.FormatInt(output.Tokens.ExpiresAt.Unix(), 10))
	c.Redirect(http.StatusTemporaryRedirect, h.googleSuccessURL+"#"+fragment.Encode())
}

func loginBody(output *service.LoginOutput) gin.H {
	return gin.H{
		"user":          output.User,
		"access_token":  output.Tokens.AccessToken,
		"refresh_token": output.Tokens.RefreshToken,
		"expires_at":    output.Tokens.ExpiresAt,
	}
}
