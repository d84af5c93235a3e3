package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/auth"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, jwtManager: jwtManager}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Register creates a new account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	user, err := h.authenticator.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) || errors.Is(err, auth.ErrEmailExists) {
			BadRequest(c, err.Error())
			return
		}
		ServiceError(c, err)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, authResponse{Token: token, UserID: user.ID, DisplayName: user.DisplayName})
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	user, err := h.authenticator.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			Unauthorized(c, err.Error())
			return
		}
		ServiceError(c, err)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, authResponse{Token: token, UserID: user.ID, DisplayName: user.DisplayName})
}
