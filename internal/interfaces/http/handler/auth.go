package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tshirtshop/backend/internal/application/identity"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
)

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Gender   string `json:"gender" binding:"omitempty,oneof=MALE FEMALE male female"`
	Role     string `json:"role" binding:"omitempty,oneof=USER ADMIN user admin"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers an account. POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), identity.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		Role:     req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Login exchanges credentials for an access token. POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Me returns the authenticated user. GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
