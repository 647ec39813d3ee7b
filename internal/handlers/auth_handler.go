package handlers

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// TokenRevoker invalidates issued tokens on logout.
type TokenRevoker interface {
	Revoke(token string, ttl time.Duration) error
}

type AuthHandler struct {
	userService  services.UserService
	orderService services.OrderService
	tokens       *auth.TokenManager
	revoker      TokenRevoker
	tokenTTL     time.Duration
}

func NewAuthHandler(userService services.UserService, orderService services.OrderService, tokens *auth.TokenManager, revoker TokenRevoker, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		orderService: orderService,
		tokens:       tokens,
		revoker:      revoker,
		tokenTTL:     tokenTTL,
	}
}

type SignupRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Signup(req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully! Please log in.",
		"user":    user,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.IssueUserToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully!",
		"token":   token,
		"user":    user,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token to revoke"})
		return
	}

	// Blacklist for the full token lifetime; expired tokens fall out of the
	// store on their own.
	if err := h.revoker.Revoke(tokenString, h.tokenTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully!"})
}

// GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	ident := auth.IdentityFrom(c)

	user, err := h.userService.GetUserByID(ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := h.orderService.ListOrdersForUser(ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"orders": orders,
	})
}
