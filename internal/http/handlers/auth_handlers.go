package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents a registration request. Which login key is
// required depends on the role; that rule lives in the auth service, not in
// binding tags.
type RegisterRequest struct {
	Name      string   `json:"name" binding:"required"`
	Role      string   `json:"role" binding:"required"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Password  string   `json:"password" binding:"required,min=6"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// LoginRequest represents a login request; clients send email or phone.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password" binding:"required"`
}

func userBody(user *domain.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"role":       user.Role,
		"address":    user.Address,
		"latitude":   user.Latitude,
		"longitude":  user.Longitude,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userBody(user)})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	loginKey := req.Email
	if loginKey == "" {
		loginKey = req.Phone
	}
	if loginKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email or phone is required"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), loginKey, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"user":       userBody(result.User),
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), auth.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
}
