package user

import (
	"net/http"
	"time"

	"interview-prep-server/auth"
	"interview-prep-server/internal/errors"
	"interview-prep-server/redis"

	"github.com/gin-gonic/gin"
)

// Token lifetime must track the JWT expiry set in the auth package
const tokenTTL = time.Hour * 24 * 3

// Handler handles HTTP requests for users
type Handler struct {
	service Service
}

// NewHandler creates a new user handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormLogin represents login form data
type FormLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FormRegister represents registration form data
type FormRegister struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// FormUpdateProfile represents profile update form data
type FormUpdateProfile struct {
	Name string `json:"name" binding:"required"`
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var form FormRegister
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.ErrInvalidInput(err))
		return
	}

	user := &User{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		IsActive: true,
	}

	if err := h.service.Register(user); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.ToSafeUser()})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.ErrInvalidInput(err))
		return
	}

	user, err := h.service.Login(form.Email, form.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		errors.HandleError(c, errors.ErrInternalServer(err))
		return
	}

	if err := redis.StoreToken(token, tokenTTL); err != nil {
		errors.HandleError(c, errors.ErrInternalServer(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user.ToSafeUser(),
	})
}

// Logout handles user logout
func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString("jwt_token")
	if err := redis.RevokeToken(token); err != nil {
		errors.HandleError(c, errors.ErrInternalServer(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile handles getting the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		errors.HandleError(c, errors.ErrUnauthorized(nil).WithMessage("user not found"))
		return
	}

	user, err := h.service.GetUserByID(userID.(uint64))
	if err != nil {
		errors.HandleError(c, errors.ErrNotFound(err).WithMessage("User not found"))
		return
	}

	c.JSON(http.StatusOK, user.ToSafeUser())
}

// UpdateProfile handles updating the current user's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var form FormUpdateProfile
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.ErrInvalidInput(err))
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		errors.HandleError(c, errors.ErrUnauthorized(nil).WithMessage("user not found"))
		return
	}

	user, err := h.service.UpdateProfile(userID.(uint64), form.Name)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToSafeUser())
}

// DeleteProfile deactivates the current user's account
func (h *Handler) DeleteProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		errors.HandleError(c, errors.ErrUnauthorized(nil).WithMessage("user not found"))
		return
	}

	if err := h.service.DeactivateUser(userID.(uint64)); err != nil {
		errors.HandleError(c, err)
		return
	}

	token := c.GetString("jwt_token")
	if err := redis.RevokeToken(token); err != nil {
		errors.HandleError(c, errors.ErrInternalServer(err))
		return
	}

	c.Status(http.StatusNoContent)
}
