package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/emilythestrangee/investor-hub/backend/internal/middleware"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
)

type AuthHandler struct {
	users repository.UserRepository
	auth  *middleware.Authenticator
}

func NewAuthHandler(users repository.UserRepository, auth *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	ctx := c.Request.Context()
	exists, err := h.users.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		respondError(c, models.NewConflictError("Username or email already exists", nil))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Avatar:   input.Avatar,
	}
	if err := h.users.Create(ctx, &user); err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user, "User registered successfully")
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			respondError(c, models.NewUnauthorizedError("Invalid credentials"))
			return
		}
		respondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		respondError(c, models.NewUnauthorizedError("Invalid credentials"))
		return
	}

	h.respondWithToken(c, http.StatusOK, user, "Login successful")
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User, message string) {
	tokenString, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}
	c.JSON(status, models.AuthResponse{
		Token:   tokenString,
		User:    user.Summary(),
		Message: message,
	})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
