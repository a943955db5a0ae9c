package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/fitzone/fitzone-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, page repository.Page) ([]models.User, int64, error)
	Delete(ctx context.Context, id uint) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer struct {
	Secret string
	TTL    time.Duration
}

func (t TokenIssuer) Issue(user *models.User) (string, error) {
	return utils.GenerateToken(user, t.Secret, t.TTL)
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"max=30"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(users UserStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		user := models.User{
			Name:           strings.TrimSpace(input.Name),
			Email:          strings.ToLower(strings.TrimSpace(input.Email)),
			Password:       input.Password,
			Phone:          input.Phone,
			Role:           models.RoleMember,
			MembershipType: "none",
			IsActive:       true,
		}
		if err := user.HashPassword(); err != nil {
			serverError(c, err, "Failed to hash password")
			return
		}

		err := users.Create(c.Request.Context(), &user)
		if errors.Is(err, repository.ErrDuplicate) {
			message(c, http.StatusBadRequest, "User already exists")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to create user")
			return
		}

		token, err := tokens.Issue(&user)
		if err != nil {
			serverError(c, err, "Failed to generate token")
			return
		}

		middleware.Logger(c).Info("User registered", zap.Uint("user_id", user.ID))
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"token":   token,
			"user":    user,
		})
	}
}

func Login(users UserStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to look up user")
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			message(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !user.IsActive {
			message(c, http.StatusUnauthorized, "Account is deactivated")
			return
		}

		token, err := tokens.Issue(user)
		if err != nil {
			serverError(c, err, "Failed to generate token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
	}
}
