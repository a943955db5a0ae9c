package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
	}
}

func UpdateProfile(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		user, err := users.FindByID(c.Request.Context(), middleware.CurrentUserID(c))
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to load user")
			return
		}

		if input.Name != nil {
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Password != nil {
			user.Password = *input.Password
			if err := user.HashPassword(); err != nil {
				serverError(c, err, "Failed to hash password")
				return
			}
		}

		if err := users.Update(c.Request.Context(), user); err != nil {
			serverError(c, err, "Failed to update user")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    user,
		})
	}
}

func ListUsers(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pageFromQuery(c)
		list, total, err := users.List(c.Request.Context(), page)
		if err != nil {
			serverError(c, err, "Failed to list users")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":      list,
			"pagination": newPagination(page, total),
		})
	}
}

func DeleteUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := idParam(c, "userId", "User not found")
		if !ok {
			return
		}
		if userID == middleware.CurrentUserID(c) {
			message(c, http.StatusBadRequest, "You cannot delete your own account")
			return
		}

		err := users.Delete(c.Request.Context(), userID)
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to delete user")
			return
		}

		message(c, http.StatusOK, "User deleted successfully")
	}
}
