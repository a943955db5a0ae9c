package database

import (
	"errors"
	"fmt"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

// EnsureAdmin creates the admin account if no user with that email exists.
// Running it again is a no-op; it reports whether a user was created.
func EnsureAdmin(db *gorm.DB, name, email, password string) (bool, error) {
	if password == "" {
		return false, errors.New("admin password is required")
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role != models.RoleAdmin {
			return false, fmt.Errorf("user %s exists but is not an admin", email)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := admin.HashPassword(); err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
