package database

import (
	"fmt"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

// checkConstraints are the field-level rules gorm tags cannot express.
var checkConstraints = []struct {
	table, name, expr string
}{
	{"users", "users_role_check", "role IN ('member', 'admin')"},
	{"trainers", "trainers_experience_check", "experience_years BETWEEN 0 AND 60"},
	{"schedules", "schedules_day_check", "day_of_week IN ('Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday')"},
	{"schedules", "schedules_difficulty_check", "difficulty IN ('beginner', 'intermediate', 'advanced')"},
	{"schedules", "schedules_capacity_check", "max_participants >= 1 AND current_participants >= 0 AND current_participants <= max_participants"},
	{"memberships", "memberships_price_check", "price >= 0 AND duration_months >= 1"},
	{"user_memberships", "user_memberships_status_check", "status IN ('pending', 'active', 'expired', 'cancelled')"},
	{"user_memberships", "user_memberships_payment_check", "payment_status IN ('pending', 'paid', 'failed', 'refunded')"},
	{"bookings", "bookings_status_check", "status IN ('confirmed', 'cancelled', 'completed', 'no-show')"},
	{"bookings", "bookings_notes_check", "char_length(notes) <= 500"},
	{"services", "services_price_check", "price >= 0 AND duration_minutes >= 0"},
	{"contacts", "contacts_status_check", "status IN ('new', 'read', 'replied')"},
}

// RunMigrations creates or updates every table and its constraints.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Trainer{},
		&models.Schedule{},
		&models.Membership{},
		&models.UserMembership{},
		&models.Booking{},
		&models.Service{},
		&models.Contact{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, c := range checkConstraints {
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s", c.table, c.name)).Error; err != nil {
			return fmt.Errorf("drop constraint %s: %w", c.name, err)
		}
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)", c.table, c.name, c.expr)).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}

	return nil
}
