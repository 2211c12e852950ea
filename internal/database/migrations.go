package database

import (
	"github.com/travelnest/backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Host{},
		&models.StayRequest{},
		&models.Review{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.Report{},
		&models.ActivityLog{},
	)
	if err != nil {
		return err
	}

	// Check-constrained enumerations. AutoMigrate does not manage these, so
	// they are replaced in place to stay current with the model constants.
	constraints := []struct {
		table string
		name  string
		check string
	}{
		{"users", "users_role_check", "role IN ('admin', 'host', 'traveler')"},
		{"users", "users_kyc_status_check", "kyc_status IN ('pending', 'approved', 'rejected')"},
		{"users", "users_account_status_check", "account_status IN ('active', 'banned', 'suspended')"},
		{"requests", "requests_status_check", "status IN ('pending', 'accepted', 'rejected', 'cancelled', 'completed')"},
		{"reviews", "reviews_rating_check", "rating >= 1 AND rating <= 5"},
		{"reports", "reports_status_check", "status IN ('pending', 'reviewed', 'resolved')"},
	}

	for _, c := range constraints {
		db.Exec("ALTER TABLE " + c.table + " DROP CONSTRAINT IF EXISTS " + c.name)
		if err := db.Exec("ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " CHECK (" + c.check + ")").Error; err != nil {
			return err
		}
	}

	return nil
}
