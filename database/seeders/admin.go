package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/pkg/auth"
)

// Default back-office account. Change the password immediately after the
// first login.
const (
	adminEmail    = "admin@favourfurniture.com"
	adminPassword = "admin123"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the default admin account if it does not exist yet.
func SeedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    adminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
