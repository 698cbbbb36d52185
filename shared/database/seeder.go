package database

import (
	"log"

	"bloodbank-backend/shared/config"
	"bloodbank-backend/shared/database/models"
	utils "bloodbank-backend/shared/utils/auth"
)

// SeedDatabase seeds the database with initial data
func SeedDatabase() error {
	log.Println("🌱 Checking database seed data...")

	if err := CreateAdminFromConfig(); err != nil {
		return err
	}

	log.Println("✅ Database seed data is up to date")
	return nil
}

// CreateAdminFromConfig creates the bootstrap admin using config values
func CreateAdminFromConfig() error {
	cfg := config.GetConfig()
	return CreateAdmin(cfg.AdminEmail, cfg.AdminPassword, "System Administrator")
}

// CreateAdmin creates an active admin user unless one already exists
func CreateAdmin(email, password, name string) error {
	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("✅ Admin user already exists: %s", email)
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		Status:   models.UserStatusActive,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", email)
	return nil
}
