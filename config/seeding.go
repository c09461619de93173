package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"p9e.in/geodiario/models"
)

// SeedAdminUser creates the bootstrap admin account when the users table is
// empty. Skipped entirely unless SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD
// are set.
func SeedAdminUser() {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Println("Seeding: could not count users:", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Seeding: could not hash admin password:", err)
		return
	}

	admin := models.User{
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Seeding: could not create admin user:", err)
		return
	}
	log.Println("Seeded initial admin user", email)
}
