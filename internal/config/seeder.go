package config

import (
	"log"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/core/domain"
	"revendapro/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedDatabase inserts the default admin user and the bank master list
// when they are missing. Safe to run on every boot.
func SeedDatabase(db *gorm.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	if err := seedBanks(db); err != nil {
		return err
	}
	log.Println("🌱 Database seed completed")
	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plain := getEnv("ADMIN_INITIAL_PASSWORD", "changeme123")
	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Email:    getEnv("ADMIN_EMAIL", "admin@revendapro.com.br"),
		Password: hashed,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("🌱 Seeded admin user '%s' (change the initial password)", admin.Username)
	return nil
}

func seedBanks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Bank{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	banks := []models.Bank{
		{Code: "341", Name: "Itaú Unibanco", IsActive: true},
		{Code: "237", Name: "Bradesco Financiamentos", IsActive: true},
		{Code: "001", Name: "Banco do Brasil", IsActive: true},
		{Code: "033", Name: "Santander Financiamentos", IsActive: true},
		{Code: "394", Name: "Banco Bradesco Financ.", IsActive: true},
		{Code: "626", Name: "Banco C6 Consignado", IsActive: true},
		{Code: "336", Name: "Banco C6", IsActive: true},
		{Code: "077", Name: "Banco Inter", IsActive: true},
	}
	if err := db.Create(&banks).Error; err != nil {
		return err
	}
	log.Printf("🌱 Seeded %d banks", len(banks))
	return nil
}
