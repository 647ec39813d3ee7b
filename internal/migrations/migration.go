package migrations

import (
	"log"
	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations runs all database migrations and creates default data
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	// Create default data
	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Username:     "admin",
			Email:        "admin@localhost",
			PasswordHash: string(hash),
			Role:         string(models.RoleAdmin),
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Created default admin user")
	}

	if err := db.Model(&models.Item{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		jackets := models.Category{Title: "Jackets"}
		if err := db.Create(&jackets).Error; err != nil {
			return err
		}
		items := []models.Item{
			{Name: "New Green Jacket", Description: "Lightweight green jacket", Price: decimal.NewFromFloat(59.90), Categories: []models.Category{jackets}},
			{Name: "Classic Denim Jacket", Description: "Blue denim jacket", Price: decimal.NewFromFloat(79.50), Categories: []models.Category{jackets}},
		}
		if err := db.Create(&items).Error; err != nil {
			return err
		}
		log.Println("Seeded default catalog")
	}

	return nil
}
