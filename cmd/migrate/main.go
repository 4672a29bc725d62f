package main

import (
	"flag"
	"log"

	"github.com/goyibnazarovasliddin/letters-registery/config"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/utils"

	"gorm.io/gorm"
)

func main() {
	seed := flag.Bool("seed", false, "seed an admin account, sample indices, and default settings")
	flag.Parse()

	db := config.ConnectDB()
	if err := db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Index{},
		&models.Letter{},
		&models.File{},
		&models.YearCounter{},
		&models.SystemSettings{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("✅ Migration completed")

	if *seed {
		if err := seedData(db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("✅ Seed completed")
	}
}

func seedData(db *gorm.DB) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		admin := models.User{
			Username:           "admin",
			FullName:           "System Administrator",
			Position:           "Admin",
			PasswordHash:       hash,
			Role:               models.RoleAdmin,
			Status:             models.UserActive,
			MustChangePassword: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Seeded admin user (username: admin)")
	}

	indices := []models.Index{
		{Code: "01-01", Name: "Rahbariyat buyruqlari", Status: models.IndexActive},
		{Code: "01-02", Name: "Tashkiliy masalalar", Status: models.IndexActive},
	}
	for _, index := range indices {
		var count int64
		if err := db.Model(&models.Index{}).Where("code = ?", index.Code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&index).Error; err != nil {
				return err
			}
		}
	}

	var settingsCount int64
	if err := db.Model(&models.SystemSettings{}).Count(&settingsCount).Error; err != nil {
		return err
	}
	if settingsCount == 0 {
		if err := db.Create(&models.SystemSettings{AllowPastDates: false}).Error; err != nil {
			return err
		}
	}

	return nil
}
