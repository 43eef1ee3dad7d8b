package config

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"p9e.in/fleetops/models"
)

// SeedCompanySettings creates the default settings document when none exists.
func SeedCompanySettings() {
	var existing models.CompanySetting
	err := DB.Where("key = ?", "company").First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("DB error fetching company settings: %v", err)
		return
	}

	setting := models.CompanySetting{
		Key: "company",
		Value: datatypes.JSON([]byte(`{
			"companyName": "",
			"waybillPrefix": "WB",
			"purchaseRequestPrefix": "PR",
			"purchaseOrderPrefix": "PO",
			"rfqPrefix": "RFQ"
		}`)),
	}
	if err := DB.Create(&setting).Error; err != nil {
		log.Printf("Error seeding company settings: %v", err)
	}
}

// SeedAdminUser creates the bootstrap super_admin account from env vars.
// Skipped when the email already exists or ADMIN_EMAIL is unset.
func SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	var role models.Role
	if err := DB.Where("name = ?", "super_admin").First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		Phone:        os.Getenv("ADMIN_PHONE"),
		PasswordHash: string(hash),
		RoleID:       &role.ID,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created admin user %s", email)
	return nil
}
