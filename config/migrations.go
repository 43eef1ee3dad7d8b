package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/fleetops/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250610_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Location{}, &models.Customer{},
					&models.Route{}, &models.Vehicle{}, &models.Driver{}, &models.Contract{},
					&models.Order{})
			},
		},
		{
			ID: "20250610_add_rbac_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Permission{}, &models.Role{}, &models.RolePermission{})
			},
		},
		{
			ID: "20250702_add_procurement_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PurchaseRequest{}, &models.ApprovalDecision{},
					&models.PurchaseOrder{}, &models.RFQ{})
			},
		},
		{
			ID: "20250702_add_company_settings",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.CompanySetting{})
			},
		},
		{
			ID: "20250818_normalize_legacy_order_statuses",
			Migrate: func(tx *gorm.DB) error {
				// Old rows written by the previous front end carry the
				// Pending/Delivered aliases.
				if err := tx.Exec("UPDATE orders SET status = 'InProgress' WHERE status = 'Pending'").Error; err != nil {
					return err
				}
				return tx.Exec("UPDATE orders SET status = 'Closed' WHERE status = 'Delivered'").Error
			},
		},
		{
			ID: "20250818_add_order_route_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_routes_customer_from ON routes (customer_id, from_id) WHERE deleted_at IS NULL").Error
			},
		},
	})
	return m.Migrate()
}
