package handlers

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
)

// documentPrefix reads a numbering prefix out of the company settings blob,
// falling back when settings are missing or don't carry the key.
func documentPrefix(key, fallback string) string {
	var setting models.CompanySetting
	if err := config.DB.Where("key = ?", "company").First(&setting).Error; err != nil {
		return fallback
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(setting.Value, &doc); err != nil {
		return fallback
	}
	if v, ok := doc[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// nextDocumentNumber produces the next sequential number for a document kind,
// e.g. "WB-000042". Count-based and run inside the caller's transaction so a
// unique index on the number column catches races.
func nextDocumentNumber(tx *gorm.DB, model interface{}, prefix string) (string, error) {
	var count int64
	if err := tx.Unscoped().Model(model).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, count+1), nil
}
