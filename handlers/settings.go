// handlers/settings.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"gorm.io/datatypes"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

// GetCompanySettings returns the single company settings document.
func GetCompanySettings(w http.ResponseWriter, r *http.Request) {
	var setting models.CompanySetting
	if err := config.DB.Where("key = ?", "company").First(&setting).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "company settings not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, setting)
}

// UpdateCompanySettings replaces the settings value blob. The body is the
// settings document itself, validated only for being well-formed JSON.
func UpdateCompanySettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	if !json.Valid(body) {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var setting models.CompanySetting
	if err := config.DB.Where("key = ?", "company").First(&setting).Error; err != nil {
		setting = models.CompanySetting{Key: "company"}
	}
	setting.Value = datatypes.JSON(body)
	if claims := middleware.GetClaims(r); claims != nil {
		setting.UpdatedBy = claims.Email
	}
	if err := config.DB.Save(&setting).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, setting)
}
