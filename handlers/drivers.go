// handlers/drivers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

func ListDrivers(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.Driver{})
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR license_no ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var drivers []models.Driver
	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&drivers).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, drivers, total)
}

func GetDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	var driver models.Driver
	if err := config.DB.First(&driver, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "driver not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, driver)
}

func CreateDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(driver.Name) == "" {
		utils.JSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	driver.ID = uuid.Nil
	driver.IsActive = true
	if err := config.DB.Create(&driver).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusCreated, driver)
}

func UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	var driver models.Driver
	if err := config.DB.First(&driver, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "driver not found")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	driver.ID = id
	if err := config.DB.Save(&driver).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, driver)
}

func DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	var inFlight int64
	config.DB.Model(&models.Order{}).
		Where("driver_id = ? AND status = ?", id, models.StatusInProgress).
		Count(&inFlight)
	if inFlight > 0 {
		utils.JSONError(w, http.StatusConflict, "driver is assigned to waybills in progress")
		return
	}
	if err := config.DB.Delete(&models.Driver{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "driver deleted")
}
