// handlers/vehicles.go
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

func ListVehicles(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.Vehicle{})
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("registration ILIKE ? OR make ILIKE ? OR model ILIKE ?", like, like, like)
	}
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var vehicles []models.Vehicle
	if err := q.Order("registration asc").Limit(limit).Offset(offset).Find(&vehicles).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, vehicles, total)
}

func GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, vehicle)
}

func CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(vehicle.Registration) == "" {
		utils.JSONError(w, http.StatusBadRequest, "registration is required")
		return
	}
	vehicle.ID = uuid.Nil
	vehicle.IsActive = true
	if err := config.DB.Create(&vehicle).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			utils.JSONError(w, http.StatusConflict, "registration already exists")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}
	utils.JSONResult(w, http.StatusCreated, vehicle)
}

func UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	vehicle.ID = id
	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, vehicle)
}

func DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var inFlight int64
	config.DB.Model(&models.Order{}).
		Where("vehicle_id = ? AND status = ?", id, models.StatusInProgress).
		Count(&inFlight)
	if inFlight > 0 {
		utils.JSONError(w, http.StatusConflict, "vehicle is assigned to waybills in progress")
		return
	}
	if err := config.DB.Delete(&models.Vehicle{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "vehicle deleted")
}
