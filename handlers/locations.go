// handlers/locations.go
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

func ListLocations(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.Location{})
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var locations []models.Location
	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&locations).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, locations, total)
}

func GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	var location models.Location
	if err := config.DB.First(&location, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "location not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, location)
}

func CreateLocation(w http.ResponseWriter, r *http.Request) {
	var location models.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(location.Name) == "" {
		utils.JSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	if location.HasCoordinates() && !utils.ValidCoordinate(location.Latitude, location.Longitude) {
		utils.JSONError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}
	location.ID = uuid.Nil
	if err := config.DB.Create(&location).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusCreated, location)
}

func UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	var location models.Location
	if err := config.DB.First(&location, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "location not found")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	location.ID = id
	if location.HasCoordinates() && !utils.ValidCoordinate(location.Latitude, location.Longitude) {
		utils.JSONError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}
	if err := config.DB.Save(&location).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, location)
}

func DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	var referenced int64
	config.DB.Model(&models.Route{}).
		Where("from_id = ? OR to_id = ?", id, id).
		Count(&referenced)
	if referenced > 0 {
		utils.JSONError(w, http.StatusConflict, "location is used by customer routes")
		return
	}
	if err := config.DB.Delete(&models.Location{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "location deleted")
}
