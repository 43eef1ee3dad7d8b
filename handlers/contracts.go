// handlers/contracts.go
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

func ListContracts(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.Contract{}).Preload("Customer")
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid customerId")
			return
		}
		q = q.Where("customer_id = ?", customerID)
	}
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var contracts []models.Contract
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&contracts).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, contracts, total)
}

func GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid contract id")
		return
	}
	var contract models.Contract
	if err := config.DB.Preload("Customer").First(&contract, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "contract not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, contract)
}

func CreateContract(w http.ResponseWriter, r *http.Request) {
	var contract models.Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if contract.CustomerID == uuid.Nil {
		utils.JSONError(w, http.StatusBadRequest, "customerId is required")
		return
	}
	if strings.TrimSpace(contract.ContractNo) == "" {
		utils.JSONError(w, http.StatusBadRequest, "contractNo is required")
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", contract.CustomerID).Error; err != nil {
		utils.JSONError(w, http.StatusBadRequest, "unknown customer")
		return
	}
	contract.ID = uuid.Nil
	contract.IsActive = true
	if err := config.DB.Create(&contract).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			utils.JSONError(w, http.StatusConflict, "contract number already exists")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}
	utils.JSONResult(w, http.StatusCreated, contract)
}

func UpdateContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid contract id")
		return
	}
	var contract models.Contract
	if err := config.DB.First(&contract, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "contract not found")
		return
	}
	customerID := contract.CustomerID
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	contract.ID = id
	contract.CustomerID = customerID
	contract.Customer = nil
	if err := config.DB.Omit("Customer").Save(&contract).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, contract)
}

func DeleteContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid contract id")
		return
	}
	if err := config.DB.Delete(&models.Contract{}, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "contract deleted")
}
