// handlers/users.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

func ListUsers(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.User{}).Preload("RoleModel")
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	var users []models.User
	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResultsTotal(w, http.StatusOK, users, total)
}

func GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var user models.User
	if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONResult(w, http.StatusOK, user)
}

type userUpdateReq struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	RoleID   *string `json:"roleId"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password"`
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	var req userUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.RoleID != nil {
		if *req.RoleID == "" {
			user.RoleID = nil
		} else {
			roleID, err := uuid.Parse(*req.RoleID)
			if err != nil {
				utils.JSONError(w, http.StatusBadRequest, "invalid roleId")
				return
			}
			var role models.Role
			if err := config.DB.First(&role, "id = ?", roleID).Error; err != nil {
				utils.JSONError(w, http.StatusBadRequest, "unknown role")
				return
			}
			user.RoleID = &roleID
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "error hashing password")
			return
		}
		user.PasswordHash = string(hash)
	}
	if err := config.DB.Save(&user).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResult(w, http.StatusOK, user)
}

func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	res := config.DB.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONMessage(w, http.StatusOK, "user deactivated")
}
