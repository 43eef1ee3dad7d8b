// handlers/roles.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

func ListRoles(w http.ResponseWriter, r *http.Request) {
	var roles []models.Role
	if err := config.DB.Preload("Permissions").Order("name asc").Find(&roles).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResults(w, http.StatusOK, roles)
}

func ListPermissions(w http.ResponseWriter, r *http.Request) {
	var permissions []models.Permission
	if err := config.DB.Order("resource asc, action asc").Find(&permissions).Error; err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONResults(w, http.StatusOK, permissions)
}

type roleReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"` // permission names
}

func CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.JSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	role := models.Role{Name: req.Name, Description: req.Description, IsActive: true}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		return setRolePermissions(tx, &role, req.Permissions)
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			utils.JSONError(w, http.StatusConflict, "role name already exists")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}
	config.DB.Preload("Permissions").First(&role, "id = ?", role.ID)
	utils.JSONResult(w, http.StatusCreated, role)
}

func UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	var role models.Role
	if err := config.DB.First(&role, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "role not found")
		return
	}
	if role.Name == "super_admin" {
		utils.JSONError(w, http.StatusForbidden, "super_admin cannot be modified")
		return
	}
	var req roleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.Name != "" {
			role.Name = req.Name
		}
		if req.Description != "" {
			role.Description = req.Description
		}
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		if req.Permissions != nil {
			return setRolePermissions(tx, &role, req.Permissions)
		}
		return nil
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	config.DB.Preload("Permissions").First(&role, "id = ?", role.ID)
	utils.JSONResult(w, http.StatusOK, role)
}

func DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	var role models.Role
	if err := config.DB.First(&role, "id = ?", id).Error; err != nil {
		utils.JSONError(w, http.StatusNotFound, "role not found")
		return
	}
	if role.Name == "super_admin" {
		utils.JSONError(w, http.StatusForbidden, "super_admin cannot be deleted")
		return
	}
	var assigned int64
	config.DB.Model(&models.User{}).Where("role_id = ?", id).Count(&assigned)
	if assigned > 0 {
		utils.JSONError(w, http.StatusConflict, "role is assigned to users")
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	utils.JSONMessage(w, http.StatusOK, "role deleted")
}

// setRolePermissions replaces the role's grants with the named permissions.
// Unknown names are rejected rather than silently skipped.
func setRolePermissions(tx *gorm.DB, role *models.Role, names []string) error {
	var perms []models.Permission
	if len(names) > 0 {
		if err := tx.Where("name IN ?", names).Find(&perms).Error; err != nil {
			return err
		}
		if len(perms) != len(names) {
			return errUnknownPermission
		}
	}
	if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
		return err
	}
	for _, p := range perms {
		rp := models.RolePermission{RoleID: role.ID, PermissionID: p.ID}
		if err := tx.Create(&rp).Error; err != nil {
			return err
		}
	}
	return nil
}

var errUnknownPermission = &unknownPermissionError{}

type unknownPermissionError struct{}

func (e *unknownPermissionError) Error() string { return "unknown permission name" }
