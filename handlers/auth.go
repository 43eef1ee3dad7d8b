// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/fleetops/config"
	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	RoleID   string `json:"roleId"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Role  string    `json:"role"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "error hashing password")
		return
	}
	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	if req.RoleID != "" {
		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid roleId")
			return
		}
		u.RoleID = &roleID
	}
	if err := config.DB.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			utils.JSONError(w, http.StatusConflict, "email or phone already registered")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}
	utils.JSONResult(w, http.StatusCreated, userPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	var u models.User
	err := config.DB.
		Preload("RoleModel").
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(req.Email)), true).
		First(&u).Error
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := middleware.GenerateToken(u.ID.String(), u.RoleName(), u.Name, u.Email)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "couldn't create token")
		return
	}
	utils.JSONResult(w, http.StatusOK, loginResp{
		Token: token,
		User: userPayload{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Phone: u.Phone,
			Role:  u.RoleName(),
		},
	})
}

// GetCurrentUser returns the authenticated user's profile with role and
// permission names, for clients that gate their menus on permissions.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	user := middleware.GetUser(r)
	if user.ID == uuid.Nil {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	resp := map[string]interface{}{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"phone":       user.Phone,
		"role":        user.RoleName(),
		"permissions": user.PermissionNames(),
	}
	utils.JSONResult(w, http.StatusOK, resp)
}
