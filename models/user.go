// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"size:15;uniqueIndex;not null" json:"phone"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	RoleID       *uuid.UUID `gorm:"type:uuid" json:"roleId,omitempty"`
	RoleModel    *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// RoleName returns the user's role name or "" when no role is assigned.
func (u *User) RoleName() string {
	if u.RoleModel != nil {
		return u.RoleModel.Name
	}
	return ""
}

// HasPermission checks the user's role for an exact permission name.
// Wildcard-aware matching happens in the authorization middleware.
func (u *User) HasPermission(permissionName string) bool {
	if u.RoleModel != nil {
		return u.RoleModel.HasPermission(permissionName)
	}
	return false
}

// PermissionNames flattens the role's permissions for claims and middleware.
func (u *User) PermissionNames() []string {
	if u.RoleModel == nil {
		return nil
	}
	names := make([]string, 0, len(u.RoleModel.Permissions))
	for _, p := range u.RoleModel.Permissions {
		names = append(names, p.Name)
	}
	return names
}
