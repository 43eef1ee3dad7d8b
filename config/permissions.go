package config

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/fleetops/models"
)

// SeedPermissions creates default permissions and roles.
func SeedPermissions() {
	permissions := []models.Permission{
		// ===== Customers & Routes =====
		{ID: uuid.New(), Name: "customer:create", Resource: "customer", Action: "create", Description: "Create customer"},
		{ID: uuid.New(), Name: "customer:read", Resource: "customer", Action: "read", Description: "View customer details"},
		{ID: uuid.New(), Name: "customer:update", Resource: "customer", Action: "update", Description: "Edit customer"},
		{ID: uuid.New(), Name: "customer:delete", Resource: "customer", Action: "delete", Description: "Delete customer"},
		{ID: uuid.New(), Name: "route:create", Resource: "route", Action: "create", Description: "Configure customer route"},
		{ID: uuid.New(), Name: "route:read", Resource: "route", Action: "read", Description: "View customer routes"},
		{ID: uuid.New(), Name: "route:delete", Resource: "route", Action: "delete", Description: "Remove customer route"},
		{ID: uuid.New(), Name: "location:create", Resource: "location", Action: "create", Description: "Add location"},
		{ID: uuid.New(), Name: "location:read", Resource: "location", Action: "read", Description: "View locations"},
		{ID: uuid.New(), Name: "location:update", Resource: "location", Action: "update", Description: "Edit location"},
		{ID: uuid.New(), Name: "location:delete", Resource: "location", Action: "delete", Description: "Remove location"},

		// ===== Waybills =====
		{ID: uuid.New(), Name: "order:create", Resource: "order", Action: "create", Description: "Create waybill"},
		{ID: uuid.New(), Name: "order:read", Resource: "order", Action: "read", Description: "View waybills"},
		{ID: uuid.New(), Name: "order:update", Resource: "order", Action: "update", Description: "Edit waybill"},
		{ID: uuid.New(), Name: "order:close", Resource: "order", Action: "close", Description: "Close waybill"},
		{ID: uuid.New(), Name: "order:delete", Resource: "order", Action: "delete", Description: "Delete waybill"},

		// ===== Fleet =====
		{ID: uuid.New(), Name: "vehicle:create", Resource: "vehicle", Action: "create", Description: "Add vehicle"},
		{ID: uuid.New(), Name: "vehicle:read", Resource: "vehicle", Action: "read", Description: "View vehicles"},
		{ID: uuid.New(), Name: "vehicle:update", Resource: "vehicle", Action: "update", Description: "Edit vehicle"},
		{ID: uuid.New(), Name: "vehicle:delete", Resource: "vehicle", Action: "delete", Description: "Remove vehicle"},
		{ID: uuid.New(), Name: "driver:create", Resource: "driver", Action: "create", Description: "Add driver"},
		{ID: uuid.New(), Name: "driver:read", Resource: "driver", Action: "read", Description: "View drivers"},
		{ID: uuid.New(), Name: "driver:update", Resource: "driver", Action: "update", Description: "Edit driver"},
		{ID: uuid.New(), Name: "driver:delete", Resource: "driver", Action: "delete", Description: "Remove driver"},

		// ===== Contracts =====
		{ID: uuid.New(), Name: "contract:create", Resource: "contract", Action: "create", Description: "Create contract"},
		{ID: uuid.New(), Name: "contract:read", Resource: "contract", Action: "read", Description: "View contracts"},
		{ID: uuid.New(), Name: "contract:update", Resource: "contract", Action: "update", Description: "Edit contract"},
		{ID: uuid.New(), Name: "contract:delete", Resource: "contract", Action: "delete", Description: "Delete contract"},

		// ===== Procurement =====
		{ID: uuid.New(), Name: "purchase:create", Resource: "purchase", Action: "create", Description: "Create purchase request/order"},
		{ID: uuid.New(), Name: "purchase:read", Resource: "purchase", Action: "read", Description: "View purchase details"},
		{ID: uuid.New(), Name: "purchase:update", Resource: "purchase", Action: "update", Description: "Edit purchase request/order"},
		{ID: uuid.New(), Name: "purchase:approve", Resource: "purchase", Action: "approve", Description: "Approve or reject purchase request"},
		{ID: uuid.New(), Name: "purchase:delete", Resource: "purchase", Action: "delete", Description: "Delete purchase request/order"},

		// ===== Reports =====
		{ID: uuid.New(), Name: "report:read", Resource: "report", Action: "read", Description: "View reports"},
		{ID: uuid.New(), Name: "report:export", Resource: "report", Action: "export", Description: "Export reports"},

		// ===== Admin / Users / Roles / Settings =====
		{ID: uuid.New(), Name: "user:create", Resource: "user", Action: "create", Description: "Create user"},
		{ID: uuid.New(), Name: "user:read", Resource: "user", Action: "read", Description: "View user"},
		{ID: uuid.New(), Name: "user:update", Resource: "user", Action: "update", Description: "Edit user"},
		{ID: uuid.New(), Name: "user:delete", Resource: "user", Action: "delete", Description: "Delete user"},
		{ID: uuid.New(), Name: "role:create", Resource: "role", Action: "create", Description: "Create role"},
		{ID: uuid.New(), Name: "role:read", Resource: "role", Action: "read", Description: "View roles"},
		{ID: uuid.New(), Name: "role:update", Resource: "role", Action: "update", Description: "Edit role permissions"},
		{ID: uuid.New(), Name: "role:delete", Resource: "role", Action: "delete", Description: "Delete roles"},
		{ID: uuid.New(), Name: "settings:read", Resource: "settings", Action: "read", Description: "View company settings"},
		{ID: uuid.New(), Name: "settings:update", Resource: "settings", Action: "update", Description: "Edit company settings"},
	}

	// Create permissions if they don't exist
	for _, perm := range permissions {
		var existingPerm models.Permission
		if err := DB.Where("name = ?", perm.Name).First(&existingPerm).Error; err != nil {
			if err := DB.Create(&perm).Error; err != nil {
				log.Printf("Error creating permission %s: %v", perm.Name, err)
			}
		}
	}

	var allPerms []models.Permission
	if err := DB.Find(&allPerms).Error; err != nil {
		log.Fatalf("Failed to load permissions: %v", err)
	}
	permMap := make(map[string]models.Permission)
	for _, p := range allPerms {
		permMap[p.Name] = p
	}

	roles := []models.Role{
		{
			Name:        "super_admin",
			Description: "Full system access",
			// super_admin bypasses permission checks in middleware; no
			// explicit grants needed.
		},
		{
			Name:        "operations_manager",
			Description: "Dispatch desk: waybills, fleet, customers, reports",
			Permissions: []models.Permission{
				{Name: "customer:create"}, {Name: "customer:read"}, {Name: "customer:update"},
				{Name: "route:create"}, {Name: "route:read"}, {Name: "route:delete"},
				{Name: "location:create"}, {Name: "location:read"}, {Name: "location:update"},
				{Name: "order:create"}, {Name: "order:read"}, {Name: "order:update"}, {Name: "order:close"},
				{Name: "vehicle:create"}, {Name: "vehicle:read"}, {Name: "vehicle:update"},
				{Name: "driver:create"}, {Name: "driver:read"}, {Name: "driver:update"},
				{Name: "contract:read"},
				{Name: "report:read"}, {Name: "report:export"},
			},
		},
		{
			Name:        "procurement_officer",
			Description: "Purchase requests, orders and RFQs",
			Permissions: []models.Permission{
				{Name: "purchase:create"}, {Name: "purchase:read"}, {Name: "purchase:update"},
				{Name: "purchase:approve"},
				{Name: "report:read"},
			},
		},
		{
			Name:        "clerk",
			Description: "Read-only back-office access plus waybill capture",
			Permissions: []models.Permission{
				{Name: "customer:read"}, {Name: "route:read"}, {Name: "location:read"},
				{Name: "order:create"}, {Name: "order:read"},
				{Name: "vehicle:read"}, {Name: "driver:read"}, {Name: "contract:read"},
			},
		},
	}

	for _, roleData := range roles {
		var role models.Role
		err := DB.Where("name = ?", roleData.Name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = models.Role{
				Name:        roleData.Name,
				Description: roleData.Description,
				IsActive:    true,
			}
			if err := DB.Create(&role).Error; err != nil {
				log.Printf("Error creating role %s: %v", roleData.Name, err)
				continue
			}
			log.Printf("Created role: %s", roleData.Name)
		} else if err != nil {
			log.Printf("DB error fetching role %s: %v", roleData.Name, err)
			continue
		}

		var permsToAssign []models.Permission
		for _, p := range roleData.Permissions {
			dbPerm, ok := permMap[p.Name]
			if !ok {
				log.Printf("Permission %q not found for role %q", p.Name, role.Name)
				continue
			}
			permsToAssign = append(permsToAssign, dbPerm)
		}

		// Re-assign from scratch for idempotency.
		if err := DB.Exec("DELETE FROM role_permissions WHERE role_id = ?", role.ID).Error; err != nil {
			log.Printf("Failed to clear permissions for role %s: %v", role.Name, err)
			continue
		}
		for _, perm := range permsToAssign {
			rp := models.RolePermission{
				RoleID:       role.ID,
				PermissionID: perm.ID,
				CreatedAt:    time.Now(),
			}
			if err := DB.Create(&rp).Error; err != nil {
				log.Printf("Failed to assign %s to role %s: %v", perm.Name, role.Name, err)
			}
		}
	}
}
