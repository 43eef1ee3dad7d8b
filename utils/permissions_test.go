package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		userPerm     string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "order:create", "order:create", true},
		{"exact match different action", "order:create", "order:read", false},
		{"exact match different resource", "order:create", "customer:create", false},

		// Full wildcard tests
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard *:*", "*:*", "order:close", true},
		{"full wildcard matches all resources", "*:*", "user:delete", true},

		// Resource wildcard tests
		{"resource wildcard matches create", "order:*", "order:create", true},
		{"resource wildcard matches close", "order:*", "order:close", true},
		{"resource wildcard matches delete", "order:*", "order:delete", true},
		{"resource wildcard doesn't match different resource", "order:*", "customer:create", false},

		// Action wildcard tests
		{"action wildcard matches order", "*:read", "order:read", true},
		{"action wildcard matches customer", "*:read", "customer:read", true},
		{"action wildcard matches report", "*:read", "report:read", true},
		{"action wildcard doesn't match different action", "*:read", "order:create", false},

		// Complex patterns
		{"resource wildcard covers custom actions", "purchase:*", "purchase:approve", true},
		{"action wildcard across resources", "*:delete", "contract:delete", true},

		// Names without a colon
		{"plain name exact match", "export_reports", "export_reports", true},
		{"plain name no match", "export_reports", "create_reports", false},
		{"wildcard matches plain name", "*", "export_reports", true},

		// Edge cases
		{"empty required permission", "order:create", "", false},
		{"empty user permission", "", "order:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs multi-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.userPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.userPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestMatchesPermission_RoleScenarios(t *testing.T) {
	tests := []struct {
		name      string
		userRole  string
		userPerms []string
		required  string
		expected  bool
	}{
		{
			name:      "super admin has all access",
			userRole:  "super_admin",
			userPerms: []string{"*"},
			required:  "order:delete",
			expected:  true,
		},
		{
			name:      "dispatcher holds every order action",
			userRole:  "operations_manager",
			userPerms: []string{"order:*"},
			required:  "order:close",
			expected:  true,
		},
		{
			name:      "dispatcher cannot manage users",
			userRole:  "operations_manager",
			userPerms: []string{"order:*"},
			required:  "user:create",
			expected:  false,
		},
		{
			name:      "auditor has read-only access",
			userRole:  "auditor",
			userPerms: []string{"*:read"},
			required:  "contract:read",
			expected:  true,
		},
		{
			name:      "auditor cannot export",
			userRole:  "auditor",
			userPerms: []string{"*:read"},
			required:  "report:export",
			expected:  false,
		},
		{
			name:      "specific grant only",
			userRole:  "clerk",
			userPerms: []string{"order:create"},
			required:  "order:create",
			expected:  true,
		},
		{
			name:      "specific grant denied for other action",
			userRole:  "clerk",
			userPerms: []string{"order:create"},
			required:  "order:close",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasPermission := false
			for _, userPerm := range tt.userPerms {
				if MatchesPermission(userPerm, tt.required) {
					hasPermission = true
					break
				}
			}

			if hasPermission != tt.expected {
				t.Errorf("User with role %q and permissions %v: expected %v for %q, got %v",
					tt.userRole, tt.userPerms, tt.expected, tt.required, hasPermission)
			}
		})
	}
}

func BenchmarkMatchesPermission_ExactMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("order:create", "order:create")
	}
}

func BenchmarkMatchesPermission_WildcardMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("*", "order:create")
	}
}

func BenchmarkMatchesPermission_ResourceWildcard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("order:*", "order:create")
	}
}

func BenchmarkMatchesPermission_NoMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("order:create", "user:delete")
	}
}
