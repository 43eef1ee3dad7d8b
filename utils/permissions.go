package utils

import "strings"

// MatchesPermission reports whether a granted permission satisfies a
// required one. Permission names use the "resource:action" form and
// either part may be a "*" wildcard:
//
//   - "*" grants everything
//   - "order:*" grants every action on orders
//   - "*:read" grants read on every resource
//   - "order:close" is an exact grant
func MatchesPermission(userPerm, requiredPerm string) bool {
	if userPerm == requiredPerm {
		return true
	}
	if userPerm == "*" || userPerm == "*:*" {
		return true
	}

	userParts := strings.Split(userPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")
	if len(userParts) < 2 || len(reqParts) < 2 {
		// Names without a colon only match exactly.
		return userPerm == requiredPerm
	}

	resourceMatch := userParts[0] == "*" || userParts[0] == reqParts[0]
	actionMatch := userParts[1] == "*" || userParts[1] == reqParts[1]
	return resourceMatch && actionMatch
}
