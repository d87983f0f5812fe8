package utils

import (
	"strings"

	"retail-bi/models"
)

// roleAliases maps every accepted spelling to its role. The Indonesian names
// are what the first dashboard deployment put in its tokens.
var roleAliases = map[string]models.Role{
	"operator":  models.RoleOperator,
	"analyst":   models.RoleAnalyst,
	"analitik":  models.RoleAnalyst,
	"executive": models.RoleExecutive,
	"eksekutif": models.RoleExecutive,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (models.Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(role))]
	return r, ok
}

// IsValidRole checks if a role is valid without normalizing it
func IsValidRole(role string) bool {
	_, ok := ValidateAndNormalizeRole(role)
	return ok
}
