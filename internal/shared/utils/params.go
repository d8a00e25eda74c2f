package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
)

// ParseSIDParam reads a prefixed ID from a path parameter and checks its prefix.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}
	return sid, nil
}

// ParseIDParam reads a required path parameter without a prefix check.
// Master data IDs may be chosen by the seed file.
func ParseIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	return value, nil
}
