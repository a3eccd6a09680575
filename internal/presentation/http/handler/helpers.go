package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Accessors for the identity the auth middleware stashed in the gin
// context. A nil or empty result means the request was anonymous.

func GetUserID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

func GetUserEmail(c *gin.Context) string {
	email, _ := c.Get("user_email")
	if s, ok := email.(string); ok {
		return s
	}
	return ""
}

func GetUserRoles(c *gin.Context) []string {
	value, _ := c.Get("user_roles")
	if roles, ok := value.([]string); ok {
		return roles
	}
	return nil
}

func GetUserPermissions(c *gin.Context) []string {
	value, _ := c.Get("user_permissions")
	if permissions, ok := value.([]string); ok {
		return permissions
	}
	return nil
}

func IsAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "admin" {
			return true
		}
	}
	return false
}
