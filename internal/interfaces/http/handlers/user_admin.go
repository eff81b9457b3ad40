// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// UserAdminHandler handles user management endpoints
type UserAdminHandler struct {
	userService *user.Service
}

// NewUserAdminHandler creates a new user management handler
func NewUserAdminHandler(userService *user.Service) *UserAdminHandler {
	return &UserAdminHandler{userService: userService}
}

// ListUsers handles GET /admin/users
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// GetUser handles GET /admin/users/:account
func (h *UserAdminHandler) GetUser(c *gin.Context) {
	u, err := h.userService.Get(c.Request.Context(), c.Param("account"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": u})
}

// UpdateUser handles PATCH /admin/users/:account
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	var upd user.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	callerLevel, _ := middleware.GetLevelFromContext(c)

	err := h.userService.UpdateByAccount(c.Request.Context(), c.Param("account"), upd, callerLevel)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, user.ErrLevelChangeForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser handles DELETE /admin/users/:account
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	err := h.userService.DeleteByAccount(c.Request.Context(), c.Param("account"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
