package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zablonzekky/task-management-app/internal/model"
	"github.com/zablonzekky/task-management-app/internal/service"
)

// DashboardHandler serves the role-scoped dashboard stats
type DashboardHandler struct {
	service service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	actorRole, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if actorRole == model.RoleAdmin {
		stats, err := h.service.AdminStats(c.Request.Context())
		if err != nil {
			log.Printf("Error getting admin dashboard stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	stats, err := h.service.UserStats(c.Request.Context(), actorID)
	if err != nil {
		log.Printf("Error getting user dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	dashboardRoutes := rg.Group("/dashboard")
	dashboardRoutes.Use(authMW)
	{
		dashboardRoutes.GET("/stats", h.GetStats)
	}
}
