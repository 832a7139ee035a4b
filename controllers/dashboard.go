package controllers

import (
	"net/http"
	"time"

	"librarypro-backend/config"
	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the membership counters shown on the dashboard
func GetDashboardStats(c *gin.Context) {
	today := utils.FormatDate(time.Now())

	var totalStudents int64
	if err := config.DB.Model(&models.Student{}).Count(&totalStudents).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	var activeStudents int64
	config.DB.Model(&models.Student{}).Where("membership_end >= ?", today).Count(&activeStudents)

	var expiredMemberships int64
	config.DB.Model(&models.Student{}).Where("membership_end < ?", today).Count(&expiredMemberships)

	c.JSON(http.StatusOK, gin.H{
		"totalStudents":      totalStudents,
		"activeStudents":     activeStudents,
		"expiredMemberships": expiredMemberships,
	})
}
