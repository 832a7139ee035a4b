package controllers

import (
	"errors"
	"net/http"

	"librarypro-backend/config"
	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateScheduleInput defines the expected JSON structure for creating a schedule
type CreateScheduleInput struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Time        string  `json:"time" binding:"required"`       // HH:MM, 24-hour
	EventDate   string  `json:"event_date" binding:"required"` // YYYY-MM-DD
}

// UpdateScheduleInput defines the expected JSON structure for updating a schedule
type UpdateScheduleInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Time        *string `json:"time"`
	EventDate   *string `json:"event_date"`
}

// CreateSchedule adds a new library schedule entry
func CreateSchedule(c *gin.Context) {
	var input CreateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Title, time (HH:MM), and event_date (YYYY-MM-DD) are required")
		return
	}

	if !utils.ValidateTimeOfDay(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format, use HH:MM (24-hour)")
		return
	}
	if !utils.ValidateDate(input.EventDate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event_date format, use YYYY-MM-DD")
		return
	}

	schedule := models.Schedule{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Time:        input.Time,
		EventDate:   input.EventDate,
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Schedule added successfully",
		"schedule": schedule,
	})
}

// GetSchedules retrieves all schedules
func GetSchedules(c *gin.Context) {
	var schedules []models.Schedule
	if err := config.DB.Order("created_at, title").Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// GetSchedule retrieves a specific schedule by ID
func GetSchedule(c *gin.Context) {
	scheduleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	var schedule models.Schedule
	if err := config.DB.First(&schedule, "id = ?", scheduleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// UpdateSchedule updates an existing schedule
func UpdateSchedule(c *gin.Context) {
	scheduleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	var input UpdateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Time != nil && !utils.ValidateTimeOfDay(*input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format, use HH:MM")
		return
	}
	if input.EventDate != nil && !utils.ValidateDate(*input.EventDate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event_date format, use YYYY-MM-DD")
		return
	}

	var schedule models.Schedule
	if err := config.DB.First(&schedule, "id = ?", scheduleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found for update")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		schedule.Title = *input.Title
	}
	if input.Description != nil {
		schedule.Description = input.Description
	}
	if input.Time != nil {
		schedule.Time = *input.Time
	}
	if input.EventDate != nil {
		schedule.EventDate = *input.EventDate
	}

	if err := config.DB.Save(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule updated successfully",
		"schedule": schedule,
	})
}

// DeleteSchedule removes a schedule
func DeleteSchedule(c *gin.Context) {
	scheduleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	result := config.DB.Where("id = ?", scheduleUUID).Delete(&models.Schedule{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Schedule not found for deletion")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
