package controllers

import (
	"net/http"

	"librarypro-backend/config"
	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// UpdateEmailSettingsInput defines the expected JSON structure. Values
// are stored as strings in the settings table; the notification job
// parses them and falls back to its defaults when they are missing or
// not numeric.
type UpdateEmailSettingsInput struct {
	TemplateID string `json:"templateId" binding:"required"`
	DaysBefore string `json:"daysBefore" binding:"required"`
}

// GetEmailSettings returns the stored notification settings. Missing
// keys are returned as null; defaults are applied by the job, not here.
func GetEmailSettings(c *gin.Context) {
	var rows []models.Setting
	keys := []string{models.SettingEmailTemplateID, models.SettingDaysBeforeExpiry}
	if err := config.DB.Where("key IN ?", keys).Find(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	var templateID, daysBefore *string
	for i := range rows {
		switch rows[i].Key {
		case models.SettingEmailTemplateID:
			templateID = &rows[i].Value
		case models.SettingDaysBeforeExpiry:
			daysBefore = &rows[i].Value
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"templateId": templateID,
		"daysBefore": daysBefore,
	})
}

// UpdateEmailSettings upserts the two notification settings keys
func UpdateEmailSettings(c *gin.Context) {
	var input UpdateEmailSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rows := []models.Setting{
		{Key: models.SettingEmailTemplateID, Value: input.TemplateID},
		{Key: models.SettingDaysBeforeExpiry, Value: input.DaysBefore},
	}

	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email settings updated successfully"})
}
