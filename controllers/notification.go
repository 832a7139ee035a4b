package controllers

import (
	"errors"
	"net/http"

	"librarypro-backend/services"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
)

// NotificationController exposes a manual "send now" trigger for the
// expiry-notification job.
type NotificationController struct {
	Notifier *services.ExpiryNotifier
}

// Run executes one notification pass and returns its report.
func (nc *NotificationController) Run(c *gin.Context) {
	report, err := nc.Notifier.Run()
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			utils.RespondWithError(c, http.StatusConflict, "A notification run is already in progress")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Notification run failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification run completed",
		"report":  report,
	})
}
