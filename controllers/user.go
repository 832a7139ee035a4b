package controllers

import (
	"errors"
	"net/http"

	"librarypro-backend/config"
	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProfileInput defines the expected JSON structure
type UpdateProfileInput struct {
	FullName        *string `json:"full_name"`
	Email           *string `json:"email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

// GetProfile returns the logged-in user's profile
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}

// UpdateProfile updates the logged-in user's name, email and optionally password
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	// Check if email exists for another user
	if input.Email != nil && *input.Email != "" {
		var existing models.User
		if err := config.DB.Where("email = ? AND id != ?", *input.Email, user.ID).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Email already in use by another user")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		user.Email = *input.Email
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	updates := map[string]interface{}{
		"full_name": user.FullName,
		"email":     user.Email,
	}

	// Password change requires the current password
	if input.CurrentPassword != nil && input.NewPassword != nil {
		if !utils.CheckPasswordHash(*input.CurrentPassword, user.Password) {
			utils.RespondWithError(c, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		hashed, err := utils.HashPassword(*input.NewPassword)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
			return
		}
		updates["password"] = hashed
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}
