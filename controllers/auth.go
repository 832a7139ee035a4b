package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"librarypro-backend/config"
	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin user and issues a JWT, also set as an
// httpOnly cookie for the dashboard.
func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	username := strings.TrimSpace(input.Username)

	var user models.User
	result := config.DB.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	// Cookie lifetime tracks the token lifetime; secure only outside
	// local development so the localhost dashboard still works.
	maxAge := utils.TokenExpiryHours() * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		secureCookies(),
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// EnsureDefaultAdmin seeds an admin/admin account when the users table
// is empty, so a fresh install can be logged into.
func EnsureDefaultAdmin() {
	var count int64
	if err := config.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Error checking for existing users: %v", err)
		return
	}
	if count > 0 {
		log.Println("Admin user already exists")
		return
	}

	admin := models.User{
		Username: "admin",
		Password: "admin", // Hashed in BeforeCreate hook
		Role:     "admin",
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Error creating default admin: %v", err)
		return
	}
	log.Println("Default admin user created")
}

func secureCookies() bool {
	return gin.Mode() == gin.ReleaseMode
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", secureCookies(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Status reports whether the caller holds a valid token. Anonymous
// callers get a 200 with isAuthenticated false, not a 401.
func Status(c *gin.Context) {
	claims, err := utils.ClaimsFromRequest(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", claims["sub"]).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
