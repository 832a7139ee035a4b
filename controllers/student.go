package controllers

import (
	"errors"
	"net/http"
	"time"

	"librarypro-backend/config"
	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStudentInput defines the expected JSON structure for creating a student
type CreateStudentInput struct {
	Name            string    `json:"name" binding:"required"`
	Email           *string   `json:"email"` // Pointer to allow null
	Phone           *string   `json:"phone"`
	Address         *string   `json:"address"`
	MembershipStart time.Time `json:"membership_start" binding:"required"`
	MembershipEnd   time.Time `json:"membership_end" binding:"required"`
}

// UpdateStudentInput defines the expected JSON structure for updating a student
type UpdateStudentInput struct {
	Name            *string    `json:"name"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	Address         *string    `json:"address"`
	MembershipStart *time.Time `json:"membership_start"`
	MembershipEnd   *time.Time `json:"membership_end"`
}

// RenewMembershipInput defines the expected JSON structure for a renewal
type RenewMembershipInput struct {
	MembershipStart time.Time `json:"membership_start" binding:"required"`
	MembershipEnd   time.Time `json:"membership_end" binding:"required"`
}

type studentResponse struct {
	models.Student
	Status string `json:"status"`
}

func withStatus(students []models.Student) []studentResponse {
	now := time.Now()
	out := make([]studentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, studentResponse{Student: s, Status: s.Status(now)})
	}
	return out
}

// sanitize turns empty strings into nulls so the unique index on email
// ignores students without one.
func sanitize(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

// CreateStudent registers a new library member
func CreateStudent(c *gin.Context) {
	var input CreateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := sanitize(input.Email)
	phone := sanitize(input.Phone)

	if phone != nil && !utils.ValidatePhone(*phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check email uniqueness only if email is provided
	if email != nil {
		var existing models.Student
		if err := config.DB.Where("email = ?", *email).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Email already in use")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	student := models.Student{
		ID:              uuid.New(),
		Name:            input.Name,
		Email:           email,
		Phone:           phone,
		Address:         sanitize(input.Address),
		MembershipStart: input.MembershipStart,
		MembershipEnd:   input.MembershipEnd,
	}

	if err := config.DB.Create(&student).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create student")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Student added successfully",
		"student": studentResponse{Student: student, Status: student.Status(time.Now())},
	})
}

// GetStudents retrieves all students ordered by name
func GetStudents(c *gin.Context) {
	var students []models.Student
	if err := config.DB.Order("name").Find(&students).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": withStatus(students)})
}

// GetActiveStudents retrieves students whose membership has not ended
func GetActiveStudents(c *gin.Context) {
	today := utils.FormatDate(time.Now())
	var students []models.Student
	if err := config.DB.Where("membership_end >= ?", today).Order("name").Find(&students).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": withStatus(students)})
}

// GetExpiredStudents retrieves students whose membership has ended
func GetExpiredStudents(c *gin.Context) {
	today := utils.FormatDate(time.Now())
	var students []models.Student
	if err := config.DB.Where("membership_end < ?", today).Order("name").Find(&students).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": withStatus(students)})
}

// GetExpiringSoonStudents retrieves students expiring within 30 days
func GetExpiringSoonStudents(c *gin.Context) {
	now := time.Now()
	today := utils.FormatDate(now)
	cutoff := utils.TargetDate(now, 30)

	var students []models.Student
	if err := config.DB.Where("membership_end BETWEEN ? AND ?", today, cutoff).
		Order("membership_end").Find(&students).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": withStatus(students)})
}

// GetStudent retrieves a specific student by ID
func GetStudent(c *gin.Context) {
	studentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	var student models.Student
	if err := config.DB.First(&student, "id = ?", studentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Student not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student": studentResponse{Student: student, Status: student.Status(time.Now())},
	})
}

// UpdateStudent updates an existing student
func UpdateStudent(c *gin.Context) {
	studentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	var input UpdateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var student models.Student
	if err := config.DB.First(&student, "id = ?", studentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Student not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		student.Name = *input.Name
	}
	if input.Email != nil {
		email := sanitize(input.Email)
		if email != nil {
			var existing models.Student
			if err := config.DB.Where("email = ? AND id != ?", *email, studentUUID).
				First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Email already in use by another student")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		student.Email = email
	}
	if input.Phone != nil {
		phone := sanitize(input.Phone)
		if phone != nil && !utils.ValidatePhone(*phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		student.Phone = phone
	}
	if input.Address != nil {
		student.Address = sanitize(input.Address)
	}
	if input.MembershipStart != nil {
		student.MembershipStart = *input.MembershipStart
	}
	if input.MembershipEnd != nil {
		student.MembershipEnd = *input.MembershipEnd
	}

	if err := config.DB.Save(&student).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update student")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Student updated successfully",
		"student": studentResponse{Student: student, Status: student.Status(time.Now())},
	})
}

// DeleteStudent removes a student
func DeleteStudent(c *gin.Context) {
	studentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	result := config.DB.Where("id = ?", studentUUID).Delete(&models.Student{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete student")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Student not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}

// RenewMembership sets a new membership period for a student
func RenewMembership(c *gin.Context) {
	studentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	var input RenewMembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var student models.Student
	if err := config.DB.First(&student, "id = ?", studentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Student not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	student.MembershipStart = input.MembershipStart
	student.MembershipEnd = input.MembershipEnd

	if err := config.DB.Save(&student).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to renew membership")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Membership renewed successfully",
		"student": studentResponse{Student: student, Status: student.Status(time.Now())},
	})
}
