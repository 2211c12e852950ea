package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"user": user}})
	}
}

// UpdateProfile updates the user's name and phone
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			Name  *string `json:"name"`
			Phone *string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if input.Name != nil {
			name := utils.SanitizeText(*input.Name)
			if name == "" {
				c.JSON(400, gin.H{"success": false, "message": "Name cannot be empty"})
				return
			}
			user.Name = name
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Profile updated successfully",
			"data":    gin.H{"user": user},
		})
	}
}

// UpdatePassword verifies the current password before replacing it
func UpdatePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			CurrentPassword string `json:"currentPassword" binding:"required"`
			NewPassword     string `json:"newPassword" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := user.CheckPassword(input.CurrentPassword); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Current password is incorrect"})
			return
		}

		if err := user.SetPassword(input.NewPassword); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update password"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Password updated successfully"})
	}
}

// UploadAvatar stores a profile image and records its URL
func UploadAvatar(db *gorm.DB, storage *services.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		file, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "No file uploaded"})
			return
		}

		url, err := storage.SaveUpload(file, "profiles")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", url).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to save avatar"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Avatar uploaded successfully",
			"data":    gin.H{"avatar": url},
		})
	}
}

// UploadKYCDocument stores an identity document and resets the KYC decision
// back to pending for the admin queue.
func UploadKYCDocument(db *gorm.DB, storage *services.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		file, err := c.FormFile("kyc_document")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "No file uploaded"})
			return
		}

		url, err := storage.SaveUpload(file, "kyc")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"kyc_document": url,
			"kyc_status":   models.KYCPending,
		}
		if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to save KYC document"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "KYC document uploaded successfully",
			"data":    gin.H{"document": url},
		})
	}
}

type ReportUserInput struct {
	ReportedID  uint   `json:"reported_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description" binding:"max=1000"`
}

// ReportUser files a report against another user for admin review.
func ReportUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input ReportUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.ReportedID == userID {
			c.JSON(400, gin.H{"success": false, "message": "You cannot report yourself"})
			return
		}

		var reported models.User
		if err := db.First(&reported, input.ReportedID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		report := models.Report{
			ReporterID:  userID,
			ReportedID:  input.ReportedID,
			Reason:      utils.SanitizeText(input.Reason),
			Description: utils.SanitizeText(input.Description),
			Status:      models.ReportStatusPending,
		}
		if err := db.Create(&report).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to submit report"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"message": "Report submitted",
			"data":    gin.H{"report": report},
		})
	}
}
