package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/config"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=host traveler"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(400, gin.H{"success": false, "message": "Email already registered"})
			return
		}

		user := models.User{
			Email:         input.Email,
			Name:          utils.SanitizeText(input.Name),
			Phone:         input.Phone,
			Role:          models.UserRole(input.Role),
			KYCStatus:     models.KYCPending,
			AccountStatus: models.AccountActive,
		}
		if err := user.SetPassword(input.Password); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create user"})
			return
		}

		token, err := utils.GenerateToken(&user, cfg.JWTSecret, cfg.JWTExpiry)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data":    gin.H{"user": user, "token": token},
		})
	}
}

func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}

		// Banned and suspended accounts cannot authenticate, regardless of
		// role or KYC status.
		if user.AccountStatus != models.AccountActive {
			c.JSON(403, gin.H{"success": false, "message": "Account is not active"})
			return
		}

		token, err := utils.GenerateToken(&user, cfg.JWTSecret, cfg.JWTExpiry)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Login successful",
			"data":    gin.H{"user": user, "token": token},
		})
	}
}

func GetMe(db *gorm.DB) gin.HandlerFunc {
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

// Logout is a stateless acknowledgment; the client discards its token.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "message": "Logout successful"})
	}
}
