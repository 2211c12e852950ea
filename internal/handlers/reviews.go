package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"gorm.io/gorm"
)

// GetUserReviews returns reviews received by any user plus the rating
// aggregate, for public profile pages.
func GetUserReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid user id"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		var reviews []models.Review
		if err := db.Preload("Reviewer").
			Where("reviewee_id = ?", userID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch reviews"})
			return
		}

		ratings, err := ratingsByUser(db, []uint{uint(userID)})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load ratings"})
			return
		}
		summary := ratings[uint(userID)]

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"reviews":       reviews,
				"avg_rating":    summary.AvgRating,
				"total_reviews": summary.Total,
			},
		})
	}
}
