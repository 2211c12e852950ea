package middleware

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityLogger records every API call as an append-only audit row after
// the handler chain completes. Logging failures never fail the request.
func ActivityLogger(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" || strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Next()
			return
		}

		c.Next()

		var userID *uint
		if id := c.GetUint("userId"); id != 0 {
			userID = &id
		}

		details, _ := json.Marshal(gin.H{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"query":  c.Request.URL.RawQuery,
		})

		entry := models.ActivityLog{
			UserID:    userID,
			Action:    c.Request.Method + " " + c.Request.URL.Path,
			Details:   string(details),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Printf("activity log write failed: %v", err)
		}
	}
}
