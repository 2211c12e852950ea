package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

func paginationParams(c *gin.Context) (page, limit, offset int) {
	page = 1
	limit = 20
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit, (page - 1) * limit
}

// GetStatistics returns the admin dashboard totals.
func GetStatistics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalUsers, totalHosts, totalTravelers int64
		var totalRequests, pendingKYC, pendingReports int64

		db.Model(&models.User{}).Count(&totalUsers)
		db.Model(&models.User{}).Where("role = ?", models.RoleHost).Count(&totalHosts)
		db.Model(&models.User{}).Where("role = ?", models.RoleTraveler).Count(&totalTravelers)
		db.Model(&models.StayRequest{}).Count(&totalRequests)
		db.Model(&models.User{}).
			Where("kyc_status = ? AND kyc_document <> ''", models.KYCPending).
			Count(&pendingKYC)
		db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending).Count(&pendingReports)

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"totalUsers":     totalUsers,
				"totalHosts":     totalHosts,
				"totalTravelers": totalTravelers,
				"totalRequests":  totalRequests,
				"pendingKYC":     pendingKYC,
				"pendingReports": pendingReports,
			},
		})
	}
}

// GetUsers lists users with role, status and search filters, paginated.
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := paginationParams(c)

		query := db.Model(&models.User{})
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		if status := c.Query("account_status"); status != "" {
			query = query.Where("account_status = ?", status)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}

		var users []models.User
		if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"users": users,
				"total": total,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

// BanUser sets account_status to banned. Admin accounts are off limits.
func BanUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("userId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if user.Role == models.RoleAdmin {
			c.JSON(403, gin.H{"success": false, "message": "Cannot ban admin users"})
			return
		}

		if err := db.Model(&user).Update("account_status", models.AccountBanned).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to ban user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "User banned"})
	}
}

// UnbanUser restores a user to active.
func UnbanUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("userId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := db.Model(&user).Update("account_status", models.AccountActive).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to unban user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "User unbanned"})
	}
}

// GetKYCRequests returns the queue of users awaiting KYC review. Users who
// never uploaded a document are not in the queue.
func GetKYCRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		err := db.Where("kyc_status = ? AND kyc_document <> ''", models.KYCPending).
			Order("created_at ASC").
			Find(&users).Error
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch KYC requests"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"requests": users}})
	}
}

func setKYCStatus(db *gorm.DB, status models.KYCStatus, successMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("userId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if user.KYCDocument == "" {
			c.JSON(400, gin.H{"success": false, "message": "User has not submitted a KYC document"})
			return
		}

		if err := db.Model(&user).Update("kyc_status", status).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update KYC status"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": successMsg})
	}
}

func ApproveKYC(db *gorm.DB) gin.HandlerFunc {
	return setKYCStatus(db, models.KYCApproved, "KYC approved")
}

func RejectKYC(db *gorm.DB) gin.HandlerFunc {
	return setKYCStatus(db, models.KYCRejected, "KYC rejected")
}

// GetReports lists user reports with both parties joined.
func GetReports(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Reporter").Preload("Reported")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var reports []models.Report
		if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch reports"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"reports": reports}})
	}
}

type UpdateReportInput struct {
	Status models.ReportStatus `json:"status" binding:"required,oneof=pending reviewed resolved"`
}

// UpdateReportStatus moves a report through pending/reviewed/resolved.
func UpdateReportStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var report models.Report
		if err := db.First(&report, c.Param("reportId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Report not found"})
			return
		}

		if err := db.Model(&report).Update("status", input.Status).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update report"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Report updated"})
	}
}

// GetActivityLogs returns the paginated audit trail.
func GetActivityLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := paginationParams(c)

		var total int64
		if err := db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch activity logs"})
			return
		}

		var logs []models.ActivityLog
		err := db.Preload("User").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&logs).Error
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch activity logs"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"logs":  logs,
				"total": total,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

type BroadcastInput struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

// SendBroadcast creates a notification for every active account in one batch
// insert, then pushes to whoever is connected.
func SendBroadcast(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BroadcastInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		title := utils.SanitizeText(input.Title)
		message := utils.SanitizeText(input.Message)
		notifType := utils.SanitizeText(input.Type)
		if title == "" || message == "" || notifType == "" {
			c.JSON(400, gin.H{"success": false, "message": "Title, message and type are required"})
			return
		}

		var userIDs []uint
		err := db.Model(&models.User{}).
			Where("account_status = ?", models.AccountActive).
			Pluck("id", &userIDs).Error
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch recipients"})
			return
		}

		notifications := make([]models.Notification, 0, len(userIDs))
		for _, id := range userIDs {
			notifications = append(notifications, models.Notification{
				UserID:  id,
				Title:   title,
				Message: message,
				Type:    notifType,
			})
		}

		if len(notifications) > 0 {
			if err := db.CreateInBatches(notifications, 200).Error; err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Failed to send broadcast"})
				return
			}
			for i := range notifications {
				services.PushNotification(hub, &notifications[i])
			}
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Broadcast sent",
			"data":    gin.H{"recipients": len(notifications)},
		})
	}
}
