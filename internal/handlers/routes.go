package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/travelnest/backend/internal/config"
	"github.com/travelnest/backend/internal/middleware"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"gorm.io/gorm"
)

// RegisterRoutes wires the full API surface onto the router. main and the
// handler tests build their routers through the same function.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, hub *services.Hub, storage *services.Storage, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.ActivityLogger(db))
	if rdb != nil {
		api.Use(middleware.RateLimiter(rdb, 300, time.Minute))
	}
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", Register(db, cfg))
			auth.POST("/login", Login(db, cfg))
			auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), GetMe(db))
			auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), Logout())
		}

		// WebSocket connection (token via query param)
		api.GET("/ws", middleware.AuthMiddleware(cfg.JWTSecret), WebSocketHandler(hub))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			user := protected.Group("/user")
			{
				user.GET("/profile", GetProfile(db))
				user.PUT("/profile", UpdateProfile(db))
				user.PUT("/password", UpdatePassword(db))
				user.POST("/avatar", UploadAvatar(db, storage))
				user.POST("/kyc", UploadKYCDocument(db, storage))
				user.POST("/report", ReportUser(db))
				user.GET("/notifications", GetNotifications(db))
				user.PUT("/notifications/:id/read", MarkNotificationRead(db))
				user.POST("/notifications/read-all", MarkAllNotificationsRead(db))
				user.GET("/notifications/unread-count", GetUnreadNotificationCount(db))
			}

			host := protected.Group("/host")
			host.Use(middleware.RequireRole(models.RoleHost))
			{
				host.GET("/profile", GetHostProfile(db))
				host.POST("/profile", CreateHostProfile(db))
				host.PUT("/profile", UpdateHostProfile(db))
				host.POST("/photos", UploadHostPhotos(db, storage))
				host.DELETE("/photos", DeleteHostPhoto(db, storage))
				host.GET("/requests", GetHostRequests(db))
				host.PUT("/requests/:requestId/accept", AcceptRequest(db, hub))
				host.PUT("/requests/:requestId/reject", RejectRequest(db, hub))
				host.PUT("/requests/:requestId/verify-checkout", VerifyCheckout(db, hub))
				host.GET("/bookings", GetHostBookings(db))
				host.GET("/conversations", GetConversations(db, rdb))
				host.GET("/reviews", GetHostReviews(db))
			}

			traveler := protected.Group("/traveler")
			traveler.Use(middleware.RequireRole(models.RoleTraveler))
			{
				traveler.GET("/search", SearchHosts(db))
				traveler.GET("/hosts/:hostId", GetHostDetails(db))
				traveler.POST("/requests", CreateRequest(db, hub))
				traveler.GET("/requests", GetTravelerRequests(db))
				traveler.PUT("/requests/:requestId/cancel", CancelRequest(db))
				traveler.PUT("/requests/:requestId/checkout", RequestCheckout(db, hub))
				traveler.POST("/reviews", CreateReview(db))
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/statistics", GetStatistics(db))
				admin.GET("/users", GetUsers(db))
				admin.PUT("/users/:userId/ban", BanUser(db))
				admin.PUT("/users/:userId/unban", UnbanUser(db))
				admin.GET("/kyc", GetKYCRequests(db))
				admin.PUT("/kyc/:userId/approve", ApproveKYC(db))
				admin.PUT("/kyc/:userId/reject", RejectKYC(db))
				admin.GET("/reports", GetReports(db))
				admin.PUT("/reports/:reportId", UpdateReportStatus(db))
				admin.GET("/activity-logs", GetActivityLogs(db))
				admin.POST("/broadcast", SendBroadcast(db, hub))
			}

			chat := protected.Group("/chat")
			{
				chat.POST("/send", SendMessage(db, hub))
				chat.GET("/conversations", GetConversations(db, rdb))
				chat.GET("/conversations/:userId", GetConversation(db))
				chat.PUT("/conversations/:userId/read", MarkConversationRead(db))
				chat.GET("/unread-count", GetUnreadMessageCount(db))
			}

			protected.GET("/review/:userId", GetUserReviews(db))
		}
	}
}
