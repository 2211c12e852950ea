package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

const checkInDateLayout = "2006-01-02"

// ratingSummary carries the aggregate review data attached to host search
// results and detail pages.
type ratingSummary struct {
	RevieweeID uint
	AvgRating  float64
	Total      int64
}

func ratingsByUser(db *gorm.DB, userIDs []uint) (map[uint]ratingSummary, error) {
	summaries := make(map[uint]ratingSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	var rows []ratingSummary
	err := db.Model(&models.Review{}).
		Select("reviewee_id, AVG(rating) as avg_rating, COUNT(*) as total").
		Where("reviewee_id IN ?", userIDs).
		Group("reviewee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		summaries[row.RevieweeID] = row
	}
	return summaries, nil
}

// SearchHosts lists active host listings matching optional city, country
// and guest-count filters, with aggregate ratings joined in.
func SearchHosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Host{}).Preload("User").
			Joins("JOIN users ON users.id = hosts.user_id AND users.deleted_at IS NULL").
			Where("users.account_status = ?", models.AccountActive)

		if city := c.Query("city"); city != "" {
			query = query.Where("hosts.city LIKE ?", "%"+city+"%")
		}
		if country := c.Query("country"); country != "" {
			query = query.Where("hosts.country LIKE ?", "%"+country+"%")
		}
		if maxGuests := c.Query("max_guests"); maxGuests != "" {
			n, err := strconv.Atoi(maxGuests)
			if err != nil || n < 1 {
				c.JSON(400, gin.H{"success": false, "message": "Invalid max_guests"})
				return
			}
			query = query.Where("hosts.max_guests >= ?", n)
		}

		var hosts []models.Host
		if err := query.Order("hosts.created_at DESC").Find(&hosts).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to search hosts"})
			return
		}

		userIDs := make([]uint, 0, len(hosts))
		for _, h := range hosts {
			userIDs = append(userIDs, h.UserID)
		}
		ratings, err := ratingsByUser(db, userIDs)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load ratings"})
			return
		}

		results := make([]gin.H, 0, len(hosts))
		for i := range hosts {
			resp := hostResponse(&hosts[i])
			summary := ratings[hosts[i].UserID]
			resp["avgRating"] = summary.AvgRating
			resp["reviewCount"] = summary.Total
			results = append(results, resp)
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"hosts": results}})
	}
}

// GetHostDetails returns one listing with its reviews and rating aggregate
func GetHostDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var host models.Host
		if err := db.Preload("User").First(&host, c.Param("hostId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Host not found"})
			return
		}

		var reviews []models.Review
		if err := db.Preload("Reviewer").
			Where("reviewee_id = ?", host.UserID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch reviews"})
			return
		}

		ratings, err := ratingsByUser(db, []uint{host.UserID})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load ratings"})
			return
		}
		summary := ratings[host.UserID]

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"host":          hostResponse(&host),
				"reviews":       reviews,
				"avg_rating":    summary.AvgRating,
				"total_reviews": summary.Total,
			},
		})
	}
}

type CreateRequestInput struct {
	HostID   uint   `json:"host_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests" binding:"required,min=1"`
	Message  string `json:"message" binding:"max=500"`
}

// CreateRequest opens a stay request in status pending and notifies the
// host's user, both in one transaction.
func CreateRequest(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input CreateRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		checkIn, err := time.Parse(checkInDateLayout, input.CheckIn)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid check-in date"})
			return
		}
		checkOut, err := time.Parse(checkInDateLayout, input.CheckOut)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid check-out date"})
			return
		}

		if !checkOut.After(checkIn) {
			c.JSON(400, gin.H{"success": false, "message": "Check-out must be after check-in"})
			return
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if checkIn.Before(today) {
			c.JSON(400, gin.H{"success": false, "message": "Check-in cannot be in the past"})
			return
		}

		var host models.Host
		if err := db.First(&host, input.HostID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Host not found"})
			return
		}

		request := models.StayRequest{
			TravelerID: userID,
			HostID:     host.ID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     input.Guests,
			Message:    utils.SanitizeText(input.Message),
			Status:     models.RequestStatusPending,
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&request).Error; err != nil {
				return err
			}
			n, err := services.CreateNotification(tx, host.UserID,
				"New Stay Request",
				fmt.Sprintf("You have a new stay request for %s to %s", input.CheckIn, input.CheckOut),
				models.NotificationNewRequest)
			if err != nil {
				return err
			}
			notification = n
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create request"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(201, gin.H{
			"success": true,
			"message": "Request sent successfully",
			"data":    gin.H{"request": request},
		})
	}
}

// GetTravelerRequests lists the caller's stay requests with optional status
// filter.
func GetTravelerRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		query := db.Preload("Host").Preload("Host.User").Where("traveler_id = ?", userID)
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var requests []models.StayRequest
		if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch requests"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"requests": requests}})
	}
}

// CancelRequest cancels the caller's own request. Terminal requests stay
// as they are; cancelling a finished or already-decided stay is a conflict.
func CancelRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var request models.StayRequest
		if err := db.First(&request, c.Param("requestId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Request not found"})
			return
		}

		if request.TravelerID != userID {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		if request.Status.Terminal() {
			c.JSON(400, gin.H{"success": false, "message": "Request can no longer be cancelled"})
			return
		}

		if err := db.Model(&request).Update("status", models.RequestStatusCancelled).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to cancel request"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Request cancelled"})
	}
}

// RequestCheckout starts the checkout handshake on an accepted stay
func RequestCheckout(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var request models.StayRequest
		if err := db.First(&request, c.Param("requestId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Request not found"})
			return
		}

		if request.TravelerID != userID {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		if request.Status != models.RequestStatusAccepted {
			c.JSON(400, gin.H{"success": false, "message": "Only accepted bookings can request checkout"})
			return
		}

		if request.CheckoutRequested {
			c.JSON(400, gin.H{"success": false, "message": "Checkout already requested"})
			return
		}

		var host models.Host
		if err := db.First(&host, request.HostID).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load host"})
			return
		}

		var notification *models.Notification
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Update("checkout_requested", true).Error; err != nil {
				return err
			}
			n, err := services.CreateNotification(tx, host.UserID,
				"Checkout Request",
				"Traveler requested checkout verification",
				models.NotificationCheckoutRequest)
			if err != nil {
				return err
			}
			notification = n
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to request checkout"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(200, gin.H{"success": true, "message": "Checkout request sent to host"})
	}
}

type CreateReviewInput struct {
	RequestID uint   `json:"request_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=1000"`
}

// CreateReview records a review for a completed stay, addressed to the
// host's underlying user. At most one per (request, reviewer).
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var request models.StayRequest
		if err := db.First(&request, input.RequestID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Request not found"})
			return
		}

		if request.TravelerID != userID {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		if request.Status != models.RequestStatusCompleted {
			c.JSON(400, gin.H{"success": false, "message": "Can only review completed stays"})
			return
		}

		var existing models.Review
		if err := db.Where("request_id = ? AND reviewer_id = ?", request.ID, userID).
			First(&existing).Error; err == nil {
			c.JSON(400, gin.H{"success": false, "message": "Review already submitted"})
			return
		}

		var host models.Host
		if err := db.First(&host, request.HostID).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load host"})
			return
		}

		review := models.Review{
			ReviewerID: userID,
			RevieweeID: host.UserID,
			RequestID:  request.ID,
			Rating:     input.Rating,
			Comment:    utils.SanitizeText(input.Comment),
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create review"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"message": "Review submitted successfully",
			"data":    gin.H{"review": review},
		})
	}
}
