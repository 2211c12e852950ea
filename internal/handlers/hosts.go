package handlers

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

const maxListingPhotos = 10

// hostResponse serializes a host profile with its JSON-blob columns decoded
// and owner identity joined in when loaded.
func hostResponse(h *models.Host) gin.H {
	resp := gin.H{
		"id":           h.ID,
		"userId":       h.UserID,
		"title":        h.Title,
		"description":  h.Description,
		"address":      h.Address,
		"city":         h.City,
		"country":      h.Country,
		"latitude":     h.Latitude,
		"longitude":    h.Longitude,
		"maxGuests":    h.MaxGuests,
		"amenities":    h.AmenityList(),
		"houseRules":   h.HouseRules,
		"photos":       h.PhotoList(),
		"availability": h.Availability,
		"responseRate": h.ResponseRate,
		"createdAt":    h.CreatedAt,
	}
	if h.User != nil {
		resp["name"] = h.User.Name
		resp["email"] = h.User.Email
		resp["avatar"] = h.User.Avatar
		resp["phone"] = h.User.Phone
	}
	return resp
}

// findHostProfile loads the caller's host profile, writing the error
// response itself when there is none.
func findHostProfile(c *gin.Context, db *gorm.DB) (*models.Host, bool) {
	userID := c.GetUint("userId")

	var host models.Host
	if err := db.Where("user_id = ?", userID).First(&host).Error; err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Host profile not found"})
		return nil, false
	}
	return &host, true
}

// GetHostProfile returns the caller's listing profile
func GetHostProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var host models.Host
		if err := db.Preload("User").Where("user_id = ?", userID).First(&host).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Host profile not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"host": hostResponse(&host)}})
	}
}

type CreateHostProfileInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Address     string   `json:"address"`
	City        string   `json:"city" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	MaxGuests   int      `json:"maxGuests" binding:"required,min=1"`
	Amenities   []string `json:"amenities"`
	HouseRules  string   `json:"houseRules"`
}

// CreateHostProfile creates the 1:1 listing profile for a host user
func CreateHostProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input CreateHostProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var existing models.Host
		if err := db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
			c.JSON(400, gin.H{"success": false, "message": "Host profile already exists"})
			return
		}

		host := models.Host{
			UserID:      userID,
			Title:       utils.SanitizeText(input.Title),
			Description: utils.SanitizeText(input.Description),
			Address:     utils.SanitizeText(input.Address),
			City:        utils.SanitizeText(input.City),
			Country:     utils.SanitizeText(input.Country),
			Latitude:    input.Latitude,
			Longitude:   input.Longitude,
			MaxGuests:   input.MaxGuests,
			HouseRules:  utils.SanitizeText(input.HouseRules),
		}
		host.SetAmenities(input.Amenities)
		host.SetPhotos(nil)

		if err := db.Create(&host).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create host profile"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"message": "Host profile created successfully",
			"data":    gin.H{"host": hostResponse(&host)},
		})
	}
}

// UpdateHostProfile applies partial updates to the caller's listing
func UpdateHostProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title        *string   `json:"title"`
			Description  *string   `json:"description"`
			Address      *string   `json:"address"`
			City         *string   `json:"city"`
			Country      *string   `json:"country"`
			Latitude     *float64  `json:"latitude"`
			Longitude    *float64  `json:"longitude"`
			MaxGuests    *int      `json:"maxGuests"`
			Amenities    *[]string `json:"amenities"`
			HouseRules   *string   `json:"houseRules"`
			Availability *string   `json:"availability"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		if input.Title != nil {
			host.Title = utils.SanitizeText(*input.Title)
		}
		if input.Description != nil {
			host.Description = utils.SanitizeText(*input.Description)
		}
		if input.Address != nil {
			host.Address = utils.SanitizeText(*input.Address)
		}
		if input.City != nil {
			host.City = utils.SanitizeText(*input.City)
		}
		if input.Country != nil {
			host.Country = utils.SanitizeText(*input.Country)
		}
		if input.Latitude != nil {
			host.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			host.Longitude = *input.Longitude
		}
		if input.MaxGuests != nil {
			if *input.MaxGuests < 1 {
				c.JSON(400, gin.H{"success": false, "message": "Max guests must be at least 1"})
				return
			}
			host.MaxGuests = *input.MaxGuests
		}
		if input.Amenities != nil {
			host.SetAmenities(*input.Amenities)
		}
		if input.HouseRules != nil {
			host.HouseRules = utils.SanitizeText(*input.HouseRules)
		}
		if input.Availability != nil {
			host.Availability = *input.Availability
		}

		if err := db.Save(host).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update host profile"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Host profile updated successfully",
			"data":    gin.H{"host": hostResponse(host)},
		})
	}
}

// UploadHostPhotos appends listing photos up to the per-listing ceiling
func UploadHostPhotos(db *gorm.DB, storage *services.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "No files uploaded"})
			return
		}
		files := form.File["photos"]
		if len(files) == 0 {
			c.JSON(400, gin.H{"success": false, "message": "No files uploaded"})
			return
		}

		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		photos := host.PhotoList()
		if len(photos)+len(files) > maxListingPhotos {
			c.JSON(400, gin.H{"success": false, "message": fmt.Sprintf("A listing can have at most %d photos", maxListingPhotos)})
			return
		}

		for _, file := range files {
			url, err := storage.SaveUpload(file, "properties")
			if err != nil {
				c.JSON(400, gin.H{"success": false, "message": err.Error()})
				return
			}
			photos = append(photos, url)
		}

		host.SetPhotos(photos)
		if err := db.Save(host).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to save photos"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Photos uploaded successfully",
			"data":    gin.H{"photos": photos},
		})
	}
}

// DeleteHostPhoto removes one photo from the listing and from storage
func DeleteHostPhoto(db *gorm.DB, storage *services.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			URL string `json:"url" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		photos := host.PhotoList()
		kept := photos[:0]
		found := false
		for _, p := range photos {
			if p == input.URL {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			c.JSON(404, gin.H{"success": false, "message": "Photo not found"})
			return
		}

		host.SetPhotos(kept)
		if err := db.Save(host).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to save photos"})
			return
		}

		if err := storage.Delete(input.URL); err != nil {
			// The listing no longer references the file; an orphan on disk
			// is not worth failing the request over.
			log.Printf("failed to delete photo %s: %v", input.URL, err)
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Photo deleted successfully",
			"data":    gin.H{"photos": kept},
		})
	}
}

// GetHostRequests lists incoming stay requests with optional status filter
func GetHostRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		query := db.Preload("Traveler").Where("host_id = ?", host.ID)
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

// GetHostBookings lists the host's active and finished stays
func GetHostBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		var requests []models.StayRequest
		if err := db.Preload("Traveler").
			Where("host_id = ? AND status IN ?", host.ID,
				[]models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusCompleted}).
			Order("check_in DESC").
			Find(&requests).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"bookings": requests}})
	}
}

// AcceptRequest transitions a pending request to accepted and notifies the
// traveler, both in one transaction.
func AcceptRequest(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		var request models.StayRequest
		if err := db.First(&request, c.Param("requestId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Request not found"})
			return
		}

		if request.HostID != host.ID {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		if request.Status != models.RequestStatusPending {
			c.JSON(400, gin.H{"success": false, "message": "Only pending requests can be accepted"})
			return
		}

		var notification *models.Notification
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Update("status", models.RequestStatusAccepted).Error; err != nil {
				return err
			}
			n, err := services.CreateNotification(tx, request.TravelerID,
				"Request Accepted",
				fmt.Sprintf("Your stay request for %q was accepted", host.Title),
				models.NotificationRequestAccepted)
			if err != nil {
				return err
			}
			notification = n
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to accept request"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(200, gin.H{"success": true, "message": "Request accepted"})
	}
}

// RejectRequest transitions a pending request to rejected
func RejectRequest(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		var request models.StayRequest
		if err := db.First(&request, c.Param("requestId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Request not found"})
			return
		}

		if request.HostID != host.ID {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		if request.Status != models.RequestStatusPending {
			c.JSON(400, gin.H{"success": false, "message": "Only pending requests can be rejected"})
			return
		}

		var notification *models.Notification
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Update("status", models.RequestStatusRejected).Error; err != nil {
				return err
			}
			n, err := services.CreateNotification(tx, request.TravelerID,
				"Request Rejected",
				fmt.Sprintf("Your stay request for %q was rejected", host.Title),
				models.NotificationRequestRejected)
			if err != nil {
				return err
			}
			notification = n
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to reject request"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(200, gin.H{"success": true, "message": "Request rejected"})
	}
}

// VerifyCheckout completes the checkout handshake. Verification is the
// final step of the stay, so the request moves to completed in the same
// transaction, which opens review eligibility for the traveler.
func VerifyCheckout(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, ok := findHostProfile(c, db)
		if !ok {
			return
		}

		var request models.StayRequest
		if err := db.First(&request, c.Param("requestId")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Request not found"})
			return
		}

		if request.HostID != host.ID {
			c.JSON(403, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		if !request.CheckoutRequested {
			c.JSON(400, gin.H{"success": false, "message": "Traveler has not requested checkout yet"})
			return
		}

		if request.CheckoutVerified {
			c.JSON(400, gin.H{"success": false, "message": "Checkout already verified"})
			return
		}

		var notification *models.Notification
		err := db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"checkout_verified": true,
				"status":            models.RequestStatusCompleted,
			}
			if err := tx.Model(&request).Updates(updates).Error; err != nil {
				return err
			}
			n, err := services.CreateNotification(tx, request.TravelerID,
				"Checkout Verified",
				"Host has verified your checkout. You can now submit a review!",
				models.NotificationCheckoutVerified)
			if err != nil {
				return err
			}
			notification = n
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to verify checkout"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(200, gin.H{"success": true, "message": "Checkout verified successfully"})
	}
}

// GetHostReviews lists reviews received by the host's user account
func GetHostReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var reviews []models.Review
		if err := db.Preload("Reviewer").
			Where("reviewee_id = ?", userID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch reviews"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"reviews": reviews}})
	}
}
