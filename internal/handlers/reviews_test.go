package handlers_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnest/backend/internal/models"
)

func TestCreateReview(t *testing.T) {
	s := newTestServer(t)
	hostUser, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)
	request := s.createRequest(t, traveler, host, models.RequestStatusCompleted)

	w := s.do(t, "POST", "/api/traveler/reviews", s.token(t, traveler), map[string]interface{}{
		"request_id": request.ID,
		"rating":     5,
		"comment":    "Great stay",
	})
	requireStatus(t, w, 201)

	var review models.Review
	require.NoError(t, s.db.First(&review).Error)
	assert.Equal(t, traveler.ID, review.ReviewerID)
	assert.Equal(t, hostUser.ID, review.RevieweeID, "the reviewee is the host's user account")
	assert.Equal(t, 5, review.Rating)
}

func TestCreateReviewOnlyCompleted(t *testing.T) {
	s := newTestServer(t)
	_, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)
	token := s.token(t, traveler)

	for _, status := range []models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusAccepted,
		models.RequestStatusRejected,
		models.RequestStatusCancelled,
	} {
		request := s.createRequest(t, traveler, host, status)
		w := s.do(t, "POST", "/api/traveler/reviews", token, map[string]interface{}{
			"request_id": request.ID,
			"rating":     4,
		})
		requireStatus(t, w, 400)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	s := newTestServer(t)
	_, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)
	request := s.createRequest(t, traveler, host, models.RequestStatusCompleted)
	token := s.token(t, traveler)

	body := map[string]interface{}{"request_id": request.ID, "rating": 4}

	w := s.do(t, "POST", "/api/traveler/reviews", token, body)
	requireStatus(t, w, 201)

	w = s.do(t, "POST", "/api/traveler/reviews", token, body)
	requireStatus(t, w, 400)

	var count int64
	s.db.Model(&models.Review{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateReviewNotOwner(t *testing.T) {
	s := newTestServer(t)
	_, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)
	stranger := s.createUser(t, models.RoleTraveler)
	request := s.createRequest(t, traveler, host, models.RequestStatusCompleted)

	w := s.do(t, "POST", "/api/traveler/reviews", s.token(t, stranger), map[string]interface{}{
		"request_id": request.ID,
		"rating":     1,
	})
	requireStatus(t, w, 403)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	s := newTestServer(t)
	_, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)
	request := s.createRequest(t, traveler, host, models.RequestStatusCompleted)
	token := s.token(t, traveler)

	for _, rating := range []int{0, 6, -1} {
		w := s.do(t, "POST", "/api/traveler/reviews", token, map[string]interface{}{
			"request_id": request.ID,
			"rating":     rating,
		})
		requireStatus(t, w, 400)
	}
}

func TestGetUserReviews(t *testing.T) {
	s := newTestServer(t)
	hostUser, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)

	for _, rating := range []int{5, 3} {
		request := s.createRequest(t, traveler, host, models.RequestStatusCompleted)
		require.NoError(t, s.db.Create(&models.Review{
			ReviewerID: traveler.ID,
			RevieweeID: hostUser.ID,
			RequestID:  request.ID,
			Rating:     rating,
		}).Error)
	}

	w := s.do(t, "GET", fmt.Sprintf("/api/review/%d", hostUser.ID), s.token(t, traveler), nil)
	requireStatus(t, w, 200)

	reviews, ok := dataField(t, w, "reviews").([]interface{})
	require.True(t, ok)
	assert.Len(t, reviews, 2)
	assert.EqualValues(t, 4, dataField(t, w, "avg_rating"))
	assert.EqualValues(t, 2, dataField(t, w, "total_reviews"))
}

func TestGetUserReviewsUnknownUser(t *testing.T) {
	s := newTestServer(t)
	traveler := s.createUser(t, models.RoleTraveler)

	w := s.do(t, "GET", "/api/review/99999", s.token(t, traveler), nil)
	requireStatus(t, w, 404)
}
