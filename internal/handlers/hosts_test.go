package handlers_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnest/backend/internal/models"
)

func TestCreateHostProfile(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleHost)
	token := s.token(t, user)

	w := s.do(t, "POST", "/api/host/profile", token, map[string]interface{}{
		"title":       "City Apartment",
		"description": "Two rooms near the center",
		"address":     "Main St 1",
		"city":        "Porto",
		"country":     "Portugal",
		"maxGuests":   3,
		"amenities":   []string{"wifi", "kitchen"},
	})
	requireStatus(t, w, 201)

	var host models.Host
	require.NoError(t, s.db.Where("user_id = ?", user.ID).First(&host).Error)
	assert.Equal(t, "City Apartment", host.Title)
	assert.ElementsMatch(t, []string{"wifi", "kitchen"}, host.AmenityList())

	// one listing per host user
	w = s.do(t, "POST", "/api/host/profile", token, map[string]interface{}{
		"title":       "Second Listing",
		"description": "Another place",
		"city":        "Porto",
		"country":     "Portugal",
		"maxGuests":   2,
	})
	requireStatus(t, w, 400)
}

func TestGetHostProfileMissing(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleHost)

	w := s.do(t, "GET", "/api/host/profile", s.token(t, user), nil)
	requireStatus(t, w, 404)
}

func TestUpdateHostProfile(t *testing.T) {
	s := newTestServer(t)
	user, host := s.createHostWithListing(t)
	token := s.token(t, user)

	w := s.do(t, "PUT", "/api/host/profile", token, map[string]interface{}{
		"title":     "Renovated Loft",
		"maxGuests": 6,
	})
	requireStatus(t, w, 200)

	require.NoError(t, s.db.First(host, host.ID).Error)
	assert.Equal(t, "Renovated Loft", host.Title)
	assert.Equal(t, 6, host.MaxGuests)
	assert.Equal(t, "Lisbon", host.City, "fields not in the payload stay as they were")

	w = s.do(t, "PUT", "/api/host/profile", token, map[string]interface{}{"maxGuests": 0})
	requireStatus(t, w, 400)
}

func TestSearchHosts(t *testing.T) {
	s := newTestServer(t)
	_, lisbon := s.createHostWithListing(t)

	berlinUser := s.createUser(t, models.RoleHost)
	require.NoError(t, s.db.Create(&models.Host{
		UserID: berlinUser.ID, Title: "Berlin Flat", City: "Berlin", Country: "Germany", MaxGuests: 2,
	}).Error)

	bannedUser := s.createUser(t, models.RoleHost)
	require.NoError(t, s.db.Create(&models.Host{
		UserID: bannedUser.ID, Title: "Hidden Flat", City: "Berlin", Country: "Germany", MaxGuests: 2,
	}).Error)
	require.NoError(t, s.db.Model(bannedUser).Update("account_status", models.AccountBanned).Error)

	traveler := s.createUser(t, models.RoleTraveler)
	token := s.token(t, traveler)

	w := s.do(t, "GET", "/api/traveler/search", token, nil)
	requireStatus(t, w, 200)
	hosts, ok := dataField(t, w, "hosts").([]interface{})
	require.True(t, ok)
	assert.Len(t, hosts, 2, "banned hosts are not listed")

	w = s.do(t, "GET", "/api/traveler/search?city=Lisbon", token, nil)
	requireStatus(t, w, 200)
	hosts = dataField(t, w, "hosts").([]interface{})
	require.Len(t, hosts, 1)
	assert.EqualValues(t, lisbon.ID, hosts[0].(map[string]interface{})["id"])

	w = s.do(t, "GET", "/api/traveler/search?max_guests=3", token, nil)
	requireStatus(t, w, 200)
	hosts = dataField(t, w, "hosts").([]interface{})
	assert.Len(t, hosts, 1)

	w = s.do(t, "GET", "/api/traveler/search?max_guests=abc", token, nil)
	requireStatus(t, w, 400)
}

func TestSearchHostsIncludesRatings(t *testing.T) {
	s := newTestServer(t)
	hostUser, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)

	request := s.createRequest(t, traveler, host, models.RequestStatusCompleted)
	require.NoError(t, s.db.Create(&models.Review{
		ReviewerID: traveler.ID, RevieweeID: hostUser.ID, RequestID: request.ID, Rating: 4,
	}).Error)

	w := s.do(t, "GET", "/api/traveler/search", s.token(t, traveler), nil)
	requireStatus(t, w, 200)

	hosts := dataField(t, w, "hosts").([]interface{})
	require.Len(t, hosts, 1)
	entry := hosts[0].(map[string]interface{})
	assert.EqualValues(t, 4, entry["avgRating"])
	assert.EqualValues(t, 1, entry["reviewCount"])
}

func TestGetHostDetails(t *testing.T) {
	s := newTestServer(t)
	_, host := s.createHostWithListing(t)
	traveler := s.createUser(t, models.RoleTraveler)

	w := s.do(t, "GET", fmt.Sprintf("/api/traveler/hosts/%d", host.ID), s.token(t, traveler), nil)
	requireStatus(t, w, 200)
	assert.Contains(t, w.Body.String(), host.Title)

	w = s.do(t, "GET", "/api/traveler/hosts/99999", s.token(t, traveler), nil)
	requireStatus(t, w, 404)
}
