package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("correct horse"))

	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("correct horse"))
	assert.Error(t, u.CheckPassword("wrong horse"))
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.Terminal())
	assert.False(t, RequestStatusAccepted.Terminal())
	assert.True(t, RequestStatusRejected.Terminal())
	assert.True(t, RequestStatusCancelled.Terminal())
	assert.True(t, RequestStatusCompleted.Terminal())
}

func TestReportStatusValues(t *testing.T) {
	assert.EqualValues(t, "pending", ReportStatusPending)
	assert.EqualValues(t, "reviewed", ReportStatusReviewed)
	assert.EqualValues(t, "resolved", ReportStatusResolved)
}

func TestHostAmenities(t *testing.T) {
	var h Host
	assert.Empty(t, h.AmenityList(), "unset column decodes to an empty list")

	h.SetAmenities([]string{"wifi", "parking"})
	assert.Equal(t, []string{"wifi", "parking"}, h.AmenityList())

	h.SetAmenities(nil)
	assert.Empty(t, h.AmenityList())
}

func TestHostPhotos(t *testing.T) {
	var h Host
	h.SetPhotos([]string{"/uploads/properties/a.jpg"})
	assert.Equal(t, []string{"/uploads/properties/a.jpg"}, h.PhotoList())
}
