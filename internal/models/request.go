package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusCompleted RequestStatus = "completed"
)

// Terminal reports whether no further status transition is possible.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestStatusRejected, RequestStatusCancelled, RequestStatusCompleted:
		return true
	}
	return false
}

// StayRequest is the central booking workflow entity. The checkout flags
// form a two-step handshake: the traveler sets CheckoutRequested while the
// stay is accepted, then the host sets CheckoutVerified, which moves the
// request to completed.
type StayRequest struct {
	gorm.Model
	TravelerID        uint          `gorm:"column:traveler_id;not null;index" json:"travelerId"`
	Traveler          *User         `gorm:"foreignKey:TravelerID;constraint:OnDelete:CASCADE" json:"traveler,omitempty"`
	HostID            uint          `gorm:"column:host_id;not null;index" json:"hostId"`
	Host              *Host         `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" json:"host,omitempty"`
	CheckIn           time.Time     `gorm:"column:check_in;not null" json:"checkIn"`
	CheckOut          time.Time     `gorm:"column:check_out;not null" json:"checkOut"`
	Guests            int           `gorm:"column:guests;not null" json:"guests"`
	Message           string        `gorm:"column:message" json:"message"`
	Status            RequestStatus `gorm:"column:status;default:pending;index" json:"status"`
	CheckoutRequested bool          `gorm:"column:checkout_requested;default:false" json:"checkoutRequested"`
	CheckoutVerified  bool          `gorm:"column:checkout_verified;default:false" json:"checkoutVerified"`
}

func (StayRequest) TableName() string {
	return "requests"
}
