package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Host is the 1:1 listing profile of a user with role=host. Amenities,
// photos and availability are stored as JSON text, matching the schema of
// the persistence layer rather than a separate child table per value.
type Host struct {
	gorm.Model
	UserID       uint    `gorm:"column:user_id;unique;not null" json:"userId"`
	User         *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title        string  `gorm:"column:title" json:"title"`
	Description  string  `gorm:"column:description" json:"description"`
	Address      string  `gorm:"column:address" json:"address"`
	City         string  `gorm:"column:city" json:"city"`
	Country      string  `gorm:"column:country" json:"country"`
	Latitude     float64 `gorm:"column:latitude" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude" json:"longitude"`
	MaxGuests    int     `gorm:"column:max_guests;default:1" json:"maxGuests"`
	Amenities    string  `gorm:"column:amenities" json:"-"`
	HouseRules   string  `gorm:"column:house_rules" json:"houseRules"`
	Photos       string  `gorm:"column:photos" json:"-"`
	Availability string  `gorm:"column:availability" json:"availability"`
	ResponseRate float64 `gorm:"column:response_rate;default:0" json:"responseRate"`
}

func (Host) TableName() string {
	return "hosts"
}

func (h *Host) AmenityList() []string {
	return decodeStringList(h.Amenities)
}

func (h *Host) SetAmenities(amenities []string) {
	h.Amenities = encodeStringList(amenities)
}

func (h *Host) PhotoList() []string {
	return decodeStringList(h.Photos)
}

func (h *Host) SetPhotos(photos []string) {
	h.Photos = encodeStringList(photos)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

func encodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}
