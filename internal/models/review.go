package models

import "gorm.io/gorm"

// Review is written by a traveler for the host's underlying user after a
// stay completes. One review per (request, reviewer) pair, enforced by an
// existence check at creation time.
type Review struct {
	gorm.Model
	ReviewerID uint   `gorm:"column:reviewer_id;not null;index" json:"reviewerId"`
	Reviewer   *User  `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"reviewer,omitempty"`
	RevieweeID uint   `gorm:"column:reviewee_id;not null;index" json:"revieweeId"`
	RequestID  uint   `gorm:"column:request_id;not null" json:"requestId"`
	Rating     int    `gorm:"column:rating;not null" json:"rating"`
	Comment    string `gorm:"column:comment" json:"comment"`
}

func (Review) TableName() string {
	return "reviews"
}
