package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleHost     UserRole = "host"
	RoleTraveler UserRole = "traveler"
)

type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountBanned    AccountStatus = "banned"
	AccountSuspended AccountStatus = "suspended"
)

type User struct {
	gorm.Model
	Email         string        `gorm:"column:email;unique;not null" json:"email"`
	PasswordHash  string        `gorm:"column:password_hash;not null" json:"-"`
	Name          string        `gorm:"column:name;not null" json:"name"`
	Phone         string        `gorm:"column:phone" json:"phone"`
	Avatar        string        `gorm:"column:avatar" json:"avatar"`
	Role          UserRole      `gorm:"column:role;not null" json:"role"`
	KYCStatus     KYCStatus     `gorm:"column:kyc_status;default:pending" json:"kycStatus"`
	KYCDocument   string        `gorm:"column:kyc_document" json:"kycDocument"`
	AccountStatus AccountStatus `gorm:"column:account_status;default:active" json:"accountStatus"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
