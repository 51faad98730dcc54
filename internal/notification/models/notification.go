package models

import (
	"time"
	"unicode/utf8"
)

type NotificationStatus string

const (
	StatusSent    NotificationStatus = "SENT"
	StatusPending NotificationStatus = "PENDING"
	StatusFailed  NotificationStatus = "FAILED"
)

type NotificationType string

const TypeBookingConfirmation NotificationType = "BOOKING_CONFIRMATION"

const MaxMessageLength = 500

type Notification struct {
	ID               int64              `gorm:"primaryKey" json:"id"`
	UserID           int64              `gorm:"not null;index" json:"userId"`
	BookingID        int64              `gorm:"not null;index" json:"bookingId"`
	Message          string             `gorm:"type:varchar(500)" json:"message"`
	Status           NotificationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	NotificationType NotificationType   `gorm:"type:varchar(40);not null" json:"notificationType"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// NewNotification stamps the creation time and clips message to MaxMessageLength runes.
func NewNotification(userID, bookingID int64, message string, status NotificationStatus, typ NotificationType, now time.Time) *Notification {
	if utf8.RuneCountInString(message) > MaxMessageLength {
		message = string([]rune(message)[:MaxMessageLength])
	}
	return &Notification{
		UserID:           userID,
		BookingID:        bookingID,
		Message:          message,
		Status:           status,
		NotificationType: typ,
		CreatedAt:        now,
	}
}
