package models

import "time"

// Booking references a user and a court by id only; the referenced rows live in
// other services and are validated before a booking is written.
type Booking struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"userId"`
	CourtID   int64     `gorm:"not null;index" json:"courtId"`
	Time      time.Time `gorm:"not null" json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}
