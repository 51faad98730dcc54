package models

import "time"

type Court struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ClubName  string    `gorm:"not null" json:"clubName"`
	CourtName string    `gorm:"not null" json:"courtName"`
	Indoor    bool      `gorm:"not null;default:false" json:"indoor"`
	CreatedAt time.Time `json:"-"`
}
