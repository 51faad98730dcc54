package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"fullName"`
	Email     string    `gorm:"not null" json:"email"`
	CreatedAt time.Time `json:"-"`
}
