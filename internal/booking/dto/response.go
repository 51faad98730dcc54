package dto

import (
	"time"

	"github.com/adr1ancosmin/padel-pal/internal/booking/models"
)

type BookingResponse struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"userId"`
	CourtID int64     `json:"courtId"`
	Time    time.Time `json:"time"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:      b.ID,
		UserID:  b.UserID,
		CourtID: b.CourtID,
		Time:    b.Time,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
