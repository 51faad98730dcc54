package events

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const TypeBookingCreated = "BOOKING_CREATED"

// LocalLayout is the zone-less ISO-8601 form used for human-facing booking times.
const LocalLayout = "2006-01-02T15:04:05"

var ErrMalformedEvent = errors.New("malformed booking event")

// Timestamp encodes as RFC3339 and also decodes the zone-less local form, which
// older publishers emit. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Time.Format(time.RFC3339Nano) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, LocalLayout + ".999999999", LocalLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}

// BookingEvent is the point-in-time projection of a booking published on creation.
type BookingEvent struct {
	BookingID      int64     `json:"bookingId"`
	UserID         int64     `json:"userId"`
	CourtID        int64     `json:"courtId"`
	BookingTime    Timestamp `json:"bookingTime"`
	EventType      string    `json:"eventType"`
	EventTimestamp Timestamp `json:"eventTimestamp"`
}

func NewBookingCreated(bookingID, userID, courtID int64, bookingTime, emittedAt time.Time) BookingEvent {
	return BookingEvent{
		BookingID:      bookingID,
		UserID:         userID,
		CourtID:        courtID,
		BookingTime:    NewTimestamp(bookingTime),
		EventType:      TypeBookingCreated,
		EventTimestamp: NewTimestamp(emittedAt),
	}
}

func Encode(ev BookingEvent) ([]byte, error) {
	b, err := sonic.ConfigStd.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal booking event: %w", err)
	}
	return b, nil
}

// Decode parses a booking event. Any decoding problem or a missing booking
// reference is reported as ErrMalformedEvent, which is never worth redelivering.
func Decode(b []byte) (BookingEvent, error) {
	var ev BookingEvent
	if err := sonic.ConfigStd.Unmarshal(b, &ev); err != nil {
		return BookingEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.BookingID == 0 || ev.UserID == 0 {
		return BookingEvent{}, fmt.Errorf("%w: missing booking or user id", ErrMalformedEvent)
	}
	return ev, nil
}
