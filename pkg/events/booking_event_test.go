package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WireFields(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	ev := NewBookingCreated(42, 7, 3, at, at.Add(time.Second))

	b, err := Encode(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, float64(42), raw["bookingId"])
	assert.Equal(t, float64(7), raw["userId"])
	assert.Equal(t, float64(3), raw["courtId"])
	assert.Equal(t, "2025-01-01T10:00:00Z", raw["bookingTime"])
	assert.Equal(t, "BOOKING_CREATED", raw["eventType"])
	assert.Equal(t, "2025-01-01T10:00:01Z", raw["eventTimestamp"])
}

func TestDecode_ZonelessTimestamps(t *testing.T) {
	body := []byte(`{"bookingId":42,"userId":7,"courtId":3,"bookingTime":"2025-01-01T10:00:00",` +
		`"eventType":"BOOKING_CREATED","eventTimestamp":"2025-01-01T10:00:00.123456"}`)

	ev, err := Decode(body)

	require.NoError(t, err)
	assert.Equal(t, int64(42), ev.BookingID)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), ev.BookingTime.Time)
	assert.Equal(t, 123456000, ev.EventTimestamp.Nanosecond())
	assert.Equal(t, TypeBookingCreated, ev.EventType)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"bookingId":`,
		"missing booking": `{"userId":7,"courtId":3}`,
		"bad time":        `{"bookingId":1,"userId":7,"bookingTime":"yesterday"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}
