package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adr1ancosmin/padel-pal/internal/notification/models"
	"github.com/adr1ancosmin/padel-pal/pkg/events"
)

// --- Mock NotificationRepository ---

type mockNotificationRepo struct {
	createFn   func(ctx context.Context, n *models.Notification) error
	findByIDFn func(ctx context.Context, id int64) (*models.Notification, error)
	findAllFn  func(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error)
	saved      []*models.Notification
	nextID     int64
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, n); err != nil {
			return err
		}
	}
	m.nextID++
	n.ID = m.nextID
	m.saved = append(m.saved, n)
	return nil
}
func (m *mockNotificationRepo) FindByID(ctx context.Context, id int64) (*models.Notification, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockNotificationRepo) FindAll(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error) {
	return m.findAllFn(ctx, status)
}
func (m *mockNotificationRepo) FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.saved {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}
func (m *mockNotificationRepo) FindByBookingID(ctx context.Context, bookingID int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.saved {
		if n.BookingID == bookingID {
			out = append(out, *n)
		}
	}
	return out, nil
}

var fixedNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo *mockNotificationRepo) *notificationService {
	return &notificationService{repo: repo, now: func() time.Time { return fixedNow }}
}

func sampleEvent() events.BookingEvent {
	return events.NewBookingCreated(42, 7, 3,
		time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), fixedNow)
}

func TestConfirmationMessage(t *testing.T) {
	msg := ConfirmationMessage(sampleEvent())
	assert.Equal(t,
		"Booking Confirmed! Your booking #42 for Court 3 has been confirmed. Scheduled time: 2025-01-01T10:00:00. Enjoy your padel game!",
		msg)
}

func TestHandleBookingEvent_RecordsConfirmation(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newTestService(repo)

	n, err := svc.HandleBookingEvent(context.Background(), sampleEvent())
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	assert.Equal(t, int64(1), n.ID)
	assert.Equal(t, int64(7), n.UserID)
	assert.Equal(t, int64(42), n.BookingID)
	assert.Equal(t, models.StatusSent, n.Status)
	assert.Equal(t, models.TypeBookingConfirmation, n.NotificationType)
	assert.Equal(t, fixedNow, n.CreatedAt)
	assert.Contains(t, n.Message, "#42")
	assert.Contains(t, n.Message, "Court 3")
}

func TestHandleBookingEvent_SameEventTwiceRecordsTwo(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newTestService(repo)
	ev := sampleEvent()

	_, err := svc.HandleBookingEvent(context.Background(), ev)
	require.NoError(t, err)
	_, err = svc.HandleBookingEvent(context.Background(), ev)
	require.NoError(t, err)

	byBooking, err := svc.ListByBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, byBooking, 2)
}

func TestHandleBookingEvent_StoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &mockNotificationRepo{
		createFn: func(ctx context.Context, n *models.Notification) error { return storeErr },
	}
	svc := newTestService(repo)

	n, err := svc.HandleBookingEvent(context.Background(), sampleEvent())
	assert.Nil(t, n)
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, repo.saved)
}

func TestGetNotification(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockNotificationRepo{
			findByIDFn: func(ctx context.Context, id int64) (*models.Notification, error) {
				return &models.Notification{ID: id, Status: models.StatusSent}, nil
			},
		}
		n, err := newTestService(repo).GetNotification(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), n.ID)
	})

	t.Run("missing", func(t *testing.T) {
		repo := &mockNotificationRepo{
			findByIDFn: func(ctx context.Context, id int64) (*models.Notification, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		_, err := newTestService(repo).GetNotification(context.Background(), 5)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}

func TestListNotifications_PassesStatusFilter(t *testing.T) {
	var got *models.NotificationStatus
	repo := &mockNotificationRepo{
		findAllFn: func(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error) {
			got = status
			return []models.Notification{{ID: 1, Status: models.StatusFailed}}, nil
		},
	}
	failed := models.StatusFailed

	out, err := newTestService(repo).ListNotifications(context.Background(), &failed)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusFailed, *got)
	assert.Len(t, out, 1)
}
