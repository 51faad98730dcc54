package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/adr1ancosmin/padel-pal/internal/notification/models"
	"github.com/adr1ancosmin/padel-pal/internal/notification/repository"
	"github.com/adr1ancosmin/padel-pal/pkg/events"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	// HandleBookingEvent records one confirmation per call. Repeated calls for the
	// same event record repeated notifications.
	HandleBookingEvent(ctx context.Context, ev events.BookingEvent) (*models.Notification, error)
	GetNotification(ctx context.Context, id int64) (*models.Notification, error)
	ListNotifications(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]models.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func ConfirmationMessage(ev events.BookingEvent) string {
	return fmt.Sprintf(
		"Booking Confirmed! Your booking #%d for Court %d has been confirmed. Scheduled time: %s. Enjoy your padel game!",
		ev.BookingID,
		ev.CourtID,
		ev.BookingTime.Format(events.LocalLayout),
	)
}

func (s *notificationService) HandleBookingEvent(ctx context.Context, ev events.BookingEvent) (*models.Notification, error) {
	n := models.NewNotification(
		ev.UserID,
		ev.BookingID,
		ConfirmationMessage(ev),
		models.StatusSent,
		models.TypeBookingConfirmation,
		s.now(),
	)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("save notification for booking %d: %w", ev.BookingID, err)
	}

	log.WithFields(log.Fields{
		"notification_id": n.ID,
		"booking_id":      ev.BookingID,
		"user_id":         ev.UserID,
	}).Info("notification created")
	return n, nil
}

func (s *notificationService) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error) {
	return s.repo.FindAll(ctx, status)
}

func (s *notificationService) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *notificationService) ListByBooking(ctx context.Context, bookingID int64) ([]models.Notification, error) {
	return s.repo.FindByBookingID(ctx, bookingID)
}
