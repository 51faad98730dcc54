package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/adr1ancosmin/padel-pal/internal/booking/client"
	"github.com/adr1ancosmin/padel-pal/internal/booking/models"
	"github.com/adr1ancosmin/padel-pal/internal/booking/publisher"
	"github.com/adr1ancosmin/padel-pal/internal/booking/repository"
	"github.com/adr1ancosmin/padel-pal/pkg/events"
)

var (
	ErrUserNotFound    = errors.New("user does not exist")
	ErrCourtNotFound   = errors.New("court does not exist")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPersistence     = errors.New("booking store unavailable")
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID, courtID int64) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	checker     client.ExistenceChecker
	publisher   publisher.EventPublisher
	now         func() time.Time
}

// NewBookingService wires the orchestrator. A nil publisher skips event publishing.
func NewBookingService(bookingRepo repository.BookingRepository, checker client.ExistenceChecker, pub publisher.EventPublisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		checker:     checker,
		publisher:   pub,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, courtID int64) (*models.Booking, error) {
	// 1. User must exist; the court is not looked up otherwise
	if !s.checker.Exists(ctx, client.KindUser, userID) {
		return nil, ErrUserNotFound
	}

	// 2. Court must exist
	if !s.checker.Exists(ctx, client.KindCourt, courtID) {
		return nil, ErrCourtNotFound
	}

	// 3. Persist
	booking := &models.Booking{
		UserID:  userID,
		CourtID: courtID,
		Time:    s.now(),
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 4-5. Publish; a lost event never undoes the booking
	if s.publisher != nil {
		event := events.NewBookingCreated(booking.ID, booking.UserID, booking.CourtID, booking.Time, s.now())
		s.publisher.PublishBookingCreated(ctx, event)
	}

	log.WithFields(log.Fields{
		"booking_id": booking.ID,
		"user_id":    userID,
		"court_id":   courtID,
	}).Info("booking created")
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx)
}

func (s *bookingService) ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	deleted, err := s.bookingRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookingNotFound
	}
	return nil
}
