package repository

import (
	"context"

	"github.com/adr1ancosmin/padel-pal/internal/notification/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id int64) (*models.Notification, error)
	FindAll(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error)
	FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error)
	FindByBookingID(ctx context.Context, bookingID int64) ([]models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) FindAll(ctx context.Context, status *models.NotificationStatus) ([]models.Notification, error) {
	var out []models.Notification
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error) {
	var out []models.Notification
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]models.Notification, error) {
	var out []models.Notification
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
