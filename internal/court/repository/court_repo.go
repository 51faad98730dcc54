package repository

import (
	"context"

	"github.com/adr1ancosmin/padel-pal/internal/court/models"
	"gorm.io/gorm"
)

type CourtRepository interface {
	Create(ctx context.Context, court *models.Court) error
	FindByID(ctx context.Context, id int64) (*models.Court, error)
	FindAll(ctx context.Context) ([]models.Court, error)
}

type courtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) Create(ctx context.Context, court *models.Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *courtRepository) FindByID(ctx context.Context, id int64) (*models.Court, error) {
	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) FindAll(ctx context.Context) ([]models.Court, error) {
	var courts []models.Court
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}
