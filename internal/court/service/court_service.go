package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adr1ancosmin/padel-pal/internal/court/models"
	"github.com/adr1ancosmin/padel-pal/internal/court/repository"
)

var ErrCourtNotFound = errors.New("court not found")

type CourtService interface {
	CreateCourt(ctx context.Context, court *models.Court) error
	GetCourt(ctx context.Context, id int64) (*models.Court, error)
	ListCourts(ctx context.Context) ([]models.Court, error)
}

type courtService struct {
	repo repository.CourtRepository
}

func NewCourtService(repo repository.CourtRepository) CourtService {
	return &courtService{repo: repo}
}

func (s *courtService) CreateCourt(ctx context.Context, court *models.Court) error {
	if err := s.repo.Create(ctx, court); err != nil {
		return fmt.Errorf("create court: %w", err)
	}
	return nil
}

func (s *courtService) GetCourt(ctx context.Context, id int64) (*models.Court, error) {
	court, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find court %d: %w", id, err)
	}
	return court, nil
}

func (s *courtService) ListCourts(ctx context.Context) ([]models.Court, error) {
	return s.repo.FindAll(ctx)
}
