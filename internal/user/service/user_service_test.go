package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/adr1ancosmin/padel-pal/internal/user/models"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn   func(ctx context.Context, user *models.User) error
	findByIDFn func(ctx context.Context, id int64) (*models.User, error)
	findAllFn  func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.findAllFn(ctx)
}

// --- Tests ---

func TestCreateUser_Success(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			return nil
		},
	}

	user := &models.User{FullName: "Ana Pop", Email: "ana@example.com"}
	err := NewUserService(repo).CreateUser(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestCreateUser_RepoError(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			return errors.New("db error")
		},
	}

	err := NewUserService(repo).CreateUser(context.Background(), &models.User{FullName: "x", Email: "y"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create user")
}

func TestGetUser(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			switch id {
			case 1:
				return &models.User{ID: 1, FullName: "Ana Pop"}, nil
			case 2:
				return nil, gorm.ErrRecordNotFound
			default:
				return nil, errors.New("connection refused")
			}
		},
	}
	svc := NewUserService(repo)

	user, err := svc.GetUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Ana Pop", user.FullName)

	_, err = svc.GetUser(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetUser(context.Background(), 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	repo := &mockUserRepo{
		findAllFn: func(ctx context.Context) ([]models.User, error) {
			return []models.User{{ID: 1}, {ID: 2}}, nil
		},
	}

	users, err := NewUserService(repo).ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
}
