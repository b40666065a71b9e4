package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"authapi/internal/model"
	"authapi/internal/pagination"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, query *pagination.Query) ([]model.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns the requested page window plus the total row count so the
// handler can derive pagination metadata.
func (r *userRepository) List(ctx context.Context, query *pagination.Query) ([]model.User, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at asc"
	if query.Order == pagination.OrderDesc {
		order = "created_at desc"
	}

	var users []model.User
	if err := r.db.WithContext(ctx).
		Order(order).
		Offset(query.Skip()).
		Limit(query.Take).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}
