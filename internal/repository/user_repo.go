package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/service"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := conn(ctx, r.db).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrPhoneTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).Preload("Role").Where("name = ?", name).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).Preload("Role").First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	if err := conn(ctx, r.db).Omit("Role").Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrPhoneTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]service.UserListing, error) {
	var rows []service.UserListing
	err := conn(ctx, r.db).
		Table("users AS u").
		Select("u.id, u.name, u.phone, r.name AS role_name").
		Joins("JOIN roles r ON r.id = u.role_id").
		Order("u.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
