package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain/catalog"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListAreas(ctx context.Context) ([]catalog.CareArea, error) {
	var areas []catalog.CareArea
	if err := conn(ctx, r.db).Order("id").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *CatalogRepository) GetAreaByName(ctx context.Context, name string) (*catalog.CareArea, error) {
	var area catalog.CareArea
	err := conn(ctx, r.db).Where("name = ?", name).First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrAreaNotFound
		}
		return nil, err
	}
	return &area, nil
}

func (r *CatalogRepository) ListReasons(ctx context.Context) ([]catalog.Reason, error) {
	var reasons []catalog.Reason
	if err := conn(ctx, r.db).Order("id").Find(&reasons).Error; err != nil {
		return nil, err
	}
	return reasons, nil
}

func (r *CatalogRepository) GetReasonByID(ctx context.Context, id uint) (*catalog.Reason, error) {
	var reason catalog.Reason
	err := conn(ctx, r.db).First(&reason, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrReasonNotFound
		}
		return nil, err
	}
	return &reason, nil
}

func (r *CatalogRepository) GetReasonByName(ctx context.Context, name string) (*catalog.Reason, error) {
	var reason catalog.Reason
	err := conn(ctx, r.db).Where("name = ?", name).First(&reason).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrReasonNotFound
		}
		return nil, err
	}
	return &reason, nil
}
