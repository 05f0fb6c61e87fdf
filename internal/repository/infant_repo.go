package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain/infant"
)

type InfantRepository struct {
	db *gorm.DB
}

func NewInfantRepository(db *gorm.DB) *InfantRepository {
	return &InfantRepository{db: db}
}

func (r *InfantRepository) Create(ctx context.Context, i *infant.Infant) error {
	return conn(ctx, r.db).Create(i).Error
}

func (r *InfantRepository) GetByID(ctx context.Context, id uint) (*infant.Infant, error) {
	var i infant.Infant
	err := conn(ctx, r.db).Preload("Mother").Preload("Area").First(&i, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infant.ErrInfantNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *InfantRepository) Update(ctx context.Context, i *infant.Infant) error {
	return conn(ctx, r.db).Omit("Mother", "Area").Save(i).Error
}

func (r *InfantRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&infant.Infant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return infant.ErrInfantNotFound
	}
	return nil
}

func (r *InfantRepository) List(ctx context.Context) ([]infant.Listing, error) {
	var rows []infant.Listing
	err := conn(ctx, r.db).
		Table("infants AS l").
		Select(`l.id,
			l.paternal_surname,
			l.maternal_surname,
			l.birth_date::text AS birth_date,
			l.gender,
			l.status,
			l.disability,
			l.weight,
			TRIM(m.name || ' ' || m.paternal_surname || ' ' || COALESCE(m.maternal_surname, '')) AS mother_full_name,
			a.name AS area_name`).
		Joins("LEFT JOIN mothers m ON l.mother_id = m.id").
		Joins("LEFT JOIN care_areas a ON l.area_id = a.id").
		Order("l.paternal_surname, l.maternal_surname").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *InfantRepository) Refs(ctx context.Context, motherID uint) ([]infant.Ref, error) {
	q := conn(ctx, r.db).
		Table("infants").
		Select("id, paternal_surname, maternal_surname, birth_date::text AS birth_date, gender").
		Order("paternal_surname, maternal_surname")
	if motherID != 0 {
		q = q.Where("mother_id = ?", motherID)
	}

	var refs []infant.Ref
	if err := q.Scan(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *InfantRepository) CreateGrowthCheck(ctx context.Context, g *infant.GrowthCheck) error {
	return conn(ctx, r.db).Create(g).Error
}

func (r *InfantRepository) GrowthHistory(ctx context.Context, infantID uint) ([]infant.GrowthCheck, error) {
	var checks []infant.GrowthCheck
	err := conn(ctx, r.db).
		Where("infant_id = ?", infantID).
		Order("checked_at DESC").
		Find(&checks).Error
	if err != nil {
		return nil, err
	}
	return checks, nil
}
