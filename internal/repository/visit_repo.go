package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain/visit"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	return conn(ctx, r.db).Create(v).Error
}

func (r *VisitRepository) GetByID(ctx context.Context, id uint) (*visit.Visit, error) {
	var v visit.Visit
	err := conn(ctx, r.db).First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, visit.ErrVisitNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	return conn(ctx, r.db).Omit("Infant", "Reason", "Attendee").Save(v).Error
}

func (r *VisitRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&visit.Visit{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return visit.ErrVisitNotFound
	}
	return nil
}

func (r *VisitRepository) DeleteByAttendee(ctx context.Context, userID uint) error {
	return conn(ctx, r.db).Where("attended_by = ?", userID).Delete(&visit.Visit{}).Error
}

func (r *VisitRepository) List(ctx context.Context) ([]visit.Listing, error) {
	var rows []visit.Listing
	err := conn(ctx, r.db).
		Table("visits AS c").
		Select(`c.id,
			c.visit_date::text AS visit_date,
			c.entry_time,
			l.paternal_surname AS infant_surname,
			m.name AS reason_name,
			u.name AS attended_by_name`).
		Joins("JOIN infants l ON c.infant_id = l.id").
		Joins("JOIN reasons m ON c.reason_id = m.id").
		Joins("JOIN users u ON c.attended_by = u.id").
		Order("c.visit_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *VisitRepository) HistoryByInfant(ctx context.Context, infantID uint) ([]visit.HistoryRow, error) {
	var rows []visit.HistoryRow
	err := conn(ctx, r.db).
		Table("visits AS c").
		Select(`c.id AS visit_id,
			md.name AS mother_name,
			l.paternal_surname AS infant_surname,
			mo.name AS reason_name,
			c.visit_date::text AS visit_date`).
		Joins("JOIN infants l ON c.infant_id = l.id").
		Joins("JOIN reasons mo ON c.reason_id = mo.id").
		Joins("LEFT JOIN mothers md ON l.mother_id = md.id").
		Where("c.infant_id = ?", infantID).
		Order("c.visit_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
