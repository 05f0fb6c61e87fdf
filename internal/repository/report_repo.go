package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/infant"
	"github.com/vinculodevida/lactario/internal/domain/mother"
	"github.com/vinculodevida/lactario/internal/domain/visit"
	"github.com/vinculodevida/lactario/internal/service"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountMothers(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&mother.Mother{}).Count(&n).Error
	return n, err
}

func (r *ReportRepository) CountInfants(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&infant.Infant{}).Count(&n).Error
	return n, err
}

func (r *ReportRepository) CountVisits(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&visit.Visit{}).Count(&n).Error
	return n, err
}

func (r *ReportRepository) GenderDistribution(ctx context.Context) ([]service.GenderCount, error) {
	var rows []service.GenderCount
	err := conn(ctx, r.db).
		Model(&infant.Infant{}).
		Select("gender, COUNT(gender) AS total").
		Group("gender").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) RoomingIn(ctx context.Context) ([]service.RoomingInRow, error) {
	var rows []service.RoomingInRow
	err := conn(ctx, r.db).
		Table("mothers AS m").
		Select(`m.name AS mother_name,
			m.paternal_surname AS mother_paternal_surname,
			l.paternal_surname,
			l.maternal_surname,
			l.birth_date::text AS birth_date`).
		Joins("JOIN infants l ON l.mother_id = m.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) SaveReport(ctx context.Context, rec *domain.Report) error {
	return conn(ctx, r.db).Create(rec).Error
}
