package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return conn(ctx, r.db).Create(entry).Error
}
