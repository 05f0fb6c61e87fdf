package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vinculodevida/lactario/internal/domain/mother"
)

type MotherRepository struct {
	db *gorm.DB
}

func NewMotherRepository(db *gorm.DB) *MotherRepository {
	return &MotherRepository{db: db}
}

func (r *MotherRepository) Create(ctx context.Context, m *mother.Mother) error {
	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return mother.ErrMotherAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MotherRepository) GetByID(ctx context.Context, id uint) (*mother.Mother, error) {
	var m mother.Mother
	err := conn(ctx, r.db).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mother.ErrMotherNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MotherRepository) FindByNaturalKey(ctx context.Context, name, paternalSurname string) (*mother.Mother, error) {
	var m mother.Mother
	err := conn(ctx, r.db).
		Where("name = ? AND paternal_surname = ?", name, paternalSurname).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mother.ErrMotherNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MotherRepository) GetSentinel(ctx context.Context) (*mother.Mother, error) {
	m, err := r.FindByNaturalKey(ctx, mother.SentinelName, mother.SentinelPaternalSurname)
	if errors.Is(err, mother.ErrMotherNotFound) {
		return nil, mother.ErrSentinelMissing
	}
	return m, err
}

func (r *MotherRepository) Update(ctx context.Context, id uint, cmd *mother.UpdateMotherCommand) error {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Name != "" {
		m.Name = cmd.Name
	}
	if cmd.PaternalSurname != "" {
		m.PaternalSurname = cmd.PaternalSurname
	}
	if cmd.MaternalSurname != "" {
		m.MaternalSurname = cmd.MaternalSurname
	}
	if cmd.Disability != "" {
		m.Disability = cmd.Disability
	}

	if err := conn(ctx, r.db).Save(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return mother.ErrMotherAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MotherRepository) List(ctx context.Context) ([]mother.Mother, error) {
	var mothers []mother.Mother
	if err := conn(ctx, r.db).Order("paternal_surname").Find(&mothers).Error; err != nil {
		return nil, err
	}
	return mothers, nil
}
