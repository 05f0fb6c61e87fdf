package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/catalog"
	"github.com/vinculodevida/lactario/internal/domain/infant"
	"github.com/vinculodevida/lactario/internal/domain/mother"
)

// Infant management beyond registration: listing, editing, deletion, and
// growth checks. Lives on RegistrationService since it shares the same
// repositories and transactional wiring.

func (s *RegistrationService) ListInfants(ctx context.Context) ([]infant.Listing, error) {
	return s.infants.List(ctx)
}

func (s *RegistrationService) GetInfant(ctx context.Context, id uint) (*infant.Infant, error) {
	return s.infants.GetByID(ctx, id)
}

func (s *RegistrationService) InfantRefs(ctx context.Context, motherID uint) ([]infant.Ref, error) {
	return s.infants.Refs(ctx, motherID)
}

// UpdateInfant applies a partial update to the infant and, when the infant
// is linked to a non-sentinel mother and mother fields were submitted, to
// the mother, both in one transaction. A submitted area name is
// reference-checked before any write.
func (s *RegistrationService) UpdateInfant(ctx context.Context, id uint, cmd *infant.UpdateCommand, caller *domain.Claims, requestID string) (*infant.Infant, error) {
	inf, err := s.infants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.AreaName); name != "" {
		area, err := s.catalog.GetAreaByName(ctx, name)
		if err != nil {
			if errors.Is(err, catalog.ErrAreaNotFound) {
				return nil, &ReferenceError{Kind: "area", Value: name}
			}
			return nil, fmt.Errorf("resolving area: %w", err)
		}
		inf.AreaID = area.ID
	}

	applyIfSet := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	applyIfSet(&inf.PaternalSurname, cmd.PaternalSurname)
	applyIfSet(&inf.MaternalSurname, cmd.MaternalSurname)
	applyIfSet(&inf.BirthDate, cmd.BirthDate)
	applyIfSet(&inf.Gender, cmd.Gender)
	applyIfSet(&inf.Status, cmd.Status)
	applyIfSet(&inf.Disability, cmd.Disability)
	if cmd.Weight != nil {
		inf.Weight = cmd.Weight
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.infants.Update(ctx, inf); err != nil {
			return fmt.Errorf("updating infant: %w", err)
		}
		if cmd.Mother != nil && !inf.Mother.IsSentinel() {
			if err := s.mothers.Update(ctx, inf.MotherID, cmd.Mother); err != nil {
				return fmt.Errorf("updating mother: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("infant update failed", zap.Uint("infant_id", id), zap.Error(err))
		return nil, err
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Actualización lactante ID %d", id),
		AffectedTable: "infants",
		RequestID:     requestID,
	})

	return inf, nil
}

// DeleteInfant removes the infant; its visits and growth checks cascade.
func (s *RegistrationService) DeleteInfant(ctx context.Context, id uint, caller *domain.Claims, requestID string) error {
	if err := s.infants.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Eliminación lactante ID %d", id),
		AffectedTable: "infants",
		RequestID:     requestID,
	})
	return nil
}

func (s *RegistrationService) RecordGrowthCheck(ctx context.Context, cmd *infant.CreateGrowthCheckCommand, caller *domain.Claims, requestID string) (*infant.GrowthCheck, error) {
	if cmd.InfantID == 0 {
		return nil, &ValidationError{Fields: []string{"id_lactante is required"}}
	}
	if _, err := s.infants.GetByID(ctx, cmd.InfantID); err != nil {
		return nil, err
	}

	g := &infant.GrowthCheck{
		InfantID:     cmd.InfantID,
		Weight:       cmd.Weight,
		Height:       cmd.Height,
		AgeMonths:    cmd.AgeMonths,
		GeneralState: strings.TrimSpace(cmd.GeneralState),
		Observations: strings.TrimSpace(cmd.Observations),
	}
	if err := s.infants.CreateGrowthCheck(ctx, g); err != nil {
		return nil, fmt.Errorf("creating growth check: %w", err)
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Registro de control para lactante %d", cmd.InfantID),
		AffectedTable: "growth_checks",
		RequestID:     requestID,
	})

	return g, nil
}

func (s *RegistrationService) GrowthHistory(ctx context.Context, infantID uint) ([]infant.GrowthCheck, error) {
	if _, err := s.infants.GetByID(ctx, infantID); err != nil {
		return nil, err
	}
	return s.infants.GrowthHistory(ctx, infantID)
}

func (s *RegistrationService) ListAreas(ctx context.Context) ([]catalog.CareArea, error) {
	return s.catalog.ListAreas(ctx)
}

func (s *RegistrationService) ListReasons(ctx context.Context) ([]catalog.Reason, error) {
	return s.catalog.ListReasons(ctx)
}

func (s *RegistrationService) ListMothers(ctx context.Context) ([]mother.Mother, error) {
	return s.mothers.List(ctx)
}
