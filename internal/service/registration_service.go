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
	"github.com/vinculodevida/lactario/pkg/metrics"
)

// TxManager runs a function inside one transactional unit; an error rolls
// back every write the function made.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegistrationService resolves raw submitted registration fields into
// committed Mother and Infant rows with referential validity.
type RegistrationService struct {
	mothers mother.Repository
	infants infant.Repository
	catalog catalog.Repository
	tx      TxManager
	audit   AuditSink
	mx      *metrics.Collector
	log     *zap.Logger
}

func NewRegistrationService(
	mothers mother.Repository,
	infants infant.Repository,
	cat catalog.Repository,
	tx TxManager,
	audit AuditSink,
	mx *metrics.Collector,
	log *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		mothers: mothers,
		infants: infants,
		catalog: cat,
		tx:      tx,
		audit:   audit,
		mx:      mx,
		log:     log,
	}
}

// RegisterInfant runs the find-or-create workflow: validate, resolve the
// care area by name, find or create the mother (or fall back to the
// sentinel), and insert the infant, with all writes in one transaction.
// Validation and reference failures never touch the store.
func (s *RegistrationService) RegisterInfant(ctx context.Context, cmd *infant.RegisterCommand, caller *domain.Claims, requestID string) (*infant.Infant, error) {
	if err := validateRegisterCommand(cmd); err != nil {
		return nil, err
	}

	areaName := strings.TrimSpace(cmd.AreaName)
	area, err := s.catalog.GetAreaByName(ctx, areaName)
	if err != nil {
		if errors.Is(err, catalog.ErrAreaNotFound) {
			return nil, &ReferenceError{Kind: "area", Value: areaName}
		}
		return nil, fmt.Errorf("resolving area: %w", err)
	}

	inf, motherCreated, err := s.registerTx(ctx, cmd, area.ID)
	if errors.Is(err, mother.ErrMotherAlreadyExists) {
		// Lost a race against a concurrent registration with the same
		// mother identity; the row exists now, so the find succeeds.
		inf, motherCreated, err = s.registerTx(ctx, cmd, area.ID)
	}
	if err != nil {
		s.log.Error("infant registration failed", zap.Error(err))
		return nil, err
	}

	if motherCreated {
		if s.mx != nil {
			s.mx.MothersCreatedTotal.Inc()
		}
		s.audit.LogAsync(ctx, Entry{
			UserID:        callerID(caller),
			Action:        "Registro de nueva madre",
			AffectedTable: "mothers",
			RequestID:     requestID,
		})
	}

	if s.mx != nil {
		s.mx.InfantsRegisteredTotal.Inc()
	}
	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        "Registro de nuevo lactante",
		AffectedTable: "infants",
		RequestID:     requestID,
	})

	s.log.Info("infant registered",
		zap.Uint("infant_id", inf.ID),
		zap.Uint("mother_id", inf.MotherID),
		zap.Bool("mother_created", motherCreated),
	)

	return inf, nil
}

func (s *RegistrationService) registerTx(ctx context.Context, cmd *infant.RegisterCommand, areaID uint) (*infant.Infant, bool, error) {
	var (
		inf           *infant.Infant
		motherCreated bool
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		motherID, created, err := s.resolveMother(ctx, cmd)
		if err != nil {
			return err
		}
		motherCreated = created

		disability := strings.TrimSpace(cmd.Disability)
		if disability == "" {
			disability = infant.DisabilityNone
		}

		inf = &infant.Infant{
			MotherID:        motherID,
			AreaID:          areaID,
			PaternalSurname: strings.TrimSpace(cmd.PaternalSurname),
			MaternalSurname: strings.TrimSpace(cmd.MaternalSurname),
			BirthDate:       strings.TrimSpace(cmd.BirthDate),
			Gender:          strings.TrimSpace(cmd.Gender),
			Status:          infant.StatusActive,
			Disability:      disability,
			Weight:          cmd.Weight,
		}

		if err := s.infants.Create(ctx, inf); err != nil {
			return fmt.Errorf("creating infant: %w", err)
		}
		return nil
	})

	return inf, motherCreated, err
}

// resolveMother returns the id of the mother the infant links to. With
// both identifying fields supplied it finds an existing row by natural
// key or creates a new one; with neither it resolves the sentinel row.
func (s *RegistrationService) resolveMother(ctx context.Context, cmd *infant.RegisterCommand) (uint, bool, error) {
	name := strings.TrimSpace(cmd.MotherName)
	paternal := strings.TrimSpace(cmd.MotherPaternalSurname)

	if name == "" || paternal == "" {
		sentinel, err := s.mothers.GetSentinel(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("resolving sentinel mother: %w", err)
		}
		return sentinel.ID, false, nil
	}

	existing, err := s.mothers.FindByNaturalKey(ctx, name, paternal)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, mother.ErrMotherNotFound) {
		return 0, false, fmt.Errorf("looking up mother: %w", err)
	}

	reason, err := s.catalog.GetReasonByName(ctx, catalog.ReasonRoutineCheckup)
	if err != nil {
		return 0, false, fmt.Errorf("resolving default reason: %w", err)
	}

	m := &mother.Mother{
		Name:            name,
		PaternalSurname: paternal,
		MaternalSurname: strings.TrimSpace(cmd.MotherMaternalSurname),
		Disability:      strings.TrimSpace(cmd.MotherDisability),
		ReasonID:        reason.ID,
	}
	if err := s.mothers.Create(ctx, m); err != nil {
		return 0, false, err
	}
	return m.ID, true, nil
}

func validateRegisterCommand(cmd *infant.RegisterCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.PaternalSurname) == "" {
		errs = append(errs, "apellido_paterno_lactante is required")
	}
	if strings.TrimSpace(cmd.BirthDate) == "" {
		errs = append(errs, "fecha_nacimiento_lactante is required")
	}
	if strings.TrimSpace(cmd.Gender) == "" {
		errs = append(errs, "genero_lactante is required")
	}
	if strings.TrimSpace(cmd.AreaName) == "" {
		errs = append(errs, "area_lactante is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func callerID(caller *domain.Claims) *uint {
	if caller == nil {
		return nil
	}
	id := caller.UserID
	return &id
}
