package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/catalog"
	"github.com/vinculodevida/lactario/internal/domain/infant"
	"github.com/vinculodevida/lactario/internal/domain/visit"
	"github.com/vinculodevida/lactario/pkg/metrics"
)

// VisitService books, edits, and removes citas for registered infants.
type VisitService struct {
	visits  visit.Repository
	infants infant.Repository
	catalog catalog.Repository
	audit   AuditSink
	mx      *metrics.Collector
	log     *zap.Logger
}

func NewVisitService(
	visits visit.Repository,
	infants infant.Repository,
	cat catalog.Repository,
	audit AuditSink,
	mx *metrics.Collector,
	log *zap.Logger,
) *VisitService {
	return &VisitService{
		visits:  visits,
		infants: infants,
		catalog: cat,
		audit:   audit,
		mx:      mx,
		log:     log,
	}
}

// BookVisit records one visit. The infant reference and entry time are
// always required; the reason falls back to the routine-checkup row and
// the date to today when omitted. Nothing is written on validation failure.
func (s *VisitService) BookVisit(ctx context.Context, cmd *visit.BookCommand, caller *domain.Claims, requestID string) (*visit.Visit, error) {
	var errs []string
	if cmd.InfantID == 0 {
		errs = append(errs, "id_lactante is required")
	}
	if strings.TrimSpace(cmd.EntryTime) == "" {
		errs = append(errs, "hora_cita is required")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if _, err := s.infants.GetByID(ctx, cmd.InfantID); err != nil {
		return nil, err
	}

	reasonID, err := s.resolveReason(ctx, cmd.ReasonID)
	if err != nil {
		return nil, err
	}

	visitDate := strings.TrimSpace(cmd.VisitDate)
	if visitDate == "" {
		visitDate = time.Now().Format("2006-01-02")
	}

	v := &visit.Visit{
		InfantID:      cmd.InfantID,
		ReasonID:      reasonID,
		AttendedBy:    cmd.AttendedBy,
		VisitDate:     visitDate,
		EntryTime:     strings.TrimSpace(cmd.EntryTime),
		FollowUp:      cmd.FollowUp,
		Justification: strings.TrimSpace(cmd.Justification),
	}

	if err := s.visits.Create(ctx, v); err != nil {
		s.log.Error("failed to create visit", zap.Error(err))
		return nil, fmt.Errorf("creating visit: %w", err)
	}

	if s.mx != nil {
		s.mx.VisitsBookedTotal.Inc()
	}
	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Registro de nueva cita para lactante %d", v.InfantID),
		AffectedTable: "visits",
		RequestID:     requestID,
	})

	return v, nil
}

// UpdateVisit applies a partial update: submitted empty fields keep the
// stored value.
func (s *VisitService) UpdateVisit(ctx context.Context, id uint, cmd *visit.UpdateCommand, caller *domain.Claims, requestID string) (*visit.Visit, error) {
	v, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.ReasonID != 0 {
		if _, err := s.catalog.GetReasonByID(ctx, cmd.ReasonID); err != nil {
			if errors.Is(err, catalog.ErrReasonNotFound) {
				return nil, &ReferenceError{Kind: "reason", Value: fmt.Sprint(cmd.ReasonID)}
			}
			return nil, err
		}
		v.ReasonID = cmd.ReasonID
	}
	if strings.TrimSpace(cmd.VisitDate) != "" {
		v.VisitDate = strings.TrimSpace(cmd.VisitDate)
	}
	if strings.TrimSpace(cmd.EntryTime) != "" {
		v.EntryTime = strings.TrimSpace(cmd.EntryTime)
	}
	if strings.TrimSpace(cmd.Justification) != "" {
		v.Justification = strings.TrimSpace(cmd.Justification)
	}
	if cmd.FollowUp != nil {
		v.FollowUp = *cmd.FollowUp
	}

	if err := s.visits.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("updating visit: %w", err)
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Actualización cita ID %d", id),
		AffectedTable: "visits",
		RequestID:     requestID,
	})

	return v, nil
}

func (s *VisitService) DeleteVisit(ctx context.Context, id uint, caller *domain.Claims, requestID string) error {
	if err := s.visits.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.LogAsync(ctx, Entry{
		UserID:        callerID(caller),
		Action:        fmt.Sprintf("Eliminación cita ID %d", id),
		AffectedTable: "visits",
		RequestID:     requestID,
	})
	return nil
}

func (s *VisitService) ListVisits(ctx context.Context) ([]visit.Listing, error) {
	return s.visits.List(ctx)
}

func (s *VisitService) HistoryByInfant(ctx context.Context, infantID uint) ([]visit.HistoryRow, error) {
	return s.visits.HistoryByInfant(ctx, infantID)
}

func (s *VisitService) resolveReason(ctx context.Context, reasonID *uint) (uint, error) {
	if reasonID == nil || *reasonID == 0 {
		reason, err := s.catalog.GetReasonByName(ctx, catalog.ReasonRoutineCheckup)
		if err != nil {
			return 0, fmt.Errorf("resolving default reason: %w", err)
		}
		return reason.ID, nil
	}

	if _, err := s.catalog.GetReasonByID(ctx, *reasonID); err != nil {
		if errors.Is(err, catalog.ErrReasonNotFound) {
			return 0, &ReferenceError{Kind: "reason", Value: fmt.Sprint(*reasonID)}
		}
		return 0, err
	}
	return *reasonID, nil
}
