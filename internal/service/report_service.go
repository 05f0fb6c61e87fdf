package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/visit"
	"github.com/vinculodevida/lactario/pkg/metrics"
)

var ErrUnknownReportType = errors.New("unknown report type")

const (
	ReportTypeStatistics = "estadistica"
	ReportTypeRoomingIn  = "alojamiento_conjunto"
	ReportTypeFederal    = "federal"
)

// ReportStore exposes the aggregate queries the reports are built from.
type ReportStore interface {
	CountMothers(ctx context.Context) (int64, error)
	CountInfants(ctx context.Context) (int64, error)
	CountVisits(ctx context.Context) (int64, error)
	GenderDistribution(ctx context.Context) ([]GenderCount, error)
	RoomingIn(ctx context.Context) ([]RoomingInRow, error)
	SaveReport(ctx context.Context, r *domain.Report) error
}

type ReportResult struct {
	Reporte    string `json:"reporte"`
	Resultados any    `json:"resultados"`
}

type StatisticsResult struct {
	TotalMadres    int64 `json:"total_madres"`
	TotalLactantes int64 `json:"total_lactantes"`
}

type RoomingInRow struct {
	MotherName            string `json:"nombre_madre"`
	MotherPaternalSurname string `json:"apellido_paterno_madre"`
	PaternalSurname       string `json:"apellido_paterno_lactante"`
	MaternalSurname       string `json:"apellido_materno_lactante"`
	BirthDate             string `json:"fecha_nacimiento"`
}

type GenderCount struct {
	Gender string `json:"genero"`
	Total  int64  `json:"total"`
}

type FederalResult struct {
	TotalCitas         int64         `json:"total_citas"`
	DistribucionGenero []GenderCount `json:"distribucion_genero"`
}

// GeneralCounts backs the downloadable general report.
type GeneralCounts struct {
	TotalInfants int64
	TotalVisits  int64
}

type ReportService struct {
	store  ReportStore
	visits visit.Repository
	audit  AuditSink
	mx     *metrics.Collector
	log    *zap.Logger
}

func NewReportService(store ReportStore, visits visit.Repository, audit AuditSink, mx *metrics.Collector, log *zap.Logger) *ReportService {
	return &ReportService{store: store, visits: visits, audit: audit, mx: mx, log: log}
}

// Generate builds the named report, persists a copy and returns it. The
// persisted row and the audit entry are skipped for anonymous callers.
func (s *ReportService) Generate(ctx context.Context, reportType string, caller *domain.Claims, requestID string) (*ReportResult, error) {
	var result *ReportResult
	var err error

	switch reportType {
	case ReportTypeStatistics:
		result, err = s.statistics(ctx)
	case ReportTypeRoomingIn:
		result, err = s.roomingIn(ctx)
	case ReportTypeFederal:
		result, err = s.federal(ctx)
	default:
		return nil, ErrUnknownReportType
	}
	if err != nil {
		s.log.Error("report generation failed", zap.String("type", reportType), zap.Error(err))
		return nil, fmt.Errorf("generating %s report: %w", reportType, err)
	}

	if s.mx != nil {
		s.mx.ReportsGeneratedTotal.WithLabelValues(reportType).Inc()
	}

	if caller != nil {
		content, merr := json.Marshal(result.Resultados)
		if merr != nil {
			return nil, fmt.Errorf("encoding report: %w", merr)
		}
		rec := &domain.Report{UserID: caller.UserID, Type: result.Reporte, Content: string(content)}
		if serr := s.store.SaveReport(ctx, rec); serr != nil {
			// The caller still gets the report even if archiving it fails.
			s.log.Warn("failed to persist report", zap.String("type", reportType), zap.Error(serr))
		}
		s.audit.LogAsync(ctx, Entry{
			UserID:        callerID(caller),
			Action:        fmt.Sprintf("Generación de reporte: %s", result.Reporte),
			AffectedTable: "reports",
			RequestID:     requestID,
		})
	}

	return result, nil
}

func (s *ReportService) statistics(ctx context.Context) (*ReportResult, error) {
	mothers, err := s.store.CountMothers(ctx)
	if err != nil {
		return nil, err
	}
	infants, err := s.store.CountInfants(ctx)
	if err != nil {
		return nil, err
	}
	return &ReportResult{
		Reporte:    "Reporte de Estadísticas",
		Resultados: StatisticsResult{TotalMadres: mothers, TotalLactantes: infants},
	}, nil
}

func (s *ReportService) roomingIn(ctx context.Context) (*ReportResult, error) {
	rows, err := s.store.RoomingIn(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []RoomingInRow{}
	}
	return &ReportResult{Reporte: "Reporte de Alojamiento Conjunto", Resultados: rows}, nil
}

func (s *ReportService) federal(ctx context.Context) (*ReportResult, error) {
	visits, err := s.store.CountVisits(ctx)
	if err != nil {
		return nil, err
	}
	genders, err := s.store.GenderDistribution(ctx)
	if err != nil {
		return nil, err
	}
	if genders == nil {
		genders = []GenderCount{}
	}
	return &ReportResult{
		Reporte:    "Reporte Federal",
		Resultados: FederalResult{TotalCitas: visits, DistribucionGenero: genders},
	}, nil
}

// GeneralCounts feeds the XLSX and PDF exports.
func (s *ReportService) GeneralCounts(ctx context.Context) (*GeneralCounts, error) {
	infants, err := s.store.CountInfants(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.store.CountVisits(ctx)
	if err != nil {
		return nil, err
	}
	return &GeneralCounts{TotalInfants: infants, TotalVisits: visits}, nil
}

// InfantHistory returns the visit history backing the per-infant report.
func (s *ReportService) InfantHistory(ctx context.Context, infantID uint) ([]visit.HistoryRow, error) {
	return s.visits.HistoryByInfant(ctx, infantID)
}
