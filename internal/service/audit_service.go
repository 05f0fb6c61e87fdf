package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// Entry describes one mutating action for the audit trail.
type Entry struct {
	UserID        *uint
	Action        string
	AffectedTable string
	RequestID     string
}

// AuditSink is what the other services write audit entries through.
type AuditSink interface {
	LogAsync(ctx context.Context, entry Entry)
}

type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	mx      *metrics.Collector
	entries chan *domain.AuditLog
	done    chan struct{}
}

const auditBufferSize = 10_000

func NewAuditService(repo AuditRepository, log *zap.Logger, mx *metrics.Collector) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		mx:      mx,
		entries: make(chan *domain.AuditLog, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence. Entries without
// an acting user are skipped: only actions attributable to a session are
// audited. Persistence failures are logged and never reach the caller;
// the primary operation has already committed by the time auditing runs.
func (s *AuditService) LogAsync(ctx context.Context, entry Entry) {
	if entry.UserID == nil {
		return
	}

	al := &domain.AuditLog{
		UserID:        entry.UserID,
		Action:        entry.Action,
		AffectedTable: entry.AffectedTable,
		RequestID:     entry.RequestID,
	}

	select {
	case s.entries <- al:
	default:
		if s.mx != nil {
			s.mx.AuditBufferDropped.Inc()
		}
		s.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", entry.Action),
			zap.String("table", entry.AffectedTable),
		)
	}
}

func (s *AuditService) Shutdown() {
	close(s.entries)
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else if s.mx != nil {
			s.mx.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
