package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain"
)

type capturingAuditRepo struct {
	mu   sync.Mutex
	rows []domain.AuditLog
}

func (r *capturingAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *entry)
	return nil
}

func (r *capturingAuditRepo) all() []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditLog(nil), r.rows...)
}

func TestAuditService_PersistsEntries(t *testing.T) {
	repo := &capturingAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop(), nil)

	svc.LogAsync(context.Background(), Entry{
		UserID:        uintPtr(3),
		Action:        "Registro de nuevo lactante",
		AffectedTable: "infants",
		RequestID:     "req-1",
	})
	svc.Shutdown()

	rows := repo.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "Registro de nuevo lactante", rows[0].Action)
	assert.Equal(t, "infants", rows[0].AffectedTable)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, uint(3), *rows[0].UserID)
}

func TestAuditService_SkipsAnonymousEntries(t *testing.T) {
	repo := &capturingAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop(), nil)

	svc.LogAsync(context.Background(), Entry{
		Action:        "Registro de nuevo lactante",
		AffectedTable: "infants",
	})
	svc.Shutdown()

	assert.Empty(t, repo.all())
}

func TestAuditService_DrainsBufferOnShutdown(t *testing.T) {
	repo := &capturingAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop(), nil)

	for i := 0; i < 50; i++ {
		svc.LogAsync(context.Background(), Entry{
			UserID:        uintPtr(1),
			Action:        "Registro de nueva cita",
			AffectedTable: "visits",
		})
	}
	svc.Shutdown()

	assert.Len(t, repo.all(), 50)
}
