package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
)

type tripAuditLogRepository struct {
	logs []domain.TripAuditLog
	mu   sync.RWMutex
}

func NewTripAuditLogRepository() domain.TripAuditRepository {
	return &tripAuditLogRepository{}
}

func (r *tripAuditLogRepository) Log(ctx context.Context, log *domain.TripAuditLog) error {
	r.mu.Lock()
	r.logs = append(r.logs, *log)
	r.mu.Unlock()
	return nil
}

func (r *tripAuditLogRepository) GetByTripCode(ctx context.Context, tripCode string, limit int) ([]domain.TripAuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.TripAuditLog{}
	for _, l := range r.logs {
		if l.TripCode == tripCode {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *tripAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.logs[:0]
	for _, l := range r.logs {
		if !l.Timestamp.Before(before) {
			kept = append(kept, l)
		}
	}
	r.logs = kept
	return nil
}

func (r *tripAuditLogRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}
