package grn

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryApprovalRepository keeps records in process; used for tests and STORE_BACKEND=memory
type MemoryApprovalRepository struct {
	mu      sync.RWMutex
	records map[string]ApprovalRecord
}

func NewMemoryApprovalRepository() *MemoryApprovalRepository {
	return &MemoryApprovalRepository{records: make(map[string]ApprovalRecord)}
}

func (r *MemoryApprovalRepository) Create(ctx context.Context, rec *ApprovalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.GRNNo]; ok {
		return ErrRecordExists
	}
	r.records[rec.GRNNo] = *rec
	return nil
}

func (r *MemoryApprovalRepository) Get(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[grnNo]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (r *MemoryApprovalRepository) List(ctx context.Context) ([]ApprovalRecord, error) {
	r.mu.RLock()
	out := make([]ApprovalRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].GRNNo < out[j].GRNNo
	})
	return out, nil
}

func (r *MemoryApprovalRepository) Patch(ctx context.Context, grnNo string, guard, set Flags, at time.Time) (*ApprovalRecord, error) {
	if err := validatePatch(guard, set); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[grnNo]
	if !ok {
		return nil, ErrRecordNotFound
	}
	if !guard.Matches(&rec) {
		return nil, ErrGuardFailed
	}
	for field, v := range set {
		rec.setFlag(field, v)
	}
	rec.UpdatedAt = at
	r.records[grnNo] = rec
	return &rec, nil
}
