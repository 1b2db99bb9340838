package erp

import (
	"context"
	"fmt"
	"time"

	"grn-console/internal/features/grn"
)

// RefreshResult summarises a forced reload of the candidate feed
type RefreshResult struct {
	Candidates  int       `json:"candidates"`
	Pending     int       `json:"pending"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type CandidateService interface {
	ListCandidates(ctx context.Context) ([]Candidate, error)
	// PendingToSend is the store clerk's list: candidates with no approval record yet
	PendingToSend(ctx context.Context) ([]Candidate, error)
	Refresh(ctx context.Context) (*RefreshResult, error)
}

type refresher interface {
	Refresh(ctx context.Context) ([]Candidate, error)
}

type CandidateServiceImpl struct {
	Source    Source
	Filter    Filter
	Approvals grn.ApprovalService
	Now       func() time.Time
}

func NewCandidateService(source Source, filter Filter, approvals grn.ApprovalService) CandidateService {
	return &CandidateServiceImpl{
		Source:    source,
		Filter:    filter,
		Approvals: approvals,
		Now:       time.Now,
	}
}

func (s *CandidateServiceImpl) ListCandidates(ctx context.Context) ([]Candidate, error) {
	items, err := s.Source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ERP candidates: %w", err)
	}
	return s.filter(ctx, items)
}

func (s *CandidateServiceImpl) PendingToSend(ctx context.Context) ([]Candidate, error) {
	items, err := s.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	return s.withoutRecords(ctx, items)
}

func (s *CandidateServiceImpl) Refresh(ctx context.Context) (*RefreshResult, error) {
	var items []Candidate
	var err error
	if r, ok := s.Source.(refresher); ok {
		items, err = r.Refresh(ctx)
	} else {
		items, err = s.Source.Candidates(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh ERP candidates: %w", err)
	}

	if items, err = s.filter(ctx, items); err != nil {
		return nil, err
	}
	pending, err := s.withoutRecords(ctx, items)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{
		Candidates:  len(items),
		Pending:     len(pending),
		RefreshedAt: s.Now(),
	}, nil
}

func (s *CandidateServiceImpl) filter(ctx context.Context, items []Candidate) ([]Candidate, error) {
	if s.Filter == nil {
		return items, nil
	}
	out := make([]Candidate, 0, len(items))
	for _, c := range items {
		keep, err := s.Filter.Keep(ctx, c)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CandidateServiceImpl) withoutRecords(ctx context.Context, items []Candidate) ([]Candidate, error) {
	records, err := s.Approvals.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	sent := make(map[string]struct{}, len(records))
	for _, r := range records {
		sent[r.GRNNo] = struct{}{}
	}

	out := make([]Candidate, 0, len(items))
	for _, c := range items {
		if _, ok := sent[c.GRNNo]; !ok {
			out = append(out, c)
		}
	}
	return out, nil
}
