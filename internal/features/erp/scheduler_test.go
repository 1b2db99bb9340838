package erp

import (
	"context"
	"testing"

	"grn-console/internal/config"

	"go.uber.org/zap"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.events = append(p.events, eventType)
}

func newTestScheduler(t *testing.T, schedule string) (*RefreshScheduler, *recordingPublisher) {
	t.Helper()
	svc, _ := newCandidateTestService(t, candidate("G1", 10))
	pub := &recordingPublisher{}
	cfg := &config.Config{ERP: config.ERPConfig{RefreshSchedule: schedule}}
	return NewRefreshScheduler(cfg, svc, pub, zap.NewNop()), pub
}

func TestRefreshSchedulerLifecycle(t *testing.T) {
	s, _ := newTestScheduler(t, "@every 1h")
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.NextRun().IsZero() {
		t.Error("NextRun should be set once started")
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestRefreshSchedulerRejectsBadSchedule(t *testing.T) {
	s, _ := newTestScheduler(t, "every so often")
	if err := s.Start(); err == nil {
		t.Error("expected invalid schedule error")
	}
}

func TestRefreshSchedulerDisabled(t *testing.T) {
	s, _ := newTestScheduler(t, "")
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !s.NextRun().IsZero() {
		t.Error("disabled scheduler reported a next run")
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestRefreshRunPublishes(t *testing.T) {
	s, pub := newTestScheduler(t, "")
	s.run()
	if len(pub.events) != 1 || pub.events[0] != EventCandidatesRefreshed {
		t.Errorf("events = %v", pub.events)
	}
}
