package erp

import (
	"context"
	"fmt"
	"time"

	"grn-console/internal/config"
	"grn-console/internal/features/grn"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EventCandidatesRefreshed is published after each scheduled reload
const EventCandidatesRefreshed = "erp.refreshed"

const refreshTimeout = 2 * time.Minute

// RefreshScheduler reloads the candidate feed on ERP_REFRESH_SCHEDULE
type RefreshScheduler struct {
	service   CandidateService
	publisher grn.RecordPublisher
	schedule  string
	log       *zap.Logger

	scheduler *cron.Cron
	entryID   cron.EntryID
}

func NewRefreshScheduler(cfg *config.Config, service CandidateService, publisher grn.RecordPublisher, log *zap.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		service:   service,
		publisher: publisher,
		schedule:  cfg.ERP.RefreshSchedule,
		log:       log.Named("erp"),
	}
}

// RegisterRefreshScheduler ties the scheduler to the app lifecycle
func RegisterRefreshScheduler(lc fx.Lifecycle, s *RefreshScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return s.Start() },
		OnStop:  func(ctx context.Context) error { return s.Stop(ctx) },
	})
}

func (s *RefreshScheduler) Start() error {
	if s.schedule == "" {
		s.log.Info("ERP refresh schedule disabled")
		return nil
	}

	s.scheduler = cron.New()
	entryID, err := s.scheduler.AddFunc(s.schedule, s.run)
	if err != nil {
		return fmt.Errorf("invalid ERP_REFRESH_SCHEDULE %q: %w", s.schedule, err)
	}
	s.entryID = entryID
	s.scheduler.Start()
	s.log.Info("ERP refresh scheduled", zap.String("schedule", s.schedule))
	return nil
}

func (s *RefreshScheduler) Stop(ctx context.Context) error {
	if s.scheduler == nil {
		return nil
	}
	done := s.scheduler.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun is the time of the next scheduled refresh, zero when disabled
func (s *RefreshScheduler) NextRun() time.Time {
	if s.scheduler == nil {
		return time.Time{}
	}
	entry := s.scheduler.Entry(s.entryID)
	if entry.Schedule == nil {
		return time.Time{}
	}
	return entry.Schedule.Next(time.Now())
}

func (s *RefreshScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	result, err := s.service.Refresh(ctx)
	if err != nil {
		s.log.Error("Scheduled ERP refresh failed", zap.Error(err))
		return
	}
	s.log.Info("ERP candidates refreshed",
		zap.Int("candidates", result.Candidates),
		zap.Int("pending", result.Pending))
	if s.publisher != nil {
		s.publisher.Publish(EventCandidatesRefreshed, result)
	}
}
