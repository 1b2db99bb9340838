package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"grn-console/internal/config"
	"grn-console/internal/database"
	"grn-console/internal/features/grn"
	"grn-console/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// seedBill is one demo bill and the stage it should be advanced to
type seedBill struct {
	grn.BillDetails
	Stage string `json:"stage"`
}

// Seed sends the demo bills and walks each one up to its stage
func Seed(
	lc fx.Lifecycle,
	repo grn.ApprovalRepository,
	service grn.ApprovalService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				ctx := context.Background()
				if schema, ok := repo.(grn.SchemaInitializer); ok {
					if err := schema.EnsureSchema(ctx); err != nil {
						logger.Error("Failed to ensure approval schema", zap.Error(err))
						return
					}
				}

				path := os.Getenv("SEED_FILE")
				if path == "" {
					path = "cmd/seed/data/grn_bills.json"
				}
				b, err := os.ReadFile(path)
				if err != nil {
					logger.Error("Failed to read seed file", zap.String("path", path), zap.Error(err))
					return
				}
				var bills []seedBill
				if err := json.Unmarshal(b, &bills); err != nil {
					logger.Error("Failed to parse seed file", zap.String("path", path), zap.Error(err))
					return
				}

				steps := map[grn.Transition]func(context.Context, string) (*grn.ApprovalRecord, error){
					grn.TransitionAdminApprove: service.ApproveByAdmin,
					grn.TransitionGMApprove:    service.ApproveByGM,
					grn.TransitionClose:        service.CloseBill,
				}

				for _, bill := range bills {
					_, err := service.SendBill(ctx, bill.BillDetails)
					if err != nil && grn.KindOf(err) != grn.KindAlreadyAtOrPastStage {
						logger.Error("Failed to send bill", zap.String("grn_no", bill.GRNNo), zap.Error(err))
						continue
					}

					for _, t := range grn.Transitions[1:] {
						if stageRank(bill.Stage) < t.Target() {
							break
						}
						if _, err := steps[t](ctx, bill.GRNNo); err != nil && grn.KindOf(err) != grn.KindAlreadyAtOrPastStage {
							logger.Error("Failed to advance bill", zap.String("grn_no", bill.GRNNo), zap.String("transition", string(t)), zap.Error(err))
							break
						}
					}
					logger.Info("Seeded bill", zap.String("grn_no", bill.GRNNo), zap.String("stage", bill.Stage))
				}

				logger.Info("Seeding complete", zap.Int("bills", len(bills)))
			}()
			return nil
		},
	})
}

// stageRank parses a stage name; unknown names stop at SENT
func stageRank(name string) grn.Stage {
	for s := grn.StageSent; s <= grn.StageClosed; s++ {
		if s.String() == name {
			return s
		}
	}
	return grn.StageSent
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			logger.NewDBLogWriter,
			logger.NewLogger,
			database.NewDatabase,
			grn.NewApprovalRepository,
			grn.NewApprovalService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
