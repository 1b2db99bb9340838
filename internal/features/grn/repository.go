package grn

import (
	"context"
	"fmt"
	"time"

	"grn-console/internal/config"
	"grn-console/internal/database"

	"go.uber.org/fx"
)

// ApprovalRepository is the keyed record store. Patch is a compare-and-set:
// the set flags and updated_at are written only if every guard flag still holds.
type ApprovalRepository interface {
	// Create inserts rec unless a record with the same grn_no exists (ErrRecordExists)
	Create(ctx context.Context, rec *ApprovalRecord) error
	Get(ctx context.Context, grnNo string) (*ApprovalRecord, error)
	List(ctx context.Context) ([]ApprovalRecord, error)
	// Patch returns ErrRecordNotFound or ErrGuardFailed when nothing was written
	Patch(ctx context.Context, grnNo string, guard, set Flags, at time.Time) (*ApprovalRecord, error)
}

// SchemaInitializer is implemented by stores that need indexes or tables created at startup
type SchemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}

// NewApprovalRepository picks the record store configured by STORE_BACKEND
func NewApprovalRepository(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (ApprovalRepository, error) {
	switch cfg.StoreBackend {
	case config.StoreMongo, "":
		return NewMongoApprovalRepository(mongodb), nil
	case config.StorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := database.NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(pool.Close))
		return NewPostgresApprovalRepository(pool), nil
	case config.StoreMemory:
		return NewMemoryApprovalRepository(), nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

func isFlagField(field string) bool {
	switch field {
	case FieldSendedBill, FieldApprovedByAdmin, FieldApprovedByGM, FieldCloseBill:
		return true
	}
	return false
}

func validatePatch(guard, set Flags) error {
	for field := range guard {
		if !isFlagField(field) {
			return fmt.Errorf("unknown guard field %q", field)
		}
	}
	if len(set) == 0 {
		return fmt.Errorf("empty patch")
	}
	for field := range set {
		if !isFlagField(field) {
			return fmt.Errorf("unknown patch field %q", field)
		}
	}
	return nil
}
