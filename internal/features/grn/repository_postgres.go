package grn

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const approvalColumns = `grn_no, planned_date, grn_date, party_name, party_bill_no,
	party_bill_amount::text, sended_bill, approved_by_admin, approved_by_gm, close_bill,
	created_at, updated_at`

// The CHECK constraint mirrors the prefix chain so no writer can persist a broken record
const createApprovalTable = `
CREATE TABLE IF NOT EXISTS grn_approvals (
	grn_no            TEXT PRIMARY KEY,
	planned_date      TEXT NOT NULL DEFAULT '',
	grn_date          TEXT NOT NULL DEFAULT '',
	party_name        TEXT NOT NULL DEFAULT '',
	party_bill_no     TEXT NOT NULL DEFAULT '',
	party_bill_amount NUMERIC(18,2) NOT NULL CHECK (party_bill_amount >= 0),
	sended_bill       BOOLEAN NOT NULL DEFAULT FALSE,
	approved_by_admin BOOLEAN NOT NULL DEFAULT FALSE,
	approved_by_gm    BOOLEAN NOT NULL DEFAULT FALSE,
	close_bill        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT grn_approvals_prefix_chain CHECK (
		(NOT close_bill OR approved_by_gm)
		AND (NOT approved_by_gm OR approved_by_admin)
		AND (NOT approved_by_admin OR sended_bill)
	)
)`

type PostgresApprovalRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresApprovalRepository(pool *pgxpool.Pool) *PostgresApprovalRepository {
	return &PostgresApprovalRepository{pool: pool}
}

func (r *PostgresApprovalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createApprovalTable); err != nil {
		return fmt.Errorf("create grn_approvals: %w", err)
	}
	return nil
}

func (r *PostgresApprovalRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresApprovalRepository) Create(ctx context.Context, rec *ApprovalRecord) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO grn_approvals (grn_no, planned_date, grn_date, party_name, party_bill_no,
			party_bill_amount, sended_bill, approved_by_admin, approved_by_gm, close_bill,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (grn_no) DO NOTHING`,
		rec.GRNNo, rec.PlannedDate, rec.GRNDate, rec.PartyName, rec.PartyBillNo,
		rec.PartyBillAmount.String(), rec.SendedBill, rec.ApprovedByAdmin, rec.ApprovedByGM, rec.CloseBill,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordExists
	}
	return nil
}

func (r *PostgresApprovalRepository) Get(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+approvalColumns+` FROM grn_approvals WHERE grn_no = $1`, grnNo)
	rec, err := scanApproval(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return rec, err
}

func (r *PostgresApprovalRepository) List(ctx context.Context) ([]ApprovalRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+approvalColumns+` FROM grn_approvals ORDER BY created_at, grn_no`)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	records := []ApprovalRecord{}
	for rows.Next() {
		rec, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *PostgresApprovalRepository) Patch(ctx context.Context, grnNo string, guard, set Flags, at time.Time) (*ApprovalRecord, error) {
	if err := validatePatch(guard, set); err != nil {
		return nil, err
	}

	query, args := buildPatchSQL(grnNo, guard, set, at)
	rec, err := scanApproval(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("patch approval: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM grn_approvals WHERE grn_no = $1)`, grnNo).Scan(&exists); err != nil {
		return nil, fmt.Errorf("lookup approval: %w", err)
	}
	if !exists {
		return nil, ErrRecordNotFound
	}
	return nil, ErrGuardFailed
}

// buildPatchSQL renders a guarded UPDATE. Field names are checked by validatePatch
// and sorted so the statement text is stable.
func buildPatchSQL(grnNo string, guard, set Flags, at time.Time) (string, []any) {
	args := []any{grnNo}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var sets []string
	for _, field := range sortedFields(set) {
		sets = append(sets, fmt.Sprintf("%s = %s", field, next(set[field])))
	}
	sets = append(sets, "updated_at = "+next(at))

	where := []string{"grn_no = $1"}
	for _, field := range sortedFields(guard) {
		where = append(where, fmt.Sprintf("%s = %s", field, next(guard[field])))
	}

	query := fmt.Sprintf("UPDATE grn_approvals SET %s WHERE %s RETURNING %s",
		strings.Join(sets, ", "), strings.Join(where, " AND "), approvalColumns)
	return query, args
}

func sortedFields(f Flags) []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func scanApproval(row pgx.Row) (*ApprovalRecord, error) {
	var rec ApprovalRecord
	var amount string
	err := row.Scan(&rec.GRNNo, &rec.PlannedDate, &rec.GRNDate, &rec.PartyName, &rec.PartyBillNo,
		&amount, &rec.SendedBill, &rec.ApprovedByAdmin, &rec.ApprovedByGM, &rec.CloseBill,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rec.PartyBillAmount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("decode party_bill_amount for %s: %w", rec.GRNNo, err)
	}
	return &rec, nil
}
