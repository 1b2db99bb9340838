package erp

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"grn-console/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Source reads candidate GRNs from the origin dataset
type Source interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

// StaticSource serves a fixed candidate list; used when no ERP host is configured
type StaticSource struct {
	Items []Candidate
}

func (s *StaticSource) Candidates(ctx context.Context) ([]Candidate, error) {
	out := make([]Candidate, len(s.Items))
	copy(out, s.Items)
	return out, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLSource queries a table or view in the ERP database over database/sql
type SQLSource struct {
	cfg config.ERPConfig
	log *zap.Logger

	mu sync.Mutex
	db *sql.DB
}

func NewSQLSource(cfg config.ERPConfig, log *zap.Logger) (*SQLSource, error) {
	if !identifier.MatchString(cfg.Source) {
		return nil, fmt.Errorf("invalid ERP_GRN_SOURCE %q", cfg.Source)
	}
	if cfg.Driver != "postgresql" && cfg.Driver != "mysql" {
		return nil, fmt.Errorf("unsupported ERP_DRIVER %q", cfg.Driver)
	}
	return &SQLSource{cfg: cfg, log: log}, nil
}

// NewSource builds the configured candidate source, cached when Redis is configured
func NewSource(lc fx.Lifecycle, cfg *config.Config, cache *Cache, log *zap.Logger) (Source, error) {
	var src Source
	if cfg.ERP.Host == "" {
		log.Warn("ERP_HOST not set, candidate feed is empty")
		src = &StaticSource{}
	} else {
		sqlSource, err := NewSQLSource(cfg.ERP, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(sqlSource.Close))
		src = sqlSource
	}

	if cache == nil {
		return src, nil
	}
	return NewCachedSource(src, cache, cfg.ERP.CacheTTL, log), nil
}

func (s *SQLSource) Candidates(ctx context.Context) ([]Candidate, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, s.buildQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	data, err := rowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to process query results: %w", err)
	}

	candidates, skipped := MapRows(data)
	if skipped > 0 {
		s.log.Warn("Skipped malformed ERP rows",
			zap.String("source", s.cfg.Source),
			zap.Int("skipped", skipped),
			zap.Int("kept", len(candidates)))
	}
	return candidates, nil
}

// Close releases the ERP connection pool
func (s *SQLSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn opens the pool on first use so an unreachable ERP does not block startup
func (s *SQLSource) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	driver := s.cfg.Driver
	if driver == "postgresql" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, s.connectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	s.db = db
	return db, nil
}

func (s *SQLSource) connectionString() string {
	port := s.cfg.Port
	if port == 0 {
		if s.cfg.Driver == "postgresql" {
			port = 5432
		} else {
			port = 3306
		}
	}

	if s.cfg.Driver == "postgresql" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			s.cfg.Host, port, s.cfg.Username, s.cfg.Password, s.cfg.Database,
		)
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.cfg.Username, s.cfg.Password, s.cfg.Host, port, s.cfg.Database,
	)
}

func (s *SQLSource) buildQuery() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, %s",
		strings.Join(originColumns, ", "), s.cfg.Source, ColVoucherDate, ColVoucherNo)
}

func rowsToMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
