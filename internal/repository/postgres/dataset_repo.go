package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/dataset"
	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/infra"
)

var ErrBadHeader = errors.New("postgres: unusable dataset header")

// DatasetRepo stores KDD splits as plain TEXT tables, one per kind.
type DatasetRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDatasetRepo connects and waits for the database to answer a ping.
func NewDatasetRepo(ctx context.Context, cfg infra.DatabaseConfig, logger *zap.Logger) (*DatasetRepo, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	repo := &DatasetRepo{pool: pool, logger: logger.Named("dataset-repo")}
	if err := repo.waitReady(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

// waitReady retries the first ping, the database may still be starting.
func (r *DatasetRepo) waitReady(ctx context.Context) error {
	return retry.New(
		retry.Context(ctx),
		retry.Attempts(5),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			r.logger.Warn("database not ready", zap.Uint("attempt", n+1), zap.Error(err))
			return retry.BackOffDelay(n, err, config)
		}),
	).Do(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return r.Ping(pingCtx)
	})
}

func (r *DatasetRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *DatasetRepo) Close() {
	r.pool.Close()
}

// TableName is kdd_test or kdd_train.
func TableName(kind domain.DatasetKind) string {
	return "kdd_" + string(kind)
}

// createTableSQL quotes every identifier; header names come from the file.
func createTableSQL(kind domain.DatasetKind, header []string) (string, error) {
	if len(header) == 0 {
		return "", fmt.Errorf("%w: no columns", ErrBadHeader)
	}
	seen := make(map[string]bool, len(header))
	cols := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return "", fmt.Errorf("%w: column %d has no name", ErrBadHeader, i)
		}
		if seen[name] {
			return "", fmt.Errorf("%w: duplicate column %q", ErrBadHeader, name)
		}
		seen[name] = true
		cols = append(cols, pgx.Identifier{name}.Sanitize()+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{TableName(kind)}.Sanitize(), strings.Join(cols, ", ")), nil
}

func (r *DatasetRepo) EnsureTable(ctx context.Context, kind domain.DatasetKind, header []string) error {
	stmt, err := createTableSQL(kind, header)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("postgres: create %s: %w", TableName(kind), err)
	}
	return nil
}

// copyRows adapts string records to CopyFrom. Missing cells become NULL.
func copyRows(f *dataset.Frame) [][]any {
	out := make([][]any, len(f.Rows))
	for i, row := range f.Rows {
		vals := make([]any, len(row))
		for j, cell := range row {
			if dataset.IsMissing(cell) {
				continue // nil
			}
			vals[j] = cell
		}
		out[i] = vals
	}
	return out
}

// Import replaces the table contents with the frame in one transaction.
func (r *DatasetRepo) Import(ctx context.Context, kind domain.DatasetKind, f *dataset.Frame) (int64, error) {
	if f == nil {
		return 0, fmt.Errorf("postgres: import %s: no frame", kind)
	}
	if err := r.EnsureTable(ctx, kind, f.Header); err != nil {
		return 0, err
	}

	table := pgx.Identifier{TableName(kind)}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, "TRUNCATE "+table.Sanitize()); err != nil {
		return 0, fmt.Errorf("postgres: truncate %s: %w", TableName(kind), err)
	}

	columns := make([]string, len(f.Header))
	for i, h := range f.Header {
		columns[i] = strings.TrimSpace(h)
	}

	n, err := tx.CopyFrom(ctx, table, columns, pgx.CopyFromRows(copyRows(f)))
	if err != nil {
		return 0, fmt.Errorf("postgres: copy into %s: %w", TableName(kind), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}

	r.logger.Info("dataset imported",
		zap.String("table", TableName(kind)),
		zap.Int64("rows", n))
	return n, nil
}

func (r *DatasetRepo) Count(ctx context.Context, kind domain.DatasetKind) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{TableName(kind)}.Sanitize()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", TableName(kind), err)
	}
	return n, nil
}
