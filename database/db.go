package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"github.com/komunitas-muda/backoffice/config"
	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	// Probe the server before handing the DSN to the pool so a dead host
	// fails fast with a clear error instead of a pool timeout.
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	defer conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(pool)}, nil
}

func buildConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(pool *pgxpool.Pool) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pool.Config().ConnConfig.User,
		pool.Config().ConnConfig.Password,
		pool.Config().ConnConfig.Host,
		pool.Config().ConnConfig.Port,
		pool.Config().ConnConfig.Database,
		sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// Ping verifies the connection is alive; used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Any("args", args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) QueryWithLog(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "query"),
			slog.String("query", sql),
			slog.Any("args", args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return rows, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "query"),
		slog.String("query", sql),
		slog.Duration("took", duration),
	)
	return rows, nil
}

// InitializeSchema creates all required tables and indexes. The unique
// indexes on activity_registrations, club_registrations and the two
// leaderboard tables are load-bearing: the aggregation workflow relies on
// them to serialize concurrent fetch-or-create (see services.ScoringService).
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.AdminUser)(nil),
		(*models.Member)(nil),
		(*models.Profile)(nil),
		(*models.Activity)(nil),
		(*models.ActivityRegistration)(nil),
		(*models.Club)(nil),
		(*models.ClubRegistration)(nil),
		(*models.Achievement)(nil),
		(*models.RuangCurhat)(nil),
		(*models.MonthlyLeaderboard)(nil),
		(*models.LifetimeLeaderboard)(nil),
		(*models.CertificateTemplate)(nil),
		(*models.CustomForm)(nil),
	}

	for _, model := range tables {
		query := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists()

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name);",
		"CREATE INDEX IF NOT EXISTS idx_activities_slug ON activities(slug);",
		"CREATE INDEX IF NOT EXISTS idx_activity_registrations_activity ON activity_registrations(activity_id);",
		"CREATE INDEX IF NOT EXISTS idx_activity_registrations_user ON activity_registrations(user_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_activity_registrations_pair ON activity_registrations(user_id, activity_id);",
		"CREATE INDEX IF NOT EXISTS idx_activity_registrations_status ON activity_registrations(activity_id, status);",
		"CREATE INDEX IF NOT EXISTS idx_club_registrations_club ON club_registrations(club_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_club_registrations_pair ON club_registrations(club_id, member_id);",
		"CREATE INDEX IF NOT EXISTS idx_achievements_user ON achievements(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_achievements_status ON achievements(status);",
		"CREATE INDEX IF NOT EXISTS idx_ruang_curhats_user ON ruang_curhats(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_ruang_curhats_status ON ruang_curhats(status);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_monthly_leaderboards_user_month ON monthly_leaderboards(user_id, month);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_lifetime_leaderboards_user ON lifetime_leaderboards(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_custom_forms_feature ON custom_forms(feature_type, feature_id);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
