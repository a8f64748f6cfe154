package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/recipeapi/config"
	"github.com/padraicbc/recipeapi/models"
)

// Setup opens a database connection using the provided config.
func Setup(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	return Open(ctx, cfg.DBDriver, cfg.DSN(), cfg.Debug)
}

// Open connects to dsn with the named driver (postgres, mysql or sqlite) and
// pings it. MySQL DSNs need parseTime=true; SQLite DSNs should enable
// _foreign_keys so ON DELETE CASCADE is enforced.
func Open(ctx context.Context, driver, dsn string, debug bool) (*bun.DB, error) {
	var db *bun.DB

	switch driver {
	case config.DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverMySQL:
		sqldb, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db = bun.NewDB(sqldb, mysqldialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite allows a single writer.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	return db, nil
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("creating table for %T: %w", (*models.User)(nil), err)
	}

	_, err := db.NewCreateTable().Model((*models.Recipe)(nil)).IfNotExists().
		ForeignKey("(?) REFERENCES ? (?) ON DELETE CASCADE", bun.Ident("user_id"), bun.Ident("users"), bun.Ident("id")).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("creating table for %T: %w", (*models.Recipe)(nil), err)
	}

	if _, err := db.NewCreateTable().Model((*models.Session)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("creating table for %T: %w", (*models.Session)(nil), err)
	}

	return nil
}
