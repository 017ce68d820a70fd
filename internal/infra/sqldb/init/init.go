package infra_sqldb_init

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

var ErrUnsupportedURL = errors.New("unsupported database url")

func init() {
	sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)
}

// Source resolves DATABASE_URL into a driver name, DSN and migration dialect.
func Source(url string) (driver, dsn, dialect string, err error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", url, migrations.DialectPostgres, nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqliteDriver, strings.TrimPrefix(url, "sqlite://"), migrations.DialectSQLite, nil
	case strings.HasPrefix(url, "file:"):
		return sqliteDriver, url, migrations.DialectSQLite, nil
	}
	return "", "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(url))
}

// Open connects to the database and brings its schema up to date.
func Open(ctx context.Context, cfg config.Database) (*sqlx.DB, error) {
	driver, dsn, dialect, err := Source(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == sqliteDriver {
		// one writer; also keeps a :memory: database alive across calls
		db.SetMaxOpenConns(1)
	}

	if err := migrations.Run(ctx, db.DB, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func redact(url string) string {
	if i := strings.Index(url, "@"); i >= 0 {
		if j := strings.Index(url, "://"); j >= 0 && j < i {
			return url[:j+3] + "***" + url[i:]
		}
	}
	return url
}
