package database

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// sessionsTable is valid for both MySQL and SQLite.
const sessionsTable = `
	CREATE TABLE IF NOT EXISTS sessions (
		id         VARCHAR(36)  NOT NULL PRIMARY KEY,
		token      TEXT         NOT NULL,
		updated_at TIMESTAMP    NOT NULL
	)`

// OpenDB opens and configures a connection pool for the given driver
// ("mysql" or "sqlite") and makes sure the sessions table exists.
func OpenDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	// 1. Open a new connection pool.
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}

	// 2. Configure the connection pool settings.
	// SQLite serialises writers; a single connection keeps in-memory databases shared.
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s", driver)
	}

	// 4. Create the schema.
	if _, err := db.ExecContext(ctx, sessionsTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create sessions table")
	}

	log.WithField("driver", driver).Info("database connection pool established")
	return db, nil
}
