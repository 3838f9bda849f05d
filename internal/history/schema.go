package history

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/logger"
)

const (
	SchemaVersion = 2

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS samples (
	       id             INTEGER PRIMARY KEY AUTOINCREMENT,
	       timestamp_ms   INTEGER NOT NULL,
	       raw_ms         INTEGER NOT NULL CHECK (typeof(raw_ms) = 'integer'),
	       idle_ms        INTEGER NOT NULL CHECK (typeof(idle_ms) = 'integer'),
	       vendor_release INTEGER NOT NULL,
	       gated          INTEGER NOT NULL CHECK (gated IN (0, 1))
	   );`

	insertSampleSQL = `
    INSERT INTO samples (
        timestamp_ms, raw_ms, idle_ms, vendor_release, gated
    ) VALUES (?, ?, ?, ?, ?)`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				log.Debug().Err(err).Msg("Failed to rollback transaction")
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Phase string
			Error string
		}{
			Phase: "create_tables",
			Error: err.Error(),
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Phase string
			Error string
		}{
			Phase: "record_version",
			Error: err.Error(),
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Debug().
		Int("version", SchemaVersion).
		Msg("History schema initialized")

	return nil
}

// GetSchemaVersion returns the current schema version, 0 for a new database
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()

	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Table string
			Error string
		}{
			Table: tableName,
			Error: err.Error(),
		})
	}

	return exists, nil
}

// ValidateAndUpdateSchema creates the schema on a new database. A database
// written by another schema version is copied aside next to dbPath and
// recreated.
func ValidateAndUpdateSchema(db *sql.DB, dbPath string, log logger.Logger) error {
	errFactory := errors.New()

	version, err := GetSchemaVersion(db)
	if err != nil {
		return errFactory.Wrap(ErrSchemaValidationFailed, err)
	}

	if version == SchemaVersion {
		return nil
	}

	if version != 0 {
		backupPath := filepath.Join(filepath.Dir(dbPath),
			fmt.Sprintf("history_v%d_%s.db", version, time.Now().UTC().Format("20060102T150405Z")))

		if _, err := db.Exec("VACUUM INTO ?", backupPath); err != nil {
			return errFactory.WithData(ErrSchemaMigrationFailed, struct {
				Phase string
				Path  string
				Error string
			}{
				Phase: "backup",
				Path:  backupPath,
				Error: err.Error(),
			})
		}

		log.Info().
			Str("path", backupPath).
			Int("version", version).
			Msg("History database backup created")

		for _, table := range []string{"samples", "schema_versions"} {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return errFactory.Wrap(ErrSchemaMigrationFailed, err)
			}
		}
	}

	return InitSchema(db, log)
}
