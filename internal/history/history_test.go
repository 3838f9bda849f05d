package history_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/history"
	"codeberg.org/mutker/xprintidle/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceDisabled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	rec, err := history.NewService(history.Config{DBPath: dbPath}, logger.Default())
	require.NoError(t, err)

	require.NoError(t, rec.Record(context.Background(), &history.Sample{Timestamp: time.Now()}))
	require.NoError(t, rec.Close())

	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "disabled history must not create a database")
}

func TestNewServiceInvalidConfig(t *testing.T) {
	_, err := history.NewService(history.Config{Enabled: true}, logger.Default())

	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))
}

type storedSample struct {
	timestampMs   int64
	rawMs         int64
	idleMs        int64
	vendorRelease int64
	gated         int
}

func readSamples(t *testing.T, dbPath string) []storedSample {
	t.Helper()

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`
        SELECT timestamp_ms, raw_ms, idle_ms, vendor_release, gated
        FROM samples
        ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var samples []storedSample
	for rows.Next() {
		var s storedSample
		require.NoError(t, rows.Scan(&s.timestampMs, &s.rawMs, &s.idleMs, &s.vendorRelease, &s.gated))
		samples = append(samples, s)
	}
	require.NoError(t, rows.Err())

	return samples
}

func TestRecordStoresSamples(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	rec, err := history.NewService(history.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)

	first := &history.Sample{
		Timestamp:     time.UnixMilli(1700000000123),
		RawMillis:     1500,
		Millis:        601500,
		VendorRelease: 11804000,
		Gated:         true,
	}
	second := &history.Sample{
		Timestamp:     time.UnixMilli(1700000060999),
		RawMillis:     20,
		Millis:        20,
		VendorRelease: 12101004,
	}

	require.NoError(t, rec.Record(ctx, first))
	require.NoError(t, rec.Record(ctx, second))
	require.NoError(t, rec.Close())

	samples := readSamples(t, dbPath)
	require.Len(t, samples, 2)

	assert.Equal(t, storedSample{
		timestampMs:   1700000000123,
		rawMs:         1500,
		idleMs:        601500,
		vendorRelease: 11804000,
		gated:         1,
	}, samples[0])
	assert.Equal(t, storedSample{
		timestampMs:   1700000060999,
		rawMs:         20,
		idleMs:        20,
		vendorRelease: 12101004,
	}, samples[1])
}

func TestRecordRejectsEmptySample(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	rec, err := history.NewService(history.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)
	defer rec.Close()

	err = rec.Record(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, history.ErrInvalidSample, errors.CodeOf(err))
}

func TestSchemaVersionMismatchRecreates(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`
        CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
        INSERT INTO schema_versions (version, applied_at) VALUES (99, datetime('now'));
    `)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := history.NewRepository(history.Config{DBPath: dbPath, Enabled: true}, logger.Default())
	require.NoError(t, err)
	defer repo.Close()

	backups, err := filepath.Glob(filepath.Join(dir, "history_v99_*.db"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	require.NoError(t, repo.Insert(context.Background(), &history.Sample{Timestamp: time.UnixMilli(1)}))
	assert.Len(t, readSamples(t, dbPath), 1)
}
