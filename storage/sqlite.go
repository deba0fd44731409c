package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dragosrosca/usage-reporting/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("storage")

// sqliteStorage is the sqlite implementation for report persistence
type sqliteStorage struct {
	db               *sql.DB
	retentionSeconds int
	cancelFunc       context.CancelFunc
	wg               sync.WaitGroup
}

// NewSQLiteStorage creates the database, schema, and starts the retention cleaner
func NewSQLiteStorage(dbPath string, retentionSeconds int) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteStorage{
		db:               db,
		retentionSeconds: retentionSeconds,
		cancelFunc:       cancel,
	}

	s.startRetentionCleaner(ctx)

	return s, nil
}

func prepareDirectories(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		instance_id  TEXT    NOT NULL,
		window_start INTEGER NOT NULL,
		window_end   INTEGER NOT NULL,
		average      REAL    NOT NULL,
		minimum      REAL    NOT NULL,
		maximum      REAL    NOT NULL,
		recorded_at  INTEGER NOT NULL,
		PRIMARY KEY (instance_id, window_start)
	);

	CREATE INDEX IF NOT EXISTS idx_reports_recorded_at ON reports(recorded_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveReport upserts the report for its instance and window; re-running a cycle
// inside the same month overwrites that month's row instead of duplicating it
func (s *sqliteStorage) SaveReport(ctx context.Context, report common.InstanceReport, recordedAt int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (instance_id, window_start, window_end, average, minimum, maximum, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(instance_id, window_start) DO UPDATE SET
			window_end=excluded.window_end,
			average=excluded.average,
			minimum=excluded.minimum,
			maximum=excluded.maximum,
			recorded_at=excluded.recorded_at
	`, report.InstanceID, report.WindowStart, report.WindowEnd,
		report.Metrics.Average, report.Metrics.Minimum, report.Metrics.Maximum, recordedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}

	return nil
}

// GetLatestReports fetches the most recent report for each instance
func (s *sqliteStorage) GetLatestReports(ctx context.Context) ([]common.StoredReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_id, window_start, window_end, average, minimum, maximum, recorded_at
		FROM (
			SELECT *,
				ROW_NUMBER() OVER(PARTITION BY instance_id ORDER BY window_start DESC) as rn
			FROM reports
		)
		WHERE rn = 1
		ORDER BY instance_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanReports(rows)
}

// GetReportHistory returns all retained reports for a specific instance, oldest first
func (s *sqliteStorage) GetReportHistory(ctx context.Context, instanceID string) ([]common.StoredReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_id, window_start, window_end, average, minimum, maximum, recorded_at
		FROM reports
		WHERE instance_id = ?
		ORDER BY window_start
	`, instanceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("instance not found")
	}

	return reports, nil
}

func scanReports(rows *sql.Rows) ([]common.StoredReport, error) {
	var results []common.StoredReport

	for rows.Next() {
		var r common.StoredReport

		err := rows.Scan(&r.InstanceID, &r.WindowStart, &r.WindowEnd,
			&r.Metrics.Average, &r.Metrics.Minimum, &r.Metrics.Maximum, &r.RecordedAt)
		if err != nil {
			return nil, err
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

func (s *sqliteStorage) cleanRetainedReports(ctx context.Context) error {
	nowSec := time.Now().Unix()
	cutoff := nowSec - int64(s.retentionSeconds)
	_, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE recorded_at < ?", cutoff)
	return err
}

func (s *sqliteStorage) startRetentionCleaner(ctx context.Context) {
	s.wg.Add(1)

	// max(RetentionSeconds/10, 60)
	intervalSec := s.retentionSeconds / 10
	if intervalSec < 60 {
		intervalSec = 60
	}

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("running retention cleanup")

				err := s.cleanRetainedReports(ctx)
				if err != nil {
					log.Warn("failed to cleanup retained reports", "error", err)
				}
			}
		}
	}()
}

// Close closes the database and stops background routines
func (s *sqliteStorage) Close() error {
	s.cancelFunc()
	s.wg.Wait()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
