package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yegors/aeroguard/pkg/logger"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `id, aircraft, custom, altitude_m, speed_mps, stall_speed_mps, density_kg_m3,
	verdict, language, start_lat, start_lon, end_lat, end_lon, distance_m, created_at`

// Open opens a SQLite database
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A shared in-memory database lives only as long as one connection stays open
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunStorage handles storage of simulation runs
type RunStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewRunStorage creates a new SQLite run storage
func NewRunStorage(db *sql.DB, log *logger.Logger) (*RunStorage, error) {
	storage := &RunStorage{
		db:     db,
		logger: log.Named("sqlite-runs"),
	}

	if err := storage.initDB(); err != nil {
		return nil, err
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *RunStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			aircraft TEXT NOT NULL,
			custom INTEGER NOT NULL DEFAULT 0,
			altitude_m REAL NOT NULL,
			speed_mps REAL NOT NULL,
			stall_speed_mps REAL NOT NULL,
			density_kg_m3 REAL NOT NULL,
			verdict TEXT NOT NULL,
			language TEXT NOT NULL,
			start_lat REAL,
			start_lon REAL,
			end_lat REAL,
			end_lon REAL,
			distance_m REAL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_runs_verdict ON runs(verdict)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_aircraft ON runs(aircraft)`,
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create run index: %w", err)
		}
	}

	return nil
}

// StoreRun stores a run record
func (s *RunStorage) StoreRun(record *RunRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Aircraft,
		record.Custom,
		record.AltitudeM,
		record.SpeedMps,
		record.StallSpeedMps,
		record.DensityKgM3,
		record.Verdict,
		record.Language,
		record.StartLat,
		record.StartLon,
		record.EndLat,
		record.EndLon,
		record.DistanceM,
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	s.logger.Debug("Stored run",
		logger.String("id", record.ID),
		logger.String("verdict", record.Verdict))

	return nil
}

// GetRun returns a run by ID
func (s *RunStorage) GetRun(id string) (*RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	defer rows.Close()

	records, err := s.scanRunRows(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	return records[0], nil
}

// GetRecentRuns returns the most recent runs, newest first
func (s *RunStorage) GetRecentRuns(limit int) ([]*RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	return s.scanRunRows(rows)
}

// GetRunsByVerdict returns the most recent runs that ended with the given verdict
func (s *RunStorage) GetRunsByVerdict(verdict string, limit int) ([]*RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE verdict = ? ORDER BY created_at DESC, seq DESC LIMIT ?`,
		verdict, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs by verdict: %w", err)
	}
	defer rows.Close()

	return s.scanRunRows(rows)
}

// CountByVerdict returns the number of runs per verdict
func (s *RunStorage) CountByVerdict() ([]VerdictCount, error) {
	rows, err := s.db.Query(`SELECT verdict, COUNT(*) FROM runs GROUP BY verdict ORDER BY verdict`)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := []VerdictCount{}
	for rows.Next() {
		var c VerdictCount
		if err := rows.Scan(&c.Verdict, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan verdict count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// PruneRuns keeps only the newest keep runs. keep <= 0 disables pruning.
func (s *RunStorage) PruneRuns(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	result, err := s.db.Exec(
		`DELETE FROM runs WHERE seq NOT IN (
			SELECT seq FROM runs ORDER BY created_at DESC, seq DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n > 0 {
		s.logger.Debug("Pruned runs", logger.Int64("deleted", n))
	}

	return n, nil
}

// scanRunRows scans database rows into RunRecord structs
func (s *RunStorage) scanRunRows(rows *sql.Rows) ([]*RunRecord, error) {
	records := []*RunRecord{}
	for rows.Next() {
		var record RunRecord
		var createdAt string
		var startLat, startLon, endLat, endLon, distance sql.NullFloat64

		if err := rows.Scan(
			&record.ID,
			&record.Aircraft,
			&record.Custom,
			&record.AltitudeM,
			&record.SpeedMps,
			&record.StallSpeedMps,
			&record.DensityKgM3,
			&record.Verdict,
			&record.Language,
			&startLat,
			&startLon,
			&endLat,
			&endLon,
			&distance,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var err error
		record.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		record.StartLat = startLat.Float64
		record.StartLon = startLon.Float64
		record.EndLat = endLat.Float64
		record.EndLon = endLon.Float64
		record.DistanceM = distance.Float64

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return records, nil
}

// IsNotFound reports whether err means the run does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRunNotFound)
}
