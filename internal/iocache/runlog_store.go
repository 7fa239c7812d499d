package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
// The schema is migrated to the latest version on open.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	switch backend {
	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported runlog backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, backend, connStr); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run log tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

func (rs *RunStoreImpl) disabled() bool {
	return rs.backend == schema.NoneBackend || rs.db == nil
}

// placeholders returns n comma separated bind parameters.
func (rs *RunStoreImpl) placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = placeholder(rs.backend, i+1)
	}
	return strings.Join(ps, ", ")
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, source schema.RunSource, configParams map[string]any) (int64, error) {
	if rs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	table := quoteTableName(compareRunsTable, rs.backend)
	args := []any{formatTime(startTime, rs.backend), string(source), string(configJSON)}

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, source, config_params) VALUES ($1, $2, $3) RETURNING run_id`, table)
		err = rs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, source, config_params) VALUES (?, ?, ?)`, table)
		var result sql.Result
		result, err = rs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// RecordReports stores the listing rows of a run in one transaction.
func (rs *RunStoreImpl) RecordReports(runID int64, reports []schema.RunReportRecord) error {
	if rs.disabled() || len(reports) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, report_index, title, report_date, leader_count, metric_count) VALUES (%s)`,
		quoteTableName(runReportsTable, rs.backend), rs.placeholders(6))

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare report insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range reports {
		if _, err := stmt.Exec(runID, r.ReportIndex, r.Title, r.ReportDate, r.LeaderCount, r.MetricCount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record report %d of run %d: %w", r.ReportIndex, runID, err)
		}
	}
	return tx.Commit()
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, counts contract.RunCounts) error {
	if rs.disabled() {
		return nil
	}

	table := quoteTableName(compareRunsTable, rs.backend)

	var startTime nullTime
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, table, placeholder(rs.backend, 1))
	if err := rs.db.QueryRow(query, runID).Scan(&startTime); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(startTime.Time).Milliseconds()

	update := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, report_count = %s, leader_count = %s, metric_count = %s WHERE run_id = %s`,
		table,
		placeholder(rs.backend, 1), placeholder(rs.backend, 2), placeholder(rs.backend, 3),
		placeholder(rs.backend, 4), placeholder(rs.backend, 5), placeholder(rs.backend, 6))
	args := []any{formatTime(endTime, rs.backend), durationMs, counts.Reports, counts.Leaders, counts.Metrics, runID}
	if _, err := rs.db.Exec(update, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetStatus returns status information about the run log.
func (rs *RunStoreImpl) GetStatus() (schema.RunLogStatus, error) {
	status := schema.RunLogStatus{
		Backend:      string(rs.backend),
		Connected:    rs.db != nil,
		RunsBySource: make(map[string]int),
		TableSizes:   make(map[string]int64),
	}
	if rs.disabled() {
		return status, nil
	}

	runs := quoteTableName(compareRunsTable, rs.backend)

	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest nullTime
		row := rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if err := row.Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.LastRunTime = last.Time
		status.OldestRunTime = oldest.Time

		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(report_count), 0) FROM %s", runs))
		if err := row.Scan(&status.TotalReports); err != nil {
			return status, fmt.Errorf("failed to get total reports: %w", err)
		}

		if err := rs.countBySource(status.RunsBySource); err != nil {
			return status, err
		}
	}

	for _, table := range runLogTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		if err := rs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	var version int64
	var dirty bool
	if err := rs.db.QueryRow("SELECT version, dirty FROM schema_migrations LIMIT 1").Scan(&version, &dirty); err == nil {
		status.MigrationLevel = uint(version)
		status.MigrationsDirty = dirty
	}

	return status, nil
}

func (rs *RunStoreImpl) countBySource(into map[string]int) error {
	query := fmt.Sprintf("SELECT source, COUNT(*) FROM %s GROUP BY source", quoteTableName(compareRunsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to count runs by source: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return fmt.Errorf("failed to scan run source count: %w", err)
		}
		into[source] = count
	}
	return rows.Err()
}

// GetAllRuns retrieves all runs from the store.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, report_count, leader_count, metric_count, source, config_params
		FROM %s ORDER BY run_id`, quoteTableName(compareRunsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var start, end nullTime
		var source string
		if err := rows.Scan(&record.RunID, &start, &end, &record.RunDurationMs, &record.ReportCount,
			&record.LeaderCount, &record.MetricCount, &source, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartTime = start.Time
		if end.Valid {
			endTime := end.Time
			record.EndTime = &endTime
		}
		record.Source = schema.RunSource(source)
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllRunReports retrieves all report rows from the store.
func (rs *RunStoreImpl) GetAllRunReports() ([]schema.RunReportRecord, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, report_index, title, report_date, leader_count, metric_count
		FROM %s ORDER BY run_id, report_index`, quoteTableName(runReportsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunReportRecord
	for rows.Next() {
		var r schema.RunReportRecord
		if err := rows.Scan(&r.RunID, &r.ReportIndex, &r.Title, &r.ReportDate, &r.LeaderCount, &r.MetricCount); err != nil {
			return nil, fmt.Errorf("failed to scan run report: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run reports: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db == nil {
		return nil
	}
	return rs.db.Close()
}

// nullTime scans timestamps stored natively or as RFC3339 text.
type nullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (nt *nullTime) Scan(src any) error {
	var err error
	switch v := src.(type) {
	case nil:
		nt.Time, nt.Valid = time.Time{}, false
		return nil
	case time.Time:
		nt.Time = v
	case string:
		nt.Time, err = time.Parse(time.RFC3339Nano, v)
	case []byte:
		nt.Time, err = time.Parse(time.RFC3339Nano, string(v))
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
	if err != nil {
		return fmt.Errorf("failed to parse timestamp: %w", err)
	}
	nt.Valid = true
	return nil
}
