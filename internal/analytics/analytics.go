package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/nlpbrowser/internal/client"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/migrations"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one recorded backend call. It never carries the prompt or the result.
type Entry struct {
	ID           int64
	RequestID    string
	Kind         string // analysis kind, or "health"/"info"
	Path         string
	Method       string
	StatusCode   int // 0 when no response was received
	RequestSize  int64
	ResponseSize int64
	DurationMs   int64
	ErrorMessage string
	Timestamp    time.Time
	BaseURL      string
}

// Stats aggregates the entries of one kind/path/method
type Stats struct {
	Kind          string
	Path          string
	Method        string
	TotalCalls    int
	SuccessCount  int
	ErrorCount    int
	NetworkErrors int // DNS, refused connection, malformed body (status code 0)
	AvgDurationMs float64
	MinDurationMs int64
	MaxDurationMs int64
	TotalReqSize  int64
	TotalRespSize int64
	StatusCodes   map[int]int
	LastCalled    time.Time
}

// SuccessRate returns the share of 2xx calls in percent
func (s Stats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.TotalCalls) * 100
}

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// EntryFromCall converts a finished client call into an Entry
func EntryFromCall(baseURL string, call client.Call) Entry {
	kind := "info"
	if k, ok := types.KindForPath(call.Path); ok {
		kind = string(k)
	} else if call.Path == types.PathHealth {
		kind = "health"
	}

	e := Entry{
		RequestID:    call.RequestID,
		Kind:         kind,
		Path:         call.Path,
		Method:       call.Method,
		StatusCode:   call.Status,
		RequestSize:  int64(call.RequestSize),
		ResponseSize: int64(call.ResponseSize),
		DurationMs:   call.Duration.Milliseconds(),
		Timestamp:    call.Timestamp,
		BaseURL:      baseURL,
	}
	if call.Err != nil {
		e.ErrorMessage = call.Err.Error()
		// a decode failure still has a 2xx status; count it as a network error
		if client.StatusCode(call.Err) == 0 {
			e.StatusCode = 0
		}
	}
	return e
}

// Observer returns a client observer that records every call.
// Save failures are reported through onErr, which may be nil.
func (m *Manager) Observer(baseURL string, onErr func(error)) client.Observer {
	return func(call client.Call) {
		if err := m.Save(EntryFromCall(baseURL, call)); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO analytics (request_id, kind, path, method, status_code, request_size, response_size, duration_ms, error_message, timestamp, base_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	// Format timestamp for SQLite in local time (YYYY-MM-DD HH:MM:SS)
	timestampStr := entry.Timestamp.Local().Format(timestampLayout)

	var errMsg sql.NullString
	if entry.ErrorMessage != "" {
		errMsg = sql.NullString{String: entry.ErrorMessage, Valid: true}
	}

	_, err := m.db.Exec(query,
		entry.RequestID,
		entry.Kind,
		entry.Path,
		entry.Method,
		entry.StatusCode,
		entry.RequestSize,
		entry.ResponseSize,
		entry.DurationMs,
		errMsg,
		timestampStr,
		entry.BaseURL,
	)
	if err != nil {
		return fmt.Errorf("failed to save analytics entry: %w", err)
	}

	return nil
}

// LoadRecent returns the latest entries for baseURL ("" matches every backend)
func (m *Manager) LoadRecent(baseURL string, limit int) ([]Entry, error) {
	query := `
		SELECT id, request_id, kind, path, method, status_code, request_size, response_size, duration_ms, error_message, timestamp, base_url
		FROM analytics
		WHERE base_url = ? OR ? = ''
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, baseURL, baseURL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestamp string
		var errorMsg sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.Kind,
			&e.Path,
			&e.Method,
			&e.StatusCode,
			&e.RequestSize,
			&e.ResponseSize,
			&e.DurationMs,
			&errorMsg,
			&timestamp,
			&e.BaseURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics entry: %w", err)
		}

		if errorMsg.Valid {
			e.ErrorMessage = errorMsg.String
		}
		e.Timestamp = parseTimestamp(timestamp)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetStatsPerKind aggregates calls by kind for baseURL ("" matches every backend)
func (m *Manager) GetStatsPerKind(baseURL string) ([]Stats, error) {
	// Use a subquery with JSON aggregation to get status codes in a single query
	query := `
		WITH status_codes_agg AS (
			SELECT
				kind,
				path,
				method,
				json_group_object(CAST(status_code AS TEXT), count) as status_codes_json
			FROM (
				SELECT kind, path, method, status_code, COUNT(*) as count
				FROM analytics
				WHERE base_url = ? OR ? = ''
				GROUP BY kind, path, method, status_code
			)
			GROUP BY kind, path, method
		)
		SELECT
			a.kind,
			a.path,
			a.method,
			COUNT(*) as total_calls,
			SUM(CASE WHEN a.status_code >= 200 AND a.status_code < 300 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN a.status_code >= 400 THEN 1 ELSE 0 END) as error_count,
			SUM(CASE WHEN a.status_code = 0 THEN 1 ELSE 0 END) as network_errors,
			AVG(a.duration_ms) as avg_duration,
			MIN(a.duration_ms) as min_duration,
			MAX(a.duration_ms) as max_duration,
			SUM(a.request_size) as total_req_size,
			SUM(a.response_size) as total_resp_size,
			MAX(a.timestamp) as last_called,
			COALESCE(s.status_codes_json, '{}') as status_codes_json
		FROM analytics a
		LEFT JOIN status_codes_agg s ON a.kind = s.kind AND a.path = s.path AND a.method = s.method
		WHERE a.base_url = ? OR ? = ''
		GROUP BY a.kind, a.path, a.method
		ORDER BY last_called DESC
	`

	rows, err := m.db.Query(query, baseURL, baseURL, baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats per kind: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var lastCalled sql.NullString
		var statusCodesJSON string

		err := rows.Scan(
			&s.Kind,
			&s.Path,
			&s.Method,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.NetworkErrors,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&s.TotalReqSize,
			&s.TotalRespSize,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if lastCalled.Valid {
			s.LastCalled = parseTimestamp(lastCalled.String)
		}

		s.StatusCodes = make(map[int]int)
		var statusCodesMap map[string]int
		if err := json.Unmarshal([]byte(statusCodesJSON), &statusCodesMap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
		}
		for codeStr, count := range statusCodesMap {
			if code, err := strconv.Atoi(codeStr); err == nil {
				s.StatusCodes[code] = count
			}
		}

		statsList = append(statsList, s)
	}

	return statsList, rows.Err()
}

// parseTimestamp reads a stored timestamp as local time (SQLite stores without timezone info)
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM analytics")
	if err != nil {
		return fmt.Errorf("failed to clear analytics: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
