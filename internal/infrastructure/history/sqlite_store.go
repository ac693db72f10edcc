package history

import (
	"database/sql"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/pkg/filesystem"
	"github.com/doeshing/vitals-go/internal/ports"
)

const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists evaluation history in a SQLite database. When the
// database cannot be opened it degrades to a FileStore next to it.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// DefaultPath is ~/.vitals/history/history.db.
func DefaultPath() string {
	return filepath.Join(filesystem.StateDir(), "history", "history.db")
}

// NewSQLiteStore creates (or opens) the database at path ("" means DefaultPath).
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = DefaultPath()
	}
	path = filesystem.ExpandPath(path)
	fallback := NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")

	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: fallback}
	}
	store := &SQLiteStore{db: db, path: path, fallback: fallback}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path, fallback: fallback}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		temperature REAL,
		pulse_rate REAL,
		spo2 REAL,
		temperature_status TEXT,
		pulse_rate_status TEXT,
		spo2_status TEXT,
		language TEXT,
		policy TEXT,
		all_ok INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.EvaluationRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO evaluations
		(id, timestamp, temperature, pulse_rate, spo2, temperature_status, pulse_rate_status, spo2_status, language, policy, all_ok)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(storedTimeFormat),
		record.Readings.Temperature,
		record.Readings.PulseRate,
		record.Readings.Spo2,
		string(record.Statuses[domain.VitalTemperature]),
		string(record.Statuses[domain.VitalPulseRate]),
		string(record.Statuses[domain.VitalSpo2]),
		string(record.Language),
		string(record.Policy),
		boolToInt(record.AllOk),
	)
	return err
}

// Records returns history entries, newest first. A non-empty status keeps
// only evaluations where at least one vital had that status.
func (s *SQLiteStore) Records(limit int, status domain.VitalStatus) ([]domain.EvaluationRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, status)
	}
	builder := strings.Builder{}
	builder.WriteString(`SELECT id, timestamp, temperature, pulse_rate, spo2,
		temperature_status, pulse_rate_status, spo2_status, language, policy, all_ok FROM evaluations`)
	var args []interface{}
	if status != "" {
		builder.WriteString(" WHERE temperature_status = ? OR pulse_rate_status = ? OR spo2_status = ?")
		args = append(args, string(status), string(status), string(status))
	}
	builder.WriteString(" ORDER BY timestamp DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.EvaluationRecord
	for rows.Next() {
		var (
			rec                          domain.EvaluationRecord
			ts, lang, policy             string
			temp, pulse, oxygen          sql.NullFloat64
			tempStatus, pulseStatus, spo string
			allOk                        int
		)
		if err := rows.Scan(&rec.ID, &ts, &temp, &pulse, &oxygen,
			&tempStatus, &pulseStatus, &spo, &lang, &policy, &allOk); err != nil {
			return nil, err
		}
		rec.Readings = domain.Readings{
			Temperature: nullToNaN(temp),
			PulseRate:   nullToNaN(pulse),
			Spo2:        nullToNaN(oxygen),
		}
		if t, err := time.Parse(storedTimeFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Statuses = make(map[domain.VitalKind]domain.VitalStatus, 3)
		for kind, st := range map[domain.VitalKind]string{
			domain.VitalTemperature: tempStatus,
			domain.VitalPulseRate:   pulseStatus,
			domain.VitalSpo2:        spo,
		} {
			if st != "" {
				rec.Statuses[kind] = domain.VitalStatus(st)
			}
		}
		rec.Language = domain.Language(lang)
		rec.Policy = domain.EvalPolicy(policy)
		rec.AllOk = allOk == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM evaluations")
	return err
}

// PruneOlderThan removes entries older than days.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if s.db == nil {
		return s.fallback.PruneOlderThan(days)
	}
	cutoff := time.Now().AddDate(0, 0, -days).UTC().Format(storedTimeFormat)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM evaluations WHERE timestamp < ?", cutoff)
	return err
}

// ExportJSON writes the evaluations table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the active backing path.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// nullToNaN maps NULL back to NaN; SQLite stores a NaN REAL as NULL.
func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
