// Package log provides a zerolog-based logger. By default it writes
// human-readable output to stderr; Init switches it to a JSON log sink
// in an SQLite database, which the logs subcommand can query back.
package log

import (
	"database/sql"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"regrep/pkg/appdir"
)

var (
	mu               sync.RWMutex
	pkgLogger        = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	dbWriterInstance *sqliteWriter
	dbHandle         *sql.DB

	// ErrNotInitialized is returned by retrieval functions before Init.
	ErrNotInitialized = errors.New("log: logger not initialized, call log.Init() first")
)

// SetLevel adjusts the global minimum level; unknown names keep info.
func SetLevel(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}

// sqliteWriter is an io.Writer that stores every log event as one row.
type sqliteWriter struct {
	db   *sql.DB
	stmt *sql.Stmt
	mu   sync.Mutex
}

func newSQLiteWriter(dbPath string) (*sqliteWriter, *sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite db %s: %w", dbPath, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite db %s: %w", dbPath, err)
	}

	createTableSQL := `
    CREATE TABLE IF NOT EXISTS logs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
        log_data TEXT NOT NULL
    );`
	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create logs table: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO logs (log_data) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	return &sqliteWriter{db: db, stmt: stmt}, db, nil
}

func (w *sqliteWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.stmt.Exec(string(p)); err != nil {
		stdlog.Printf("ERROR writing log to SQLite: %v\n", err)
		return 0, err
	}
	return len(p), nil
}

func (w *sqliteWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var firstErr error
	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			firstErr = fmt.Errorf("error closing statement: %w", err)
		}
		w.stmt = nil
	}
	if w.db != nil {
		if err := w.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("error closing db: %w", err)
		}
		w.db = nil
	}
	return firstErr
}

// Init switches the package logger to an SQLite sink. A relative
// dbFile lands in the per-user app directory.
func Init(dbFile string) error {
	if dbFile == "" {
		return fmt.Errorf("logger needs an explicit dbFile")
	}
	dbPath := dbFile
	if !filepath.IsAbs(dbPath) {
		dbPath = path.Join(appdir.AppDir(), dbFile)
	}

	mu.Lock()
	defer mu.Unlock()
	if dbWriterInstance != nil {
		return fmt.Errorf("logger already initialized")
	}

	writer, db, err := newSQLiteWriter(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite writer: %w", err)
	}
	dbWriterInstance = writer
	dbHandle = db

	zerolog.TimeFieldFormat = time.RFC3339Nano
	pkgLogger = zerolog.New(writer).With().Timestamp().Logger()
	return nil
}

// Close flushes and closes the SQLite sink, reverting to the console
// logger. Safe to call when Init never ran.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if dbWriterInstance == nil {
		return nil
	}
	writer := dbWriterInstance
	dbWriterInstance = nil
	dbHandle = nil
	pkgLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if err := writer.close(); err != nil {
		return fmt.Errorf("error closing SQLite logger: %w", err)
	}
	return nil
}

func Debug() *zerolog.Event { return pkgLogger.Debug() }
func Info() *zerolog.Event  { return pkgLogger.Info() }
func Warn() *zerolog.Event  { return pkgLogger.Warn() }
func Error() *zerolog.Event { return pkgLogger.Error() }
func Fatal() *zerolog.Event { return pkgLogger.Fatal() }

// Printf sends an info-level event. Arguments are handled in the
// manner of fmt.Printf.
func Printf(format string, v ...interface{}) {
	pkgLogger.Info().CallerSkipFrame(1).Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	pkgLogger.Fatal().Msgf(format, v...)
}

// LogEntry is one row retrieved from the SQLite sink.
type LogEntry struct {
	ID         int64
	InsertedAt time.Time
	LogData    string
}

func getHandle() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if dbHandle == nil {
		return nil, ErrNotInitialized
	}
	return dbHandle, nil
}

// parseDBTimestamp tries common SQLite timestamp formats.
func parseDBTimestamp(ts string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GetLastNLogs retrieves the most recent n log entries, oldest first.
// Returns ErrNotInitialized if log.Init() has not been called.
func GetLastNLogs(n int) ([]LogEntry, error) {
	handle, err := getHandle()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []LogEntry{}, nil
	}

	rows, err := handle.Query(`SELECT id, inserted_at, log_data FROM logs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query last %d logs: %w", n, err)
	}
	defer rows.Close()

	var logs []LogEntry
	for rows.Next() {
		var entry LogEntry
		var insertedAt string
		if err := rows.Scan(&entry.ID, &insertedAt, &entry.LogData); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entry.InsertedAt = parseDBTimestamp(insertedAt)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}

	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}
