package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/student"
	"github.com/trezcool/edutrack/storage/kv"
)

// NewConfig returns a TEST config backed by the in-memory store, without login delay.
func NewConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "EduTrack",
		Build:     "test",
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			Address:            ":0",
			Host:               "localhost",
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
		},
		Storage:    core.StorageConfig{Engine: core.StorageMemory},
		Attendance: core.AttendanceConfig{DuplicatePolicy: student.DuplicateByBoth, Timezone: "UTC"},
		Login:      core.LoginConfig{Email: "admin@school.com", Password: "123456"},
	}
}

// LogEntry is one call made to a Logger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger is a core.Logger keeping every entry in memory.
type Logger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Levels returns the level of every entry, in order.
func (l *Logger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		levels = append(levels, e.Level)
	}
	return levels
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

// FailingStore wraps a kv.Store; GetErr and PutErr, when set, are returned instead of calling it.
type FailingStore struct {
	kv.Store
	GetErr error
	PutErr error
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.Store.Get(ctx, key)
}

func (s *FailingStore) Put(ctx context.Context, key string, value []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	return s.Store.Put(ctx, key, value)
}

// Fatal stops the test when err is not nil.
func Fatal(t *testing.T, err error, what string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s failed: %v", what, err)
	}
}
