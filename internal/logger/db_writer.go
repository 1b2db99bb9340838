package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/config"
	"grn-console/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	GRNNo     string
	RequestID string
	Caller    string // Function name
	Time      time.Time
}

// LogSink receives entries copied out of the zap core
type LogSink interface {
	AddLog(entry LogEntry)
}

// DBLogWriter handles the async writing into the logs collection
type DBLogWriter struct {
	collection *mongo.Collection
	logChan    chan LogEntry
	done       chan struct{}
	appId      string

	mu     sync.RWMutex
	closed bool
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		collection: mongodb.DB.Collection("logs"),
		logChan:    make(chan LogEntry, 1000),
		done:       make(chan struct{}),
		appId:      cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the zap core; it never blocks the request path
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

// Close stops accepting entries and waits for the buffered ones to be written
func (w *DBLogWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)
	for entry := range w.logChan {
		logRecord := common_models.Log{
			AppId:        w.appId,
			Message:      entry.Message,
			GRNNo:        entry.GRNNo,
			RequestID:    entry.RequestID,
			Caller:       entry.Caller,
			LogLevelId:   mapLevelToInt(entry.Level),
			CreatedOnUtc: entry.Time.UTC(),
		}

		// Errors are ignored so logging never takes the service down
		_, _ = w.collection.InsertOne(context.Background(), logRecord)
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
