package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore is a zap core that copies every written entry into a LogSink
type DBCore struct {
	zapcore.Core
	sink   LogSink
	fields []zapcore.Field
}

// NewDBCore wraps an existing core (like the console logger) and adds the sink
func NewDBCore(baseCore zapcore.Core, sink LogSink) zapcore.Core {
	return &DBCore{
		Core: baseCore,
		sink: sink,
	}
}

// With keeps the sink attached to child loggers
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	return &DBCore{
		Core:   c.Core.With(fields),
		sink:   c.sink,
		fields: append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	out := LogEntry{
		Level:   entry.Level,
		Message: entry.Message,
		Caller:  entry.Caller.Function,
		Time:    entry.Time,
	}

	for _, f := range append(append([]zapcore.Field{}, c.fields...), fields...) {
		switch f.Key {
		case "grn_no":
			out.GRNNo = f.String
		case "request_id":
			out.RequestID = f.String
		}
	}

	c.sink.AddLog(out)

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
