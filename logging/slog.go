package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/jsphweid/freqnote/util"
	"golang.org/x/exp/maps"
)

// SlogLogger writes through a log/slog text handler. Loggers derived with
// WithFields share the level of the logger they came from.
type SlogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	fields Fields
}

// NewSlogLogger logs to w, or to stderr when w is nil, at info level.
func NewSlogLogger(w io.Writer) *SlogLogger {
	if w == nil {
		w = os.Stderr
	}
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return &SlogLogger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		level:  level,
		fields: Fields{},
	}
}

func toSlog(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (s *SlogLogger) log(level Level, err error, msg string, fields ...Fields) {
	all := Fields{}
	maps.Copy(all, s.fields)
	for _, f := range fields {
		maps.Copy(all, f)
	}
	attrs := make([]slog.Attr, 0, len(all)+1)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	// sorted so records are stable across runs
	for _, k := range util.GetKeysSorted(all) {
		attrs = append(attrs, slog.Any(k, all[k]))
	}
	s.logger.LogAttrs(context.Background(), toSlog(level), msg, attrs...)
}

func (s *SlogLogger) Debug(msg string, fields ...Fields) {
	s.log(DebugLevel, nil, msg, fields...)
}

func (s *SlogLogger) Info(msg string, fields ...Fields) {
	s.log(InfoLevel, nil, msg, fields...)
}

func (s *SlogLogger) Warn(msg string, fields ...Fields) {
	s.log(WarnLevel, nil, msg, fields...)
}

func (s *SlogLogger) Error(err error, msg string, fields ...Fields) {
	s.log(ErrorLevel, err, msg, fields...)
}

func (s *SlogLogger) WithFields(fields Fields) Logger {
	merged := Fields{}
	maps.Copy(merged, s.fields)
	maps.Copy(merged, fields)
	return &SlogLogger{logger: s.logger, level: s.level, fields: merged}
}

func (s *SlogLogger) WithContext(ctx context.Context) Logger {
	if fields := FieldsFromContext(ctx); len(fields) > 0 {
		return s.WithFields(fields)
	}
	return s
}

func (s *SlogLogger) SetLevel(level Level) {
	s.level.Set(toSlog(level))
}
