package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)
	for in, want := range map[string]Level{
		"debug": DebugLevel,
		"INFO":  InfoLevel,
		"":      InfoLevel,
		"warn":  WarnLevel,
		"Error": ErrorLevel,
	} {
		got, err := ParseLevel(in)
		assert.NoError(err)
		assert.Equal(want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(err)
}

func TestSlogLoggerLevelsAndFields(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	l := NewSlogLogger(&buf)

	l.Debug("hidden")
	assert.Empty(buf.String())

	l.WithFields(Fields{"line": 3}).Info("converted", Fields{"tokens": 2})
	out := buf.String()
	assert.Contains(out, "msg=converted")
	assert.Contains(out, "line=3")
	assert.Contains(out, "tokens=2")

	buf.Reset()
	l.SetLevel(DebugLevel)
	l.Debug("shown")
	assert.Contains(buf.String(), "level=DEBUG")

	buf.Reset()
	l.Error(errors.New("boom"), "failed")
	assert.Contains(buf.String(), "error=boom")
}

func TestErrorIsLoggedOnOneLine(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	l := NewSlogLogger(&buf)

	l.Error(errors.Wrap(errors.New("boom"), "reading block"), "failed", Fields{"line": 2})
	out := buf.String()
	assert.Contains(out, `error="reading block: boom"`)
	assert.Contains(out, "line=2")
	assert.Equal(1, strings.Count(out, "\n"))
	assert.NotContains(out, "logging_test.go")
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(&buf)
	child := l.WithFields(Fields{"a": 1})
	l.SetLevel(ErrorLevel)
	child.Warn("quiet")
	assert.Empty(t, buf.String())
}

func TestContextFields(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	l := NewSlogLogger(&buf)

	ctx := ContextWithFields(context.Background(), Fields{"request_id": "abc"})
	ctx = ContextWithFields(ctx, Fields{"op": "convert"})
	assert.Equal(Fields{"request_id": "abc", "op": "convert"}, FieldsFromContext(ctx))

	l.WithContext(ctx).Info("hello")
	assert.Contains(buf.String(), "request_id=abc")
	assert.Contains(buf.String(), "op=convert")
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	assert.IsType(t, &NoOpLogger{}, GetGlobalLogger())
	Info("dropped")
}
