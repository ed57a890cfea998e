package internal

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLeveledLogrusFields(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.SetFormatter(&logrus.JSONFormatter{})

	leveled := NewLeveledLogrus(l)
	leveled.Warn("retrying request", "url", "http://nlp/analyze", "attempt", 2, "dangling")

	out := buf.String()
	assert.Contains(t, out, `"msg":"retrying request"`)
	assert.Contains(t, out, `"url":"http://nlp/analyze"`)
	assert.Contains(t, out, `"attempt":2`)
	assert.NotContains(t, out, "dangling")
}

func TestGetLoggerSingleton(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())

	SetLogLevel(logrus.DebugLevel)
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())
	SetLogLevel(logrus.InfoLevel)
}
