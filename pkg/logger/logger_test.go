package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"tourneyhub/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf)

	l.Warnf("rank lookup degraded for %s", "puuid-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "rank lookup degraded for puuid-1", line["message"])
	assert.Equal(t, "test", line["service"])
}

func TestCreateLoggerFile(t *testing.T) {
	l, err := CreateLogger("fetcher")
	require.NoError(t, err)
	defer l.Close()

	l.Infof("hello %d", 1)
	content, err := os.ReadFile(l.filePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello 1")

	l.CleanFile()
	content, err = os.ReadFile(l.filePath)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestUploadWithoutFile(t *testing.T) {
	l := NewTestLogger(&bytes.Buffer{})
	err := l.UploadToS3Bucket(context.Background(), config.BucketConfiguration{}, "key")
	assert.Error(t, err)
}
