package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"tourneyhub/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// Logger that we will use to save our logs.
// Lines go to stdout and to a temporary file that can be shipped to a bucket.
type NewLogger struct {
	mu       sync.Mutex
	log      zerolog.Logger
	logFile  *os.File
	filePath string
}

// Create the log instance with a temporary file.
func CreateLogger(service string) (*NewLogger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	return newLogger(service, f, zerolog.MultiLevelWriter(os.Stdout, f)), nil
}

// NewTestLogger returns a logger writing only to the given writer.
func NewTestLogger(w io.Writer) *NewLogger {
	return newLogger("test", nil, w)
}

func newLogger(service string, f *os.File, w io.Writer) *NewLogger {
	l := &NewLogger{logFile: f}
	if f != nil {
		l.filePath = f.Name()
	}
	l.log = zerolog.New(&lockedWriter{l: l, w: w}).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	return l
}

// Serializes the writes with the file truncation.
type lockedWriter struct {
	l *NewLogger
	w io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.l.mu.Lock()
	defer lw.l.mu.Unlock()
	return lw.w.Write(p)
}

// Log a simple info.
func (l *NewLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

// Log a warning.
func (l *NewLogger) Warnf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

// Log a error.
func (l *NewLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

// With returns the structured logger, for call sites needing fields.
func (l *NewLogger) With() zerolog.Context {
	return l.log.With()
}

// Clean the file contents.
func (l *NewLogger) CleanFile() {
	if l.logFile == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// Upload the log to a s3 bucket.
func (l *NewLogger) UploadToS3Bucket(ctx context.Context, bucket config.BucketConfiguration, objectKey string) error {
	if l.logFile == nil {
		return fmt.Errorf("logger has no backing file")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %v", err)
	}

	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
		}
	})

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %v", objectKey, err)
	}

	// Clean the file after sending.
	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)

	return nil
}

// Close removes the backing file.
func (l *NewLogger) Close() error {
	if l.logFile == nil {
		return nil
	}
	l.logFile.Close()
	return os.Remove(l.filePath)
}
