package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:       "reports",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "configuration is required"},
		{name: "missing bucket", cfg: &config.StorageConfig{AccessKey: "k", SecretKey: "s"}, wantErr: "bucket is required"},
		{name: "missing access key", cfg: &config.StorageConfig{Bucket: "b", SecretKey: "s"}, wantErr: "access key is required"},
		{name: "missing secret key", cfg: &config.StorageConfig{Bucket: "b", AccessKey: "k"}, wantErr: "secret key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3ObjectStorage(tt.cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		s, err := NewS3ObjectStorage(testConfig())
		require.NoError(t, err)
		assert.Equal(t, "reports", s.Bucket())
		assert.Equal(t, 15*time.Minute, s.presignExpiration)
	})

	t.Run("options apply", func(t *testing.T) {
		s, err := NewS3ObjectStorage(testConfig(), WithLogger(zaptest.NewLogger(t)), WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in     string
		useSSL bool
		want   string
	}{
		{in: "", want: "http://localhost:9000"},
		{in: "minio:9000", want: "http://minio:9000"},
		{in: "s3.example.com", useSSL: true, want: "https://s3.example.com"},
		{in: "https://s3.example.com", want: "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.in, tt.useSSL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := normalizeEndpoint("http://", false)
	assert.Error(t, err)
}

func TestS3ObjectStorage_GenerateDownloadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.ErrorIs(t, err, errEmptyKey)

	link, expiresAt, err := s.GenerateDownloadURL(ctx, "reports/chart.pdf", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, link, "localhost:9000/reports/reports/chart.pdf")
	assert.Contains(t, link, "X-Amz-Signature")
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	_, expiresAt, err = s.GenerateDownloadURL(ctx, "reports/chart.pdf", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
}

func TestS3ObjectStorage_EmptyKeys(t *testing.T) {
	s, err := NewS3ObjectStorage(testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Upload(ctx, "", []byte("x"), "text/plain"), errEmptyKey)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), errEmptyKey)
	_, err = s.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, errEmptyKey)
}

// TestIntegration_ArchiveRoundTrip needs a MinIO/RustFS endpoint in
// STOREFRONT_TEST_S3_ENDPOINT
func TestIntegration_ArchiveRoundTrip(t *testing.T) {
	endpoint := os.Getenv("STOREFRONT_TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("STOREFRONT_TEST_S3_ENDPOINT not set")
	}
	cfg := testConfig()
	cfg.Endpoint = endpoint
	cfg.AccessKey = envOr("STOREFRONT_TEST_S3_ACCESS_KEY", "minioadmin")
	cfg.SecretKey = envOr("STOREFRONT_TEST_S3_SECRET_KEY", "minioadmin")

	s, err := NewS3ObjectStorage(cfg, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.EnsureBucket(ctx))

	archive := printing.NewReportArchive(s)
	stored, err := archive.Store(ctx, uuid.New(), "INV-00001", "html", "text/html; charset=utf-8", []byte("<h1>ok</h1>"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.URL)

	exists, err := s.ObjectExists(ctx, stored.Key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, stored.Key))
	exists, err = s.ObjectExists(ctx, stored.Key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
