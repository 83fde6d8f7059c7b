package printing

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectUploader is the object store the archive writes to
type ObjectUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// ArchivedReport points at a stored report
type ArchivedReport struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

// ReportArchive keeps rendered reports in object storage and hands out
// presigned download links
type ReportArchive struct {
	store     ObjectUploader
	prefix    string
	expiresIn time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// ReportArchiveOption configures a ReportArchive
type ReportArchiveOption func(*ReportArchive)

// WithArchivePrefix sets the key prefix (default "reports")
func WithArchivePrefix(prefix string) ReportArchiveOption {
	return func(a *ReportArchive) {
		a.prefix = strings.Trim(prefix, "/")
	}
}

// WithLinkExpiration sets how long download links stay valid
func WithLinkExpiration(d time.Duration) ReportArchiveOption {
	return func(a *ReportArchive) {
		a.expiresIn = d
	}
}

// WithArchiveLogger sets the logger
func WithArchiveLogger(logger *zap.Logger) ReportArchiveOption {
	return func(a *ReportArchive) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewReportArchive creates a ReportArchive
func NewReportArchive(store ObjectUploader, opts ...ReportArchiveOption) *ReportArchive {
	a := &ReportArchive{
		store:     store,
		prefix:    "reports",
		expiresIn: time.Hour,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Key builds the object key for a report:
// <prefix>/<store>/<yyyy>/<mm>/<name>-<random>.<ext>
func (a *ReportArchive) Key(storeID uuid.UUID, name, ext string) string {
	now := a.now().UTC()
	base := strings.Trim(unsafeKeyChars.ReplaceAllString(name, "-"), "-")
	if base == "" {
		base = "report"
	}
	file := fmt.Sprintf("%s-%s.%s", base, uuid.New().String()[:8], strings.TrimPrefix(ext, "."))
	return path.Join(a.prefix, storeID.String(), now.Format("2006"), now.Format("01"), file)
}

// Store uploads a rendered report and returns a download link
func (a *ReportArchive) Store(ctx context.Context, storeID uuid.UUID, name, ext, contentType string, data []byte) (*ArchivedReport, error) {
	if len(data) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "report is empty", nil)
	}
	key := a.Key(storeID, name, ext)
	if err := a.store.Upload(ctx, key, data, contentType); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to upload report", err)
	}
	url, expiresAt, err := a.store.GenerateDownloadURL(ctx, key, a.expiresIn)
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to sign report link", err)
	}
	a.logger.Info("Report archived",
		zap.String("store_id", storeID.String()),
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return &ArchivedReport{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}
