package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls GORM span export
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bind variables; never in production
	SlowQueryThresh time.Duration
	DBName          string
}

// DBTracingPlugin installs otelgorm plus a slow-query annotator
type DBTracingPlugin struct {
	cfg    DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates the plugin. A zero threshold uses 200ms.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBName == "" {
		cfg.DBName = "storefront"
	}
	return &DBTracingPlugin{cfg: cfg, logger: logger}
}

type queryStartKey struct{}

// Register adds otelgorm and the timing callbacks to db
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.cfg.Enabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(p.cfg.DBName)}
	if !p.cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("storefront:start_create", p.start); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("storefront:start_query", p.start); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("storefront:start_update", p.start); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("storefront:start_delete", p.start); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("storefront:start_raw", p.start); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("storefront:end_create", p.finish); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("storefront:end_query", p.finish); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("storefront:end_update", p.finish); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("storefront:end_delete", p.finish); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("storefront:end_raw", p.finish); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", p.cfg.SlowQueryThresh))
	return nil
}

func (p *DBTracingPlugin) start(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

// finish annotates the statement span with table, rows and slowness
func (p *DBTracingPlugin) finish(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
	}
	if started, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(started); elapsed > p.cfg.SlowQueryThresh {
			span.SetAttributes(attribute.Bool("db.slow_query", true))
			span.AddEvent("slow_query", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.cfg.SlowQueryThresh.Milliseconds())))
		}
	}
}
