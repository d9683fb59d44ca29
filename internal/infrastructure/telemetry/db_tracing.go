// Package telemetry provides OpenTelemetry integration for distributed tracing.
package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled          bool          // Enable database tracing
	LogFullSQL       bool          // Include full SQL statements in spans (dev only)
	SlowQueryThresh  time.Duration // Threshold for marking queries as slow (default 200ms)
	DBSystem         string        // Database system name (default "postgresql")
	WithoutVariables bool          // Exclude query variables from the SQL statement
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin wraps the otelgorm plugin with slow query detection.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin with the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// forEachOperation registers a callback either before or after every GORM
// operation type, named "<prefix>:<stage>_<op>".
func forEachOperation(db *gorm.DB, prefix string, before bool, fn func(*gorm.DB)) error {
	type registrar interface {
		Register(name string, fn func(*gorm.DB)) error
	}
	ops := []struct {
		name string
		get  func(hook string) registrar
	}{
		{"create", func(h string) registrar {
			if before {
				return db.Callback().Create().Before(h)
			}
			return db.Callback().Create().After(h)
		}},
		{"query", func(h string) registrar {
			if before {
				return db.Callback().Query().Before(h)
			}
			return db.Callback().Query().After(h)
		}},
		{"update", func(h string) registrar {
			if before {
				return db.Callback().Update().Before(h)
			}
			return db.Callback().Update().After(h)
		}},
		{"delete", func(h string) registrar {
			if before {
				return db.Callback().Delete().Before(h)
			}
			return db.Callback().Delete().After(h)
		}},
		{"row", func(h string) registrar {
			if before {
				return db.Callback().Row().Before(h)
			}
			return db.Callback().Row().After(h)
		}},
		{"raw", func(h string) registrar {
			if before {
				return db.Callback().Raw().Before(h)
			}
			return db.Callback().Raw().After(h)
		}},
	}
	stage := "after"
	if before {
		stage = "before"
	}
	for _, op := range ops {
		if err := op.get("gorm:"+op.name).Register(prefix+":"+stage+"_"+op.name, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterOtelGorm registers the otelgorm plugin with the given GORM DB instance,
// plus callbacks for query timing, slow query detection and error marking.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		// Keep query parameters out of spans
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	startTimer := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
		}
	}
	if err := forEachOperation(db, "otel_timing", true, startTimer); err != nil {
		return err
	}
	if err := forEachOperation(db, "otel_slow_query", false, p.slowQueryCallback); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)

	return nil
}

// slowQueryCallback runs after each database operation to annotate the active span.
func (p *DBTracingPlugin) slowQueryCallback(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	annotateSpan(ctx, db, p.config.SlowQueryThresh)
}

// annotateSpan adds rows-affected, table, error and slow-query attributes to
// the span recorded for this statement, if any.
func annotateSpan(ctx context.Context, db *gorm.DB, slowThresh time.Duration) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// ErrRecordNotFound is an expected outcome, not a span error
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > slowThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", slowThresh.Milliseconds()),
			))
		}
	}
}

// queryStartTimeKey is the context key for storing query start time.
type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// WithQueryStartTime returns a context with the query start time set.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}

// DBTracingCallback provides standalone GORM callbacks that track query timing
// for slow query detection, for callers that do not use the full plugin.
type DBTracingCallback struct {
	slowQueryThresh time.Duration
}

// NewDBTracingCallback creates a new callback for tracking query timing.
func NewDBTracingCallback(slowQueryThresh time.Duration) *DBTracingCallback {
	return &DBTracingCallback{
		slowQueryThresh: slowQueryThresh,
	}
}

// BeforeCallback sets the query start time in context.
func (c *DBTracingCallback) BeforeCallback(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// AfterCallback checks for slow queries and adds attributes to the span.
func (c *DBTracingCallback) AfterCallback(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	annotateSpan(db.Statement.Context, db, c.slowQueryThresh)
}

// RegisterCallbacks registers the before and after callbacks on the GORM DB instance.
func (c *DBTracingCallback) RegisterCallbacks(db *gorm.DB) error {
	if err := forEachOperation(db, "otel_timing", true, c.BeforeCallback); err != nil {
		return err
	}
	return forEachOperation(db, "otel_timing", false, c.AfterCallback)
}
