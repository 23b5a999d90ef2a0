package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowThreshold     = 200 * time.Millisecond
	defaultLockWaitThreshold = 50 * time.Millisecond
)

// GormLogger routes GORM statements into zap, enriched with the request
// fields carried by the context. Row-locking statements have their own
// threshold since events on one count serialize behind SELECT ... FOR UPDATE.
type GormLogger struct {
	logger            *zap.Logger
	logLevel          gormlogger.LogLevel
	slowThreshold     time.Duration
	lockWaitThreshold time.Duration
	hideParams        bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow. Zero disables it.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

// WithLockWaitThreshold sets the duration above which a FOR UPDATE statement
// is reported as lock contention. Zero disables it.
func WithLockWaitThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.lockWaitThreshold = threshold
	}
}

// WithoutParams logs statements with placeholders instead of bound values.
func WithoutParams() GormLoggerOption {
	return func(l *GormLogger) {
		l.hideParams = true
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:            zapLogger.Named("gorm"),
		logLevel:          level,
		slowThreshold:     defaultSlowThreshold,
		lockWaitThreshold: defaultLockWaitThreshold,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, threshold gormlogger.LogLevel, level zapcore.Level, msg string, data []any) {
	if l.logLevel < threshold {
		return
	}
	if ce := WithLogger(ctx, l.logger).Zap().Check(level, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write()
	}
}

// ParamsFilter implements gorm.ParamsFilter so GORM renders placeholders
// when parameters are hidden.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.hideParams {
		return sql, nil
	}
	return sql, params
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	op, locking := classifyStatement(sql)
	log := WithLogger(ctx, l.logger)
	fields := []zap.Field{
		zap.String("sql_op", op),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && errors.Is(err, gormlogger.ErrRecordNotFound):
		// lookups that miss are mapped to domain not-found errors
	case err != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		if l.logLevel >= gormlogger.Warn {
			log.Warn("SQL conflict", append(fields, zap.Error(err))...)
		}
	case err != nil:
		if l.logLevel >= gormlogger.Error {
			log.Error("SQL Error", append(fields, zap.Error(err))...)
		}
	case locking && l.lockWaitThreshold != 0 && elapsed > l.lockWaitThreshold && l.logLevel >= gormlogger.Warn:
		log.Warn("Row lock contention", fields...)
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		log.Warn(fmt.Sprintf("SLOW SQL >= %v", l.slowThreshold), fields...)
	case l.logLevel >= gormlogger.Info:
		log.Debug("SQL Query", fields...)
	}
}

// classifyStatement returns the lowercased leading keyword of sql and whether
// it takes row locks.
func classifyStatement(sql string) (op string, locking bool) {
	trimmed := strings.TrimSpace(sql)
	if i := strings.IndexAny(trimmed, " \n\t"); i > 0 {
		op = strings.ToLower(trimmed[:i])
	} else {
		op = strings.ToLower(trimmed)
	}
	locking = strings.Contains(strings.ToUpper(trimmed), "FOR UPDATE")
	return op, locking
}

// MapGormLogLevel maps the application log level onto a GORM log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
