package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/retry"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLConfig controls what the MySQL backend logs. It is built from the
// database section of the application config.
type SQLConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
}

// SQLLevel maps database.log_level onto a GORM level. Unknown values mean warn.
func SQLLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

// SQLLogger sends GORM output through zap. Each entry carries the request id
// and the collections of the enclosing multi-collection transaction.
//
// Lock conflicts and duplicate keys are logged at warn: the unit of work
// retries the first and maps the second to a CONFLICT response.
type SQLLogger struct {
	cfg SQLConfig
}

func NewSQLLogger(cfg SQLConfig) *SQLLogger {
	return &SQLLogger{cfg: cfg}
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.cfg
	cfg.Level = level
	return &SQLLogger{cfg: cfg}
}

func (l *SQLLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Info {
		l.from(ctx).Info(fmt.Sprintf(msg, data...))
	}
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Warn {
		l.from(ctx).Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *SQLLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Error {
		l.from(ctx).Error(fmt.Sprintf(msg, data...))
	}
}

func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.cfg.Level >= gormlogger.Error:
		if l.cfg.IgnoreRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		sql, rows := fc()
		fields := append(statementFields(sql, rows, elapsed), zap.Error(err))
		if isConflict(err) {
			l.from(ctx).Warn("SQL conflict", fields...)
			return
		}
		l.from(ctx).Error("SQL failed", fields...)

	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.from(ctx).Warn("Slow SQL query",
			append(statementFields(sql, rows, elapsed), zap.Duration("threshold", l.cfg.SlowThreshold))...)

	case l.cfg.Level >= gormlogger.Info:
		sql, rows := fc()
		l.from(ctx).Info("SQL query executed", statementFields(sql, rows, elapsed)...)
	}
}

func (l *SQLLogger) from(ctx context.Context) *zap.Logger {
	base := FromContext(ctx).Named("sql")
	if collections := persistence.TxCollectionsFromContext(ctx); len(collections) > 0 {
		return base.With(zap.Strings("tx_collections", collections))
	}
	return base
}

func statementFields(sql string, rows int64, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
}

func isConflict(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || retry.IsRetryableError(err, retry.DefaultConfig)
}
