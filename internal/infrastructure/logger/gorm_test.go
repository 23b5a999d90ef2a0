package logger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewGormLogger(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithLockWaitThreshold(time.Second),
		WithoutParams(),
	)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.Equal(t, 500*time.Millisecond, gormLog.slowThreshold)
	assert.Equal(t, time.Second, gormLog.lockWaitThreshold)
	assert.True(t, gormLog.hideParams)
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), gormlogger.Info)
	newLogger := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	newGormLog, ok := newLogger.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, newGormLog.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) {
		return `SELECT * FROM "livestock_counts" WHERE user_id = 1`, 1
	}
	lockingQuery := func() (string, int64) {
		return `SELECT * FROM "livestock_counts" WHERE user_id = 1 AND category = 'GOAT' FOR UPDATE`, 1
	}

	t.Run("logs errors", func(t *testing.T) {
		core, recorded := observer.New(zapcore.ErrorLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, "SQL Error", recorded.All()[0].Message)
		assert.Equal(t, "select", recorded.All()[0].ContextMap()["sql_op"])
	})

	t.Run("ignores record not found", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Info)

		gormLog.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("duplicate keys are conflicts not errors", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Warn)
		insert := func() (string, int64) { return `INSERT INTO "livestock_tags" ("tag_number") VALUES ('M1')`, 0 }

		gormLog.Trace(context.Background(), time.Now(), insert, fmt.Errorf("saving tags: %w", gorm.ErrDuplicatedKey))

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "SQL conflict", entry.Message)
		assert.Equal(t, "insert", entry.ContextMap()["sql_op"])
	})

	t.Run("reports lock contention on FOR UPDATE", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Warn,
			WithLockWaitThreshold(time.Millisecond), WithSlowThreshold(time.Hour))

		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), lockingQuery, nil)
		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, "Row lock contention", recorded.All()[0].Message)
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, recorded.Len())
		assert.Contains(t, recorded.All()[0].Message, "SLOW SQL")
	})

	t.Run("debug logs normal queries with request and user fields", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Info, WithSlowThreshold(0))
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
		ctx, _ = WithFarmerID(ctx, zap.NewNop(), 12)

		gormLog.Trace(ctx, time.Now(), query, nil)

		require.Equal(t, 1, recorded.Len())
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, "SQL Query", recorded.All()[0].Message)
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, int64(12), fields["user_id"])
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Silent)

		gormLog.Trace(context.Background(), time.Now(), query, errors.New("boom"))

		assert.Equal(t, 0, recorded.Len())
	})
}

func TestGormLogger_Printf(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Warn)

	gormLog.Info(context.Background(), "migrated %d tables", 5)
	gormLog.Warn(context.Background(), "pool at %d%%", 90)
	gormLog.Error(context.Background(), "reconnect failed: %s", "timeout")

	require.Equal(t, 2, recorded.Len())
	assert.Equal(t, "pool at 90%", recorded.All()[0].Message)
	assert.Equal(t, "reconnect failed: timeout", recorded.All()[1].Message)
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	sql := `INSERT INTO "expenses" ("description") VALUES ($1)`

	_, params := NewGormLogger(zap.NewNop(), gormlogger.Info).ParamsFilter(context.Background(), sql, "hay for winter")
	assert.Equal(t, []any{"hay for winter"}, params)

	gotSQL, params := NewGormLogger(zap.NewNop(), gormlogger.Info, WithoutParams()).ParamsFilter(context.Background(), sql, "hay for winter")
	assert.Equal(t, sql, gotSQL)
	assert.Nil(t, params)
}

func TestClassifyStatement(t *testing.T) {
	tests := []struct {
		sql     string
		op      string
		locking bool
	}{
		{`SELECT * FROM "livestock_counts" WHERE id = 1 FOR UPDATE`, "select", true},
		{"  update livestock_tags SET status = 'SOLD'", "update", false},
		{"INSERT INTO livestock_events DEFAULT VALUES", "insert", false},
		{"COMMIT", "commit", false},
		{"", "", false},
	}
	for _, tt := range tests {
		op, locking := classifyStatement(tt.sql)
		assert.Equal(t, tt.op, op, tt.sql)
		assert.Equal(t, tt.locking, locking, tt.sql)
	}
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("other"))
}

func TestGormLoggerImplementsInterfaces(t *testing.T) {
	var _ gormlogger.Interface = NewGormLogger(zap.NewNop(), gormlogger.Warn)
	var _ gorm.ParamsFilter = NewGormLogger(zap.NewNop(), gormlogger.Warn)
}
