package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/accountsystem/pkg/config"
	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/amirasaad/accountsystem/pkg/operation"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*JSONStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*RedisStore)(nil)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(money.MustParse("1000.00"))

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1000.00"), got)

	require.NoError(t, s.Write(ctx, money.MustParse("12.34")))
	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("12.34"), got)
	assert.NoError(t, s.Close())
}

func TestJSONStore_MissingFileReadsInitial(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "balance.json"), money.MustParse("1000.00"))
	got, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1000.00"), got)
}

func TestJSONStore_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.json")
	s := NewJSONStore(path, money.Zero)
	s.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, s.Write(ctx, money.MustParse("1250.00")))

	got, err := NewJSONStore(path, money.Zero).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1250.00"), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "1250.00", decoded["balance"])
	assert.Equal(t, "2026-10-14T12:00:00Z", decoded["updated_at"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"balance":"lots"}`), 0o600))

	_, err := NewJSONStore(path, money.Zero).Read(context.Background())
	assert.ErrorIs(t, err, ErrCorruptBalance)
}

func TestJSONStore_WriteMissingDirectory(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "absent", "balance.json"), money.Zero)
	assert.Error(t, s.Write(context.Background(), money.MustParse("1.00")))
}

func TestJSONStore_WithRegistry(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "balance.json")
	r := operation.NewRegistry(NewJSONStore(path, money.MustParse("1000.00")))

	require.True(t, r.Execute(ctx, operation.Credit, operation.AmountFromString("250")).Success())

	// a fresh store over the same file sees the committed balance
	r = operation.NewRegistry(NewJSONStore(path, money.Zero))
	res := r.Execute(ctx, operation.ViewBalance, operation.NoAmount())
	assert.Equal(t, "Current balance: 001250.00", res.Message())
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPostgresStore_Read(t *testing.T) {
	db, mock := newMockGorm(t)
	s := NewPostgresStore(db, "", money.MustParse("1000.00"))
	selectBalance := regexp.QuoteMeta(`SELECT * FROM "balances" WHERE id = $1`)

	mock.ExpectQuery(selectBalance).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cents", "updated_at"}).
			AddRow(DefaultAccountID, int64(125000), time.Now()))
	got, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1250.00"), got)

	mock.ExpectQuery(selectBalance).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cents", "updated_at"}))
	got, err = s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1000.00"), got, "missing row reads as initial")

	mock.ExpectQuery(selectBalance).WillReturnError(errors.New("connection reset"))
	_, err = s.Read(context.Background())
	assert.ErrorContains(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Write(t *testing.T) {
	db, mock := newMockGorm(t)
	s := NewPostgresStore(db, "acct-1", money.Zero)
	upsert := `INSERT INTO "balances" (.+) VALUES (.+) ON CONFLICT \("id"\) DO UPDATE SET (.+)`

	mock.ExpectExec(upsert).
		WithArgs("acct-1", int64(4250), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Write(context.Background(), money.MustParse("42.50")))

	mock.ExpectExec(upsert).WillReturnError(errors.New("disk full"))
	err := s.Write(context.Background(), money.MustParse("1.00"))
	assert.ErrorContains(t, err, "disk full")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client, "acct:balance", money.MustParse("1000.00"))

	mock.ExpectGet("acct:balance").RedisNil()
	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1000.00"), got)

	mock.ExpectSet("acct:balance", "1250.00", 0).SetVal("OK")
	require.NoError(t, s.Write(ctx, money.MustParse("1250.00")))

	mock.ExpectGet("acct:balance").SetVal("1250.00")
	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("1250.00"), got)

	mock.ExpectGet("acct:balance").SetVal("garbage")
	_, err = s.Read(ctx)
	assert.ErrorIs(t, err, ErrCorruptBalance)

	mock.ExpectGet("acct:balance").SetErr(errors.New("connection refused"))
	_, err = s.Read(ctx)
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectSet("acct:balance", "1.00", 0).SetErr(errors.New("READONLY"))
	assert.ErrorContains(t, s.Write(ctx, money.MustParse("1.00")), "READONLY")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_StoreFailureResult(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := operation.NewRegistry(NewRedisStore(client, "k", money.Zero))

	mock.ExpectGet("k").SetErr(errors.New("timeout"))
	res := r.Execute(context.Background(), operation.ViewBalance, operation.NoAmount())
	assert.Equal(t, operation.KindStoreFailure, res.Kind())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen(t *testing.T) {
	base := func(driver string) *config.App {
		return &config.App{
			Env:   "test",
			Store: &config.Store{Driver: driver, Path: filepath.Join(t.TempDir(), "b.json"), InitialBalance: money.MustParse("5.00")},
			DB:    &config.DB{},
			Redis: &config.Redis{URL: "::bad::", Key: "k"},
		}
	}

	s, err := Open(context.Background(), base(config.DriverMemory), discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(context.Background(), base(config.DriverJSON), discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)

	_, err = Open(context.Background(), base("sqlite"), discardLogger())
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = Open(context.Background(), base(config.DriverPostgres), discardLogger())
	assert.Error(t, err, "empty DATABASE_URL")

	_, err = Open(context.Background(), base(config.DriverRedis), discardLogger())
	assert.Error(t, err, "malformed REDIS_URL")
}
