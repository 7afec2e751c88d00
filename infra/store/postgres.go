package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/amirasaad/accountsystem/pkg/money"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultAccountID names the single balance row.
const DefaultAccountID = "main"

// Balance is the row persisted by PostgresStore.
type Balance struct {
	ID        string `gorm:"primaryKey;size:64"`
	Cents     int64  `gorm:"not null"`
	UpdatedAt time.Time
}

func (Balance) TableName() string { return "balances" }

// PostgresStore keeps the balance in one row of the balances table. A missing
// row reads as the initial balance; writes upsert the row.
type PostgresStore struct {
	db      *gorm.DB
	id      string
	initial money.Money
}

// NewPostgresStore uses db for the row identified by id.
func NewPostgresStore(db *gorm.DB, id string, initial money.Money) *PostgresStore {
	if id == "" {
		id = DefaultAccountID
	}
	return &PostgresStore{db: db, id: id, initial: initial}
}

// OpenPostgres connects to databaseURL. Query logging is enabled in
// development and goes to stderr.
func OpenPostgres(databaseURL, appEnv string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Warn
	}
	gormLogger := logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logMode,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	return db, nil
}

// Migrate creates the balances table if needed.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Balance{}); err != nil {
		return fmt.Errorf("migrate balances: %w", err)
	}
	return nil
}

func (s *PostgresStore) Read(ctx context.Context) (money.Money, error) {
	var row Balance
	err := s.db.WithContext(ctx).Where("id = ?", s.id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.initial, nil
	}
	if err != nil {
		return money.Zero, fmt.Errorf("read balance %q: %w", s.id, err)
	}
	return money.FromCents(row.Cents), nil
}

func (s *PostgresStore) Write(ctx context.Context, balance money.Money) error {
	row := Balance{ID: s.id, Cents: balance.Cents(), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cents", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write balance %q: %w", s.id, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
