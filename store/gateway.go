package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/junaidrashid-git/shopfront-api/config"
	"github.com/junaidrashid-git/shopfront-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Gateway hands out one pooled connection per unit of work and always
// gives it back, whatever fn returns.
type Gateway struct {
	db *gorm.DB
}

// Open builds the pgx-backed pool and wraps it in gorm.
func Open(cfg config.Config) (*Gateway, error) {
	pgxCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             1500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return New(sqlDB, gLogger)
}

// New wraps an existing *sql.DB. Tests pass a sqlmock connection here.
func New(sqlDB *sql.DB, l logger.Interface) (*Gateway, error) {
	if l == nil {
		l = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 l,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}
	return &Gateway{db: db}, nil
}

// Migrate creates or updates the users, products, cart and orders tables.
func (g *Gateway) Migrate() error {
	return g.db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
	)
}

// Conn runs fn on a single checked-out connection.
func (g *Gateway) Conn(ctx context.Context, fn func(db *gorm.DB) error) error {
	return g.db.WithContext(ctx).Connection(fn)
}

// Tx runs fn inside one transaction on a single checked-out connection.
// The transaction is rolled back if fn returns an error or panics.
func (g *Gateway) Tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.Conn(ctx, func(db *gorm.DB) error {
		return db.Transaction(fn)
	})
}

func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation recognises 23505 whether or not gorm translated it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
