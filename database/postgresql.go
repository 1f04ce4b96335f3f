package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MediTrack/config"
	"MediTrack/models"
	"MediTrack/utils"
)

// DB is the global database instance.
var DB *gorm.DB

// InitDB opens the database connection, configures the pool and runs the
// migrations. Unique violations surface as gorm.ErrDuplicatedKey.
func InitDB(ctx context.Context, cfg *config.AppConfig) (*gorm.DB, error) {
	var err error

	logMode := logger.Silent
	if cfg.IsDev() {
		logMode = logger.Info
	}

	DB, err = gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logMode),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(DB); err != nil {
		return nil, err
	}

	if err := testDatabaseConnection(ctx, DB); err != nil {
		return nil, err
	}

	if err := RunMigrations(DB); err != nil {
		return nil, err
	}

	log.Info().Msg("database initialized")
	return DB, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func testDatabaseConnection(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// RunMigrations creates or updates the schema.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.VitalSign{},
		&models.LabResult{},
	)
	return errors.Wrap(err, "failed to run migrations")
}

// SeedAdmin creates the bootstrap administrator unless a user with that
// name already exists.
func SeedAdmin(ctx context.Context, db *gorm.DB, username, password string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to look up admin user")
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}
	admin := &models.User{Username: username, PasswordHash: hash, Role: models.RoleAdmin}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return errors.Wrap(err, "failed to create admin user")
	}
	log.Info().Str("username", username).Msg("bootstrap admin user created")
	return nil
}
