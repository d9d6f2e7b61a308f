package infra

import (
	"fmt"

	"seratauto/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.CarBrand{},
		&model.Car{},
		&model.Category{},
		&model.Product{},
		&model.StockMovement{},
		&model.Prestation{},
		&model.Vente{},
		&model.VenteArticle{},
		&model.VenteService{},
		&model.Installment{},
		&model.Neotrack{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle
// on its own. Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the reminder cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_installments_unpaid_due') THEN
		    CREATE INDEX idx_installments_unpaid_due
		        ON installments (due_date)
		        WHERE paid = false AND reminder_sent_at IS NULL;
		  END IF;
		END $$`,
		// partial index for the low-stock dashboard
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_products_low_stock') THEN
		    CREATE INDEX idx_products_low_stock
		        ON products (stock)
		        WHERE deleted_at IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
