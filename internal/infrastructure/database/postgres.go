package database

import (
	"fmt"
	"log"

	"github.com/assistec/assistec-api/internal/config"
	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Operators
		&entity.User{},

		// Directory and catalog
		&entity.Customer{},
		&entity.Product{},

		// Repair orders
		&entity.ServiceOrder{},
		&entity.ServiceOrderItem{},

		// Sales
		&entity.Sale{},
		&entity.SaleItem{},

		// Cash ledger
		&entity.LedgerEntry{},

		// Settings
		&entity.CardChannel{},
		&entity.PixChannel{},
		&entity.CompanyProfile{},
		&entity.RevenueGoal{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the initial admin account and a starter rate table
// when the database is empty.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrador"
				}
				admin := entity.User{
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashed),
					Role:     entity.RoleAdmin,
					Active:   true,
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	// Starter rate table: a single card machine and a terminal Pix channel,
	// all rates zeroed until the shop fills in its acquirer's percentages.
	var cardCount int64
	db.Model(&entity.CardChannel{}).Count(&cardCount)
	if cardCount == 0 {
		card := entity.CardChannel{
			Label:            "Maquininha principal",
			Position:         0,
			InstallmentRates: make(entity.InstallmentRates, 0),
		}
		if err := db.Create(&card).Error; err != nil {
			log.Printf("Warning: failed to seed card channel: %v", err)
		}
	}

	var pixCount int64
	db.Model(&entity.PixChannel{}).Count(&pixCount)
	if pixCount == 0 {
		pix := entity.PixChannel{
			Label:    "Pix maquininha",
			Variant:  entity.PixVariantMaquina,
			Position: 0,
		}
		if err := db.Create(&pix).Error; err != nil {
			log.Printf("Warning: failed to seed pix channel: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
