package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/assistec/assistec-api/internal/application/service"
	"github.com/assistec/assistec-api/internal/config"
	"github.com/assistec/assistec-api/internal/infrastructure/database"
	"github.com/assistec/assistec-api/internal/infrastructure/repository"
	"github.com/assistec/assistec-api/internal/presentation/http/handler"
	"github.com/assistec/assistec-api/internal/presentation/http/routes"
	"github.com/assistec/assistec-api/pkg/email"
	"github.com/assistec/assistec-api/pkg/printer"
	"github.com/assistec/assistec-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	rateTableRepo := repository.NewRateTableRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Outbound integrations
	emailService := email.NewService(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		StoreName:    cfg.Email.StoreName,
	})

	device, err := printer.New(printer.Config{
		Mode:     cfg.Printer.Mode,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		SpoolDir: cfg.Printer.SpoolDir,
	})
	if err != nil {
		log.Printf("Warning: printer unavailable (%v), coupons will be discarded", err)
		device, _ = printer.New(printer.Config{Mode: "none"})
	}
	defer device.Close()

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, customerRepo, rateTableRepo, ledgerRepo, emailService)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, productRepo, customerRepo, ledgerRepo)
	cashierService := service.NewCashierService(ledgerRepo)
	reportService := service.NewReportService(ledgerRepo, orderRepo, goalRepo)
	settingsService := service.NewSettingsService(rateTableRepo, companyRepo, goalRepo)
	printerService := service.NewPrinterService(device, cfg.Printer.CharWidth, saleRepo, orderRepo, companyRepo)

	// Handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Order:    handler.NewOrderHandler(orderService),
		Sale:     handler.NewSaleHandler(saleService),
		Cashier:  handler.NewCashierHandler(cashierService),
		Report:   handler.NewReportHandler(reportService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	log.Printf("%s listening on port %s (env=%s)", cfg.App.Name, cfg.App.Port, cfg.App.Env)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
