package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/papertrade/papertrade-backend/internal/adapter/httpapi"
	"github.com/papertrade/papertrade-backend/internal/adapter/pricing"
	"github.com/papertrade/papertrade-backend/internal/adapter/repository/memory"
	"github.com/papertrade/papertrade-backend/internal/usecase/ledger"
	"github.com/papertrade/papertrade-backend/internal/usecase/reporting"
	"github.com/papertrade/papertrade-backend/internal/usecase/seeder"
)

func main() {
	// 1. Load Configuration
	config, err := readConfig()
	if err != nil {
		logrus.Fatalf("failed to read config: %v", err)
	}

	log := configureLogger(config.Logging)

	initialDeposit, err := decimal.NewFromString(config.Account.InitialDeposit)
	if err != nil {
		log.Fatalf("invalid initial deposit %q: %v", config.Account.InitialDeposit, err)
	}

	// 2. Initialize Adapters
	accountRepo := memory.NewAccountRepository()
	priceService := pricing.NewStaticPriceService()

	// 3. Initialize Services (Use Cases)
	ledgerService := ledger.NewService(accountRepo, priceService)
	reportingService := reporting.NewService(ledgerService, priceService)

	// Initialize Account Seeder and run it
	accountSeeder := seeder.NewAccountSeeder(accountRepo, ledgerService)
	ctx := context.Background()
	if err := accountSeeder.Seed(ctx, config.Account.OwnerID, initialDeposit); err != nil {
		log.Fatalf("failed to seed demo account: %v", err)
	}
	log.WithFields(logrus.Fields{
		"owner":           config.Account.OwnerID,
		"initial_deposit": initialDeposit.String(),
	}).Info("demo account seeded")

	// 4. Start HTTP Server
	apiServer := httpapi.NewServer(ledgerService, reportingService)
	handler := httpapi.RequestLogger(log, httpapi.AuthMiddleware(config.Server.APIToken, apiServer))

	httpServer := &http.Server{
		Addr:    config.Server.Address,
		Handler: handler,
	}

	go func() {
		log.Infof("HTTP server listening on %s", config.Server.Address)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(httpServer, log)
}

// configureLogger sets up the process logger from config.
func configureLogger(config Logging) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if config.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		log.Fatalf("could not parse log level: %v", err)
	}
	log.SetLevel(level)

	return log
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Infof("received signal: %v, shutting down gracefully", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	log.Info("HTTP server stopped")
}
