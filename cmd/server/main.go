package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/controller"
	"github.com/api-sage/bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/internal/adapter/http/router"
	"github.com/api-sage/bank-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-ledger/internal/config"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("ping redis: %v", err)
		}
	}

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)

	accountService := services.NewAccountService(accountRepo, transactionRepo)
	transferService := services.NewTransferService(transactionRepo, accountRepo, accountService)
	authService := services.NewAuthService(customerRepo, cfg.JWTSecret)
	customerService := services.NewCustomerService(customerRepo)

	mux := router.New(
		controller.NewAuthController(authService),
		controller.NewCustomerController(customerService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transferService),
		middleware.BearerAuth(cfg.JWTSecret),
		middleware.Idempotency(redisClient),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           middleware.RequestID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
