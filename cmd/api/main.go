package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/teniee/installment-service/internal/cache"
	"github.com/teniee/installment-service/internal/config"
	"github.com/teniee/installment-service/internal/handler"
	"github.com/teniee/installment-service/internal/integrations/rates"
	"github.com/teniee/installment-service/internal/repository"
	"github.com/teniee/installment-service/internal/risk"
	"github.com/teniee/installment-service/internal/scheduler"
	"github.com/teniee/installment-service/internal/service"
	"github.com/teniee/installment-service/internal/utils/email"
)

func main() {
	// Local overrides; absence of a .env file is fine.
	godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Optional Redis cache for the reference rate. A nil cache is a no-op.
	var c *cache.Cache
	if cfg.RedisURL != "" {
		c, err = cache.New(cfg.RedisURL)
		if err != nil {
			logger.Warnf("Redis unavailable, continuing without cache: %v", err)
			c = nil
		} else {
			defer c.Close()
		}
	}

	// Optional SMTP alerts for RED assessments.
	var notifier service.Notifier
	if cfg.SMTPHost != "" && cfg.AlertEmail != "" {
		notifier = email.NewSender(cfg, logger)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	ratesClient := rates.NewClient(cfg.RatesURL, logger)
	engine := risk.NewEngine(risk.DefaultThresholds())
	svc := service.NewService(repo, ratesClient, c, notifier, engine, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Month-end budget redistribution
	sched := scheduler.New(svc, logger, cfg.RedistributeCron)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/installments/evaluate", h.EvaluateInstallment).Methods("POST")
	r.HandleFunc("/installments/schedule", h.PaymentSchedule).Methods("POST")
	r.HandleFunc("/budget/redistribute", h.RedistributeCalendar).Methods("POST")
	r.HandleFunc("/users/{id}/budget", h.UserBudget).Methods("GET")
	r.HandleFunc("/users/{id}/budget/redistribute", h.RedistributeUserBudget).Methods("POST")
	r.HandleFunc("/reference-rate", h.ReferenceRate).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
