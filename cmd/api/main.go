package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/leadforge/leadforge-api/internal/config"
	"github.com/leadforge/leadforge-api/internal/infra/database"
	"github.com/leadforge/leadforge-api/internal/infra/http/handlers"
	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
	"github.com/leadforge/leadforge-api/internal/infra/integration/apollo"
	"github.com/leadforge/leadforge-api/internal/infra/integration/hunter"
	"github.com/leadforge/leadforge-api/internal/infra/integration/linkedinx"
	"github.com/leadforge/leadforge-api/internal/infra/mail"
	"github.com/leadforge/leadforge-api/internal/infra/queue"
	"github.com/leadforge/leadforge-api/internal/infra/worker"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

const version = "1.0.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Bootstrap(ctx, db); err != nil {
		logger.Fatal("could not bootstrap schema", zap.Error(err))
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		logger.Fatal("could not connect to rabbitmq", zap.Error(err))
	}
	defer rabbitMQ.Close()

	// Repositories
	accountRepo := database.NewAccountRepository(db)
	planRepo := database.NewPlanRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	execRepo := database.NewExecutionRepository(db)
	leadRepo := database.NewLeadRepository(db)
	statsRepo := database.NewStatsRepository(db)

	// Integration clients
	apolloClient := apollo.NewClient(cfg.ApolloAPIKey, cfg.ApolloBaseURL)
	hunterClient := hunter.NewClient(cfg.HunterAPIKey, cfg.HunterBaseURL)
	linkedinClient := linkedinx.NewClient(cfg.LinkedInToken)

	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	tokens := middleware.NewTokenManager(cfg.JWTSecret)

	// Usecases
	pipeline := &usecase.GenerateLeadsUseCase{
		AccountRepo:   accountRepo,
		CampaignRepo:  campaignRepo,
		ExecRepo:      execRepo,
		LeadRepo:      leadRepo,
		BatchWriter:   leadRepo,
		Provider:      apolloClient,
		Verifier:      hunterClient,
		Enricher:      linkedinClient,
		Logger:        logger,
		VerifyWorkers: cfg.VerifyWorkers,
	}
	authUC := usecase.NewAuthUseCase(accountRepo, planRepo, tokens)

	// Background: the queue worker drains run messages, the scheduler
	// enqueues due campaigns.
	runWorker := queue.NewWorker(rabbitMQ.Ch, pipeline, accountRepo, campaignRepo, mailSender, logger)
	go func() {
		if err := runWorker.Start(ctx, queue.QueueName); err != nil {
			logger.Error("queue worker stopped", zap.Error(err))
		}
	}()

	scheduler := worker.NewCampaignScheduler(campaignRepo, accountRepo, producer, logger, cfg.SchedulerTick)
	go scheduler.Start(ctx)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, version)
	authHandler := handlers.NewAuthHandler(authUC)
	accountHandler := handlers.NewAccountHandler(accountRepo)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, execRepo, producer)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	adminHandler := handlers.NewAdminHandler(accountRepo, planRepo, statsRepo)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(tokens.RequireAuth)

			r.Post("/auth/refresh", authHandler.HandleRefresh)
			r.Get("/me", accountHandler.HandleMe)
			r.Put("/me", accountHandler.HandleUpdateMe)

			r.Route("/campaigns", func(r chi.Router) {
				r.Post("/", campaignHandler.HandleCreate)
				r.Get("/", campaignHandler.HandleList)
				r.Route("/{campaignID}", func(r chi.Router) {
					r.Get("/", campaignHandler.HandleGet)
					r.Put("/", campaignHandler.HandleUpdate)
					r.Delete("/", campaignHandler.HandleDelete)
					r.Post("/pause", campaignHandler.HandlePause)
					r.Post("/resume", campaignHandler.HandleResume)
					r.Post("/run", campaignHandler.HandleRunNow)
					r.Get("/executions", campaignHandler.HandleListExecutions)
				})
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", leadHandler.HandleList)
				r.Patch("/{leadID}/status", leadHandler.HandleUpdateStatus)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/stats", adminHandler.HandleStats)
				r.Route("/accounts", func(r chi.Router) {
					r.Get("/", adminHandler.HandleListAccounts)
					r.Post("/", adminHandler.HandleCreateAccount)
					r.Route("/{accountID}", func(r chi.Router) {
						r.Get("/", adminHandler.HandleGetAccount)
						r.Put("/", adminHandler.HandleUpdateAccount)
						r.Delete("/", adminHandler.HandleDeleteAccount)
						r.Post("/reset-password", adminHandler.HandleResetPassword)
					})
				})
			})
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
