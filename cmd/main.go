package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelPlanHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/cancel_plan"
	completePlanHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/complete_plan"
	createPlanHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/create_plan"
	getAvailabilityHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/get_availability"
	getPlanHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/get_plan"
	getSpecialistHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/get_specialist"
	getSpecialistPlansHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/get_specialist_plans"
	paymentWebhookHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/payment_webhook"
	selectSlotHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/select_slot"
	updatePlanStepHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/update_plan_step"
	updateWorkingHoursHandler "github.com/m04kA/TRV-PlanService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/TRV-PlanService/internal/api/middleware"
	"github.com/m04kA/TRV-PlanService/internal/config"
	"github.com/m04kA/TRV-PlanService/internal/infra/redislock"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	specialistRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/specialist"
	calendarClient "github.com/m04kA/TRV-PlanService/internal/integrations/calendarservice"
	plansService "github.com/m04kA/TRV-PlanService/internal/service/plans"
	specialistsService "github.com/m04kA/TRV-PlanService/internal/service/specialists"
	confirmPaymentUC "github.com/m04kA/TRV-PlanService/internal/usecase/confirm_payment"
	getAvailabilityUC "github.com/m04kA/TRV-PlanService/internal/usecase/get_availability"
	selectSlotUC "github.com/m04kA/TRV-PlanService/internal/usecase/select_slot"
	"github.com/m04kA/TRV-PlanService/pkg/dbmetrics"
	"github.com/m04kA/TRV-PlanService/pkg/logger"
	"github.com/m04kA/TRV-PlanService/pkg/metrics"
	"github.com/m04kA/TRV-PlanService/pkg/simpletxmanager"
	"github.com/m04kA/TRV-PlanService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TRV-PlanService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент календарного сервиса
	// При выключенной интеграции работает no-op клиент: доступность считается
	// локально, события календаря не создаются
	var calendar calendarClient.Service
	if cfg.CalendarService.Enabled {
		calendar = calendarClient.NewClient(
			cfg.CalendarService.URL,
			time.Duration(cfg.CalendarService.Timeout)*time.Second,
			log,
		)
		log.Info("Calendar service client initialized (url=%s, timeout=%ds)",
			cfg.CalendarService.URL, cfg.CalendarService.Timeout)
	} else {
		calendar = calendarClient.NewNoopClient()
		log.Info("Calendar service integration disabled, using no-op client")
	}

	// Инициализируем webhook-лок
	// При выключенном Redis дубли уведомлений отсекает условный UPDATE в БД
	var locker confirmPaymentUC.Locker
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		locker = redislock.NewPlanLocker(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second)
		log.Info("Redis webhook lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	} else {
		locker = redislock.NoopLocker{}
		log.Info("Redis disabled, webhook deduplication relies on conditional updates only")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		planRepository       *planRepo.Repository
		specialistRepository *specialistRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		planRepository = planRepo.NewRepository(wrappedDB)
		specialistRepository = specialistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		planRepository = planRepo.NewRepository(db)
		specialistRepository = specialistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	planSvc := plansService.NewService(
		planRepository,
		calendar,
		&plansService.RealTimeProvider{},
		log,
	)
	specialistSvc := specialistsService.NewService(
		specialistRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		specialistRepository,
		calendar,
		log,
	)
	selectSlotUseCase := selectSlotUC.NewUseCase(
		planRepository,
		getAvailabilityUseCase,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		planRepository,
		specialistRepository,
		calendar,
		locker,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createPlan := createPlanHandler.NewHandler(planSvc, log)
	updatePlanStep := updatePlanStepHandler.NewHandler(planSvc, log)
	selectSlot := selectSlotHandler.NewHandler(selectSlotUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, log)
	getPlan := getPlanHandler.NewHandler(planSvc, log)
	cancelPlan := cancelPlanHandler.NewHandler(planSvc, log)
	completePlan := completePlanHandler.NewHandler(planSvc, log)
	getSpecialistPlans := getSpecialistPlansHandler.NewHandler(planSvc, log)
	getSpecialist := getSpecialistHandler.NewHandler(specialistSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(specialistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты специалиста
	api.HandleFunc("/specialists/{specialistId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Профиль специалиста с рабочими часами
	api.HandleFunc("/specialists/{specialistId}",
		getSpecialist.Handle).Methods(http.MethodGet)

	// Мастер планирования: создание и заполнение плана
	api.HandleFunc("/plans", createPlan.Handle).Methods(http.MethodPost)
	api.HandleFunc("/plans/{planId}/steps", updatePlanStep.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/plans/{planId}/slot", selectSlot.Handle).Methods(http.MethodPost)

	// Уведомления платёжного провайдера
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Specialist-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Планы специалиста ---
	protected.HandleFunc("/plans/{planId}", getPlan.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/plans/{planId}/cancel", cancelPlan.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/plans/{planId}/complete", completePlan.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/specialists/{specialistId}/plans", getSpecialistPlans.Handle).Methods(http.MethodGet)

	// --- Профиль специалиста ---
	protected.HandleFunc("/specialists/{specialistId}/working-hours",
		updateWorkingHours.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
