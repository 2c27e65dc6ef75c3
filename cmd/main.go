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

	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	getAnalyticsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_analytics"
	getScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_schedule"
	getViewerBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_viewer_bookings"
	submitAppointmentsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/submit_appointments"
	toggleAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/toggle_availability"
	withdrawWaitlistHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/withdraw_waitlist"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	statsRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/stats"
	waitlistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/waitlist"
	profileServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ScheduleService/internal/jobs"
	analyticsService "github.com/m04kA/SMC-ScheduleService/internal/service/analytics"
	bookingService "github.com/m04kA/SMC-ScheduleService/internal/service/booking"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	cancelBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/cancel_booking"
	getAnalyticsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_analytics"
	getScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_schedule"
	getViewerBookingsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_viewer_bookings"
	submitAppointmentsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/submit_appointments"
	toggleAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/toggle_availability"
	withdrawWaitlistUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/withdraw_waitlist"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/slotlock"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		slotRepository     *slotRepo.Repository
		waitlistRepository *waitlistRepo.Repository
		statsRepository    *statsRepo.Repository
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

		slotRepository = slotRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		statsRepository = statsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		statsRepository = statsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Бизнес-метрики координатора
	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.Metrics.Enabled {
		recorder = metricsCollector
	}

	// Инициализируем сервисы
	bookingSvc := bookingService.NewService(
		slotRepository,
		waitlistRepository,
		statsRepository,
		txMgr,
		slotlock.New(),
		recorder,
		log,
	)
	scheduleSvc := scheduleService.NewService(slotRepository, txMgr, log)
	analyticsSvc := analyticsService.NewService(statsRepository, txMgr, log)

	// Инициализируем use cases
	getScheduleUseCase := getScheduleUC.NewUseCase(scheduleSvc, profileClient, log)
	toggleAvailabilityUseCase := toggleAvailabilityUC.NewUseCase(bookingSvc, log)
	submitAppointmentsUseCase := submitAppointmentsUC.NewUseCase(bookingSvc, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingSvc, log)
	withdrawWaitlistUseCase := withdrawWaitlistUC.NewUseCase(bookingSvc, log)
	getAnalyticsUseCase := getAnalyticsUC.NewUseCase(analyticsSvc, profileClient, log)
	getViewerBookingsUseCase := getViewerBookingsUC.NewUseCase(scheduleSvc, profileClient, log)

	// Инициализируем handlers
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	toggleAvailability := toggleAvailabilityHandler.NewHandler(toggleAvailabilityUseCase, log)
	submitAppointments := submitAppointmentsHandler.NewHandler(submitAppointmentsUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	withdrawWaitlist := withdrawWaitlistHandler.NewHandler(withdrawWaitlistUseCase, log)
	getAnalytics := getAnalyticsHandler.NewHandler(getAnalyticsUseCase, log)
	getViewerBookings := getViewerBookingsHandler.NewHandler(getViewerBookingsUseCase, log)

	// Ночное обслуживание окна расписаний
	var maintenanceJob *jobs.MaintenanceJob
	if cfg.Maintenance.Enabled {
		maintenanceJob = jobs.NewMaintenanceJob(scheduleSvc, log)
		if err := maintenanceJob.Start(cfg.Maintenance.Schedule); err != nil {
			log.Fatal("Failed to start maintenance job: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничение частоты запросов
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
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

	// Окно расписания владельца
	api.HandleFunc("/schedules/{ownerId}", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание владельца ---
	// Переключение доступности слота
	protected.HandleFunc("/schedules/{ownerId}/slots", toggleAvailability.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	// Подача заявки на набор слотов
	protected.HandleFunc("/appointments", submitAppointments.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/appointments/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Выход из очереди ожидания
	protected.HandleFunc("/appointments/waitlist/withdraw", withdrawWaitlist.Handle).Methods(http.MethodPatch)

	// Активные бронирования зрителя
	protected.HandleFunc("/users/{userId}/bookings", getViewerBookings.Handle).Methods(http.MethodGet)

	// --- Аналитика владельца ---
	protected.HandleFunc("/analytics/{ownerId}", getAnalytics.Handle).Methods(http.MethodGet)

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

	// Останавливаем ночное обслуживание
	if maintenanceJob != nil {
		maintenanceJob.Stop()
	}

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
