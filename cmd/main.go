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

	addBookingHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/add_booking"
	addReminderHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/add_reminder"
	getCalendarRangeHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/get_calendar_range"
	getDayScheduleHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/get_day_schedule"
	getRangeSummaryHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/get_range_summary"
	recomputeResultsHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/recompute_results"
	removeBookingHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/remove_booking"
	setAvailabilityHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/set_availability"
	setGoalsHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/set_goals"
	togglePlatformSyncHandler "github.com/m04kA/VTC-PlanningService/internal/api/handlers/toggle_platform_sync"
	"github.com/m04kA/VTC-PlanningService/internal/api/middleware"
	"github.com/m04kA/VTC-PlanningService/internal/config"
	"github.com/m04kA/VTC-PlanningService/internal/domain"
	scheduleRepository "github.com/m04kA/VTC-PlanningService/internal/infra/storage/schedule"
	ridesServiceClient "github.com/m04kA/VTC-PlanningService/internal/integrations/ridesservice"
	planningService "github.com/m04kA/VTC-PlanningService/internal/service/planning"
	schedulesService "github.com/m04kA/VTC-PlanningService/internal/service/schedules"
	addBookingUC "github.com/m04kA/VTC-PlanningService/internal/usecase/add_booking"
	setAvailabilityUC "github.com/m04kA/VTC-PlanningService/internal/usecase/set_availability"
	"github.com/m04kA/VTC-PlanningService/pkg/dbmetrics"
	"github.com/m04kA/VTC-PlanningService/pkg/logger"
	"github.com/m04kA/VTC-PlanningService/pkg/metrics"
	"github.com/m04kA/VTC-PlanningService/pkg/simpletxmanager"
	"github.com/m04kA/VTC-PlanningService/pkg/txmanager"
	"github.com/m04kA/VTC-PlanningService/pkg/types"
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

	log.Info("Starting VTC-PlanningService...")
	log.Info("Configuration loaded from config.toml")

	// Дефолтное рабочее окно для синтезированных дней
	defaultWindow, err := parseDefaultWindow(cfg.Schedules)
	if err != nil {
		log.Fatal("Invalid default work window in config: %v", err)
	}
	log.Info("Default work window: %s", defaultWindow.String())

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

	// Инициализируем клиент RidesService
	ridesClient := ridesServiceClient.NewClient(
		cfg.RidesService.URL,
		time.Duration(cfg.RidesService.Timeout)*time.Second,
		log,
	)
	log.Info("RidesService client initialized (url=%s, timeout=%ds)",
		cfg.RidesService.URL, cfg.RidesService.Timeout)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		scheduleRepo *scheduleRepository.Repository
		txMgr        TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepo = scheduleRepository.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepo = scheduleRepository.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	planningSvc := planningService.NewService(scheduleRepo, defaultWindow, log)
	schedulesSvc := schedulesService.NewService(scheduleRepo, ridesClient, txMgr, defaultWindow, log)

	// Инициализируем use cases
	addBookingUseCase := addBookingUC.NewUseCase(scheduleRepo, txMgr, defaultWindow, log)
	setAvailabilityUseCase := setAvailabilityUC.NewUseCase(scheduleRepo, txMgr, log)

	// Инициализируем handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(planningSvc, log)
	getCalendarRange := getCalendarRangeHandler.NewHandler(planningSvc, log)
	getRangeSummary := getRangeSummaryHandler.NewHandler(planningSvc, log)
	addBooking := addBookingHandler.NewHandler(addBookingUseCase, log)
	setAvailability := setAvailabilityHandler.NewHandler(setAvailabilityUseCase, log)
	removeBooking := removeBookingHandler.NewHandler(schedulesSvc, log)
	setGoals := setGoalsHandler.NewHandler(schedulesSvc, log)
	recomputeResults := recomputeResultsHandler.NewHandler(schedulesSvc, log)
	togglePlatformSync := togglePlatformSyncHandler.NewHandler(schedulesSvc, log)
	addReminder := addReminderHandler.NewHandler(schedulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все роуты требуют X-Driver-ID
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание дня ---
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}",
		getDaySchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/availability",
		setAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/goals",
		setGoals.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/bookings",
		addBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/bookings/{index}",
		removeBooking.Handle).Methods(http.MethodDelete)

	// --- Результаты и синхронизация ---
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/results/recompute",
		recomputeResults.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/platforms/{platform}",
		togglePlatformSync.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/drivers/{driverId}/schedule/{date}/reminders",
		addReminder.Handle).Methods(http.MethodPost)

	// --- Календарь ---
	protected.HandleFunc("/drivers/{driverId}/calendar",
		getCalendarRange.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{driverId}/calendar/summary",
		getRangeSummary.Handle).Methods(http.MethodGet)

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

// parseDefaultWindow собирает дефолтное рабочее окно из конфигурации
func parseDefaultWindow(cfg config.SchedulesConfig) (domain.Interval, error) {
	start, err := types.NewTimeStringFromString(cfg.DefaultWorkStart)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("default_work_start: %w", err)
	}

	end, err := types.NewTimeStringFromString(cfg.DefaultWorkEnd)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("default_work_end: %w", err)
	}

	return domain.NewInterval(start, end)
}
