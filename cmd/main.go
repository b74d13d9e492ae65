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

	createAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_appointment"
	deleteResourceScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_resource_schedule"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_client_appointments"
	getResourceAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_resource_appointments"
	getResourceScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_resource_schedule"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_appointment_status"
	updateResourceScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_resource_schedule"
	validateBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	appointmentsService "github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	scheduleService "github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/reschedule_appointment"
	validateBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
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

	log.Info("Starting SMC-BarberBooking...")

	defaultWindow, err := cfg.DefaultWindow()
	if err != nil {
		log.Fatal("Invalid default window: %v", err)
	}
	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	log.Info("Default window %s-%s, timezone %s", defaultWindow.Start, defaultWindow.End, location)

	// Закрывается при остановке: сбор метрик пула и очистка лимитера
	stopCh := make(chan struct{})

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Migrations.Enabled {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied")
	}

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, defaultWindow, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	engine := availability.NewEngine(appointmentRepository, scheduleSvc, defaultWindow, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(appointmentRepository, engine, txMgr, location, log)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(appointmentRepository, engine, txMgr, location, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(engine, location, log)
	validateBookingUseCase := validateBookingUC.NewUseCase(engine, location, log)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	getResourceSchedule := getResourceScheduleHandler.NewHandler(scheduleSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getResourceAppointments := getResourceAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateResourceSchedule := updateResourceScheduleHandler.NewHandler(scheduleSvc, log)
	deleteResourceSchedule := deleteResourceScheduleHandler.NewHandler(scheduleSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты только для изменяющих запросов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTL)*time.Second,
			cfg.RateLimit.TrustProxy,
		)
		go limiter.Cleanup(stopCh)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		log.Info("Rate limit enabled: rps=%.2f burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/resources/{resourceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/validate-booking", validateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/resources/{resourceId}/schedule", getResourceSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.Handle("/appointments", limit(createAppointment.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.Handle("/appointments/{appointmentId}", limit(deleteAppointment.Handle)).Methods(http.MethodDelete)
	protected.Handle("/appointments/{appointmentId}/reschedule", limit(rescheduleAppointment.Handle)).Methods(http.MethodPatch)
	protected.Handle("/appointments/{appointmentId}/status", limit(updateAppointmentStatus.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	protected.HandleFunc("/resources/{resourceId}/appointments", getResourceAppointments.Handle).Methods(http.MethodGet)
	protected.Handle("/resources/{resourceId}/schedule", limit(updateResourceSchedule.Handle)).Methods(http.MethodPut)
	protected.Handle("/resources/{resourceId}/schedule", limit(deleteResourceSchedule.Handle)).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopCh)

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
