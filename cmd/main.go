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

	cancelBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/create_booking"
	createSlotBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/create_slot_booking"
	generateQRHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/generate_qr"
	getAvailabilityHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_booking"
	getOwnerBookingsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_owner_bookings"
	getStationBookingsHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/get_station_bookings"
	updateBookingHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/update_booking"
	updateStatusHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/update_status"
	validateQRHandler "github.com/m04kA/EVC-BookingService/internal/api/handlers/validate_qr"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	"github.com/m04kA/EVC-BookingService/internal/config"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	ownerServiceClient "github.com/m04kA/EVC-BookingService/internal/integrations/ownerservice"
	stationServiceClient "github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
	bookingsService "github.com/m04kA/EVC-BookingService/internal/service/bookings"
	qrtokenService "github.com/m04kA/EVC-BookingService/internal/service/qrtoken"
	createBookingUC "github.com/m04kA/EVC-BookingService/internal/usecase/create_booking"
	createSlotBookingUC "github.com/m04kA/EVC-BookingService/internal/usecase/create_slot_booking"
	getAvailabilityUC "github.com/m04kA/EVC-BookingService/internal/usecase/get_availability"
	"github.com/m04kA/EVC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVC-BookingService/pkg/logger"
	"github.com/m04kA/EVC-BookingService/pkg/metrics"
	"github.com/m04kA/EVC-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/EVC-BookingService/pkg/txmanager"
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

	log.Info("Starting EVC-BookingService...")
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
	ownerClient := ownerServiceClient.NewClient(
		cfg.OwnerService.URL,
		time.Duration(cfg.OwnerService.Timeout)*time.Second,
		log,
	)
	stationClient := stationServiceClient.NewClient(
		cfg.StationService.URL,
		time.Duration(cfg.StationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (OwnerService=%s timeout=%ds, StationService=%s timeout=%ds)",
		cfg.OwnerService.URL, cfg.OwnerService.Timeout, cfg.StationService.URL, cfg.StationService.Timeout)

	// Инициализируем репозиторий (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	qrSvc := qrtokenService.NewService(cfg.QRCode.Secret, bookingRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		ownerClient,
		stationClient,
		qrSvc,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		ownerClient,
		stationClient,
		txMgr,
		log,
	)

	createSlotBookingUseCase := createSlotBookingUC.NewUseCase(
		bookingRepository,
		ownerClient,
		stationClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		stationClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createSlotBooking := createSlotBookingHandler.NewHandler(createSlotBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	getStationBookings := getStationBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	generateQR := generateQRHandler.NewHandler(bookingSvc, log)
	validateQR := validateQRHandler.NewHandler(qrSvc, log)

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

	// Внутренние маршруты для соседних сервисов (закрыты на уровне сети)
	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/stations/{stationId}/has-active-bookings",
		getStationBookings.HandleHasActive).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступности слотов станции
	api.HandleFunc("/stations/{stationId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Role header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	ownerOnly := middleware.RequireRoles(middleware.RoleOwner)
	staffOnly := middleware.RequireRoles(middleware.RoleOperator, middleware.RoleBackOffice)

	// --- Создание бронирований (владельцы) ---
	protected.Handle("/bookings", ownerOnly(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.Handle("/bookings/slots", ownerOnly(http.HandlerFunc(createSlotBooking.Handle))).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Представления владельца ---
	protected.HandleFunc("/owners/{nic}/bookings/upcoming", getOwnerBookings.HandleUpcoming).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{nic}/bookings/history", getOwnerBookings.HandleHistory).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{nic}/bookings/counts", getOwnerBookings.HandleCounts).Methods(http.MethodGet)

	// --- Управление станцией (операторы и бэк-офис) ---
	protected.Handle("/stations/{stationId}/bookings",
		staffOnly(http.HandlerFunc(getStationBookings.Handle))).Methods(http.MethodGet)
	protected.Handle("/operators/{username}/bookings",
		staffOnly(http.HandlerFunc(getStationBookings.HandleByOperator))).Methods(http.MethodGet)

	// --- Жизненный цикл (операторы и бэк-офис) ---
	protected.Handle("/bookings/{bookingId}/status",
		staffOnly(http.HandlerFunc(updateStatus.Handle))).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/approve",
		staffOnly(http.HandlerFunc(updateStatus.HandleApprove))).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/start",
		staffOnly(http.HandlerFunc(updateStatus.HandleStart))).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/complete",
		staffOnly(http.HandlerFunc(completeBooking.Handle))).Methods(http.MethodPatch)

	// --- QR коды ---
	protected.HandleFunc("/bookings/{bookingId}/qrcode", generateQR.Handle).Methods(http.MethodPost)
	protected.Handle("/qrcodes/validate",
		staffOnly(http.HandlerFunc(validateQR.Handle))).Methods(http.MethodPost)

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
