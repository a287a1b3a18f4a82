package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/cancel_booking"
	checkConflictHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/check_conflict"
	confirmPaymentHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/create_booking"
	createPropertyHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/create_property"
	distributeCommissionHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/distribute_commission"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_booking"
	getDealerHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_dealer"
	getDealerTreeHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_dealer_tree"
	getPropertyHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_property"
	getPropertyBookingsHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_property_bookings"
	getSettingsHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/get_user_bookings"
	registerDealerHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/register_dealer"
	updateDealerStatusHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/update_dealer_status"
	updatePropertyStatusHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/update_property_status"
	updateSettingsHandler "github.com/m04kA/SMC-PropertyService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/config"
	settingsCache "github.com/m04kA/SMC-PropertyService/internal/infra/cache/settings"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/payment"
	availabilityService "github.com/m04kA/SMC-PropertyService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-PropertyService/internal/service/bookings"
	dealersService "github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	propertiesService "github.com/m04kA/SMC-PropertyService/internal/service/properties"
	settingsService "github.com/m04kA/SMC-PropertyService/internal/service/settings"
	confirmPaymentUC "github.com/m04kA/SMC-PropertyService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-PropertyService/internal/usecase/create_booking"
	distributeCommissionUC "github.com/m04kA/SMC-PropertyService/internal/usecase/distribute_commission"
	"github.com/m04kA/SMC-PropertyService/internal/worker/expiry"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
	"github.com/m04kA/SMC-PropertyService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-PropertyService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). nil коллектор безопасен.
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := openStorage(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Кэш настроек в Redis (опционально)
	var cache settingsService.SettingsCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Сервис работает и без кэша, чтения уходят в БД
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()
		cache = settingsCache.NewCache(rdb, time.Duration(cfg.Redis.SettingsTTL)*time.Second)
		log.Info("Settings cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SettingsTTL)
	}

	// Интеграции
	var gateway confirmPaymentUC.PaymentGateway
	switch cfg.Payment.Provider {
	case "stripe":
		gateway = payment.NewStripeGateway(cfg.Payment.StripeSecretKey, log)
	default:
		log.Warn("Using mock payment gateway, references with prefix %q are treated as paid", cfg.Payment.MockPrefix)
		gateway = payment.NewMockGateway(cfg.Payment.MockPrefix)
	}

	var notifier interface {
		Notify(ctx context.Context, event notification.Event) error
	}
	switch cfg.Notification.Sink {
	case "kafka":
		sink, err := notification.NewKafkaSink(cfg.Notification.Brokers, cfg.Notification.TopicPrefix, log)
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		defer sink.Close()
		notifier = sink
	case "webhook":
		notifier = notification.NewWebhookSink(
			cfg.Notification.WebhookURL,
			time.Duration(cfg.Notification.WebhookTimeout)*time.Second,
			log,
		)
	default:
		notifier = notification.NewLogSink(log)
	}
	log.Info("Integrations initialized (payment=%s, notification=%s)", cfg.Payment.Provider, cfg.Notification.Sink)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(store.settings, cache, store.tx, log)
	dealersSvc := dealersService.NewService(store.dealers, log)
	propertiesSvc := propertiesService.NewService(store.properties, store.dealers, log)
	availabilitySvc := availabilityService.NewService(store.properties, store.bookings, settingsSvc, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.properties,
		settingsSvc,
		store.tx,
		notifier,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.properties,
		store.bookings,
		availabilitySvc,
		store.tx,
		notifier,
		metricsCollector,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		store.bookings,
		store.properties,
		store.payments,
		gateway,
		store.tx,
		notifier,
		metricsCollector,
		log,
	)
	distributeCommissionUseCase := distributeCommissionUC.NewUseCase(
		store.properties,
		store.dealers,
		store.commissions,
		dealersSvc,
		settingsSvc,
		store.tx,
		notifier,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getPropertyBookings := getPropertyBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, log)
	checkConflict := checkConflictHandler.NewHandler(availabilitySvc, log)
	createProperty := createPropertyHandler.NewHandler(propertiesSvc, log)
	getProperty := getPropertyHandler.NewHandler(propertiesSvc, log)
	updatePropertyStatus := updatePropertyStatusHandler.NewHandler(propertiesSvc, log)
	distributeCommission := distributeCommissionHandler.NewHandler(distributeCommissionUseCase, log)
	registerDealer := registerDealerHandler.NewHandler(dealersSvc, log)
	getDealer := getDealerHandler.NewHandler(dealersSvc, log)
	updateDealerStatus := updateDealerStatusHandler.NewHandler(dealersSvc, log)
	getDealerTree := getDealerTreeHandler.NewHandler(dealersSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/properties/{propertyId:[0-9]+}", getProperty.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId:[0-9]+}/conflicts", checkConflict.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Объекты ---
	protected.HandleFunc("/properties", createProperty.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/properties/{propertyId:[0-9]+}/status", updatePropertyStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/properties/{propertyId:[0-9]+}/bookings", getPropertyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId:[0-9]+}/sales", distributeCommission.Handle).Methods(http.MethodPost)

	// --- Дилеры ---
	protected.HandleFunc("/dealers", registerDealer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/dealers/{dealerId:[0-9]+}", getDealer.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dealers/{dealerId:[0-9]+}/status", updateDealerStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/dealers/{dealerId:[0-9]+}/tree", getDealerTree.Handle).Methods(http.MethodGet)

	// --- Настройки (для администратора) ---
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Фоновая просрочка неоплаченных бронирований
	var expiryWorker *expiry.Worker
	if cfg.Expiry.Enabled {
		expiryWorker = expiry.NewWorker(bookingSvc, time.Duration(cfg.Expiry.Interval)*time.Second, log)
		expiryWorker.Start(context.Background())
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if expiryWorker != nil {
		expiryWorker.Stop()
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
