package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-PropertyService/internal/config"
	bookingRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/booking"
	commissionRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/commission"
	dealerRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/dealer"
	"github.com/m04kA/SMC-PropertyService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/payment"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
	settingsRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/settings"
	availabilityService "github.com/m04kA/SMC-PropertyService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-PropertyService/internal/service/bookings"
	dealersService "github.com/m04kA/SMC-PropertyService/internal/service/dealers"
	propertiesService "github.com/m04kA/SMC-PropertyService/internal/service/properties"
	settingsService "github.com/m04kA/SMC-PropertyService/internal/service/settings"
	confirmPaymentUC "github.com/m04kA/SMC-PropertyService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-PropertyService/internal/usecase/create_booking"
	distributeCommissionUC "github.com/m04kA/SMC-PropertyService/internal/usecase/distribute_commission"
	"github.com/m04kA/SMC-PropertyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
	"github.com/m04kA/SMC-PropertyService/pkg/metrics"
	"github.com/m04kA/SMC-PropertyService/pkg/txmanager"
)

// Объединения контрактов всех потребителей, чтобы postgres и memory реализации были взаимозаменяемы

type propertyStore interface {
	propertiesService.PropertyRepository
	bookingsService.PropertyRepository
	availabilityService.PropertyRepository
	createBookingUC.PropertyRepository
	confirmPaymentUC.PropertyRepository
	distributeCommissionUC.PropertyRepository
}

type bookingStore interface {
	bookingsService.BookingRepository
	availabilityService.BookingRepository
	createBookingUC.BookingRepository
	confirmPaymentUC.BookingRepository
}

type dealerStore interface {
	dealersService.DealerRepository
	distributeCommissionUC.DealerRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	properties  propertyStore
	bookings    bookingStore
	dealers     dealerStore
	payments    confirmPaymentUC.PaymentRepository
	commissions distributeCommissionUC.CommissionRepository
	settings    settingsService.SettingsRepository
	tx          txManager
	close       func()
}

// openStorage выбирает хранилище по storage.driver
func openStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("Using in-memory storage, data will be lost on restart")
		store := memory.NewStore()
		return &storage{
			properties:  store.Properties(),
			bookings:    store.Bookings(),
			dealers:     store.Dealers(),
			payments:    store.Payments(),
			commissions: store.Commissions(),
			settings:    store.Settings(),
			tx:          store,
			close:       func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Сбор статистики пула останавливается при закрытии хранилища
	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stopCh)

	return &storage{
		properties:  propertyRepo.NewRepository(wrapped),
		bookings:    bookingRepo.NewRepository(wrapped),
		dealers:     dealerRepo.NewRepository(wrapped),
		payments:    paymentRepo.NewRepository(wrapped),
		commissions: commissionRepo.NewRepository(wrapped),
		settings:    settingsRepo.NewRepository(wrapped),
		tx:          txmanager.NewTransactionManager(wrapped),
		close: func() {
			close(stopCh)
			db.Close()
		},
	}, nil
}
