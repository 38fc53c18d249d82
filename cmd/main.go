package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	bookingPetsHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/booking_pets"
	completeExpiredHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/complete_expired"
	createBookingHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/get_booking"
	getSpaceBookingsHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/get_space_bookings"
	getUserBookingsHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/get_user_bookings"
	manageAvailabilityHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/manage_availability"
	transitionBookingHandler "github.com/m04kA/PetSpace-BookingService/internal/api/handlers/transition_booking"
	"github.com/m04kA/PetSpace-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpace-BookingService/internal/config"
	"github.com/m04kA/PetSpace-BookingService/internal/infra/lock"
	availabilityRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/booking"
	bookingPetRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/bookingpet"
	petRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/pet"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	availabilityService "github.com/m04kA/PetSpace-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/PetSpace-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/PetSpace-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PetSpace-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PetSpace-BookingService/internal/worker/completion"
	"github.com/m04kA/PetSpace-BookingService/pkg/clock"
	"github.com/m04kA/PetSpace-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetSpace-BookingService/pkg/logger"
	"github.com/m04kA/PetSpace-BookingService/pkg/metrics"
	"github.com/m04kA/PetSpace-BookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configPath = v
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

	log.Info("Starting PetSpace-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Обёртка над БД: без метрик запросы просто не наблюдаются
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	spaceRepository := spaceRepo.NewRepository(wrappedDB)
	petRepository := petRepo.NewRepository(wrappedDB)
	patternRepository := availabilityRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	bookingPetRepository := bookingPetRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	timeProvider := clock.NewReal(loc)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		spaceRepository,
		patternRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingPetRepository,
		spaceRepository,
		petRepository,
		txMgr,
		timeProvider,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		bookingPetRepository,
		spaceRepository,
		patternRepository,
		petRepository,
		txMgr,
		timeProvider,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		spaceRepository,
		patternRepository,
		bookingRepository,
		timeProvider,
		log,
	)

	// Фоновое завершение прошедших бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	var workerWG sync.WaitGroup

	if cfg.Sweep.Enabled {
		var locker completion.Locker = lock.Noop{}
		if cfg.Redis.Enabled {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()

			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
			}
			locker = lock.NewRedisLock(redisClient, "", cfg.Redis.LockTTL())
			log.Info("Redis lock enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
		}

		worker := completion.NewWorker(bookingSvc, locker, metricsCollector, log, cfg.Sweep.Interval())
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			worker.Run(workerCtx)
		}()
	}

	// Инициализируем handlers
	handlers.SetLogger(log)
	manageAvailability := manageAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	bookingPets := bookingPetsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSpaceBookings := getSpaceBookingsHandler.NewHandler(bookingSvc, log)
	completeExpired := completeExpiredHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Шаблоны доступности площадки
	api.HandleFunc("/spaces/{spaceId}/availabilities", getAvailability.List).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/availabilities/{availabilityId}", getAvailability.Get).Methods(http.MethodGet)

	// Слоты и проверка времени
	api.HandleFunc("/spaces/{spaceId}/slots", getAvailableSlots.Slots).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/slots/check", getAvailableSlots.Check).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/availability-summary", getAvailableSlots.Summary).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление доступностью (владелец площадки) ---
	protected.HandleFunc("/spaces/{spaceId}/availabilities", manageAvailability.Create).Methods(http.MethodPost)
	protected.HandleFunc("/spaces/{spaceId}/availabilities/{availabilityId}", manageAvailability.Update).Methods(http.MethodPut)
	protected.HandleFunc("/spaces/{spaceId}/availabilities/{availabilityId}/deactivate", manageAvailability.Deactivate).Methods(http.MethodPatch)

	// Бронирования площадки (владелец)
	protected.HandleFunc("/spaces/{spaceId}/bookings", getSpaceBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/pets", bookingPets.Add).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/pets/{petId}", bookingPets.Remove).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/{action:approve|deny|cancel}", transitionBooking.Handle).Methods(http.MethodPatch)

	// История бронирований арендатора
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Служебные ---
	protected.HandleFunc("/admin/bookings/complete-expired", completeExpired.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновый обход и ждём текущий запуск
	stopWorker()
	workerWG.Wait()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
