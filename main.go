// File: salonflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"salonflow/config"
	"salonflow/cron"
	"salonflow/database"
	bookingRepoPkg "salonflow/database/repository/booking"
	catalogRepoPkg "salonflow/database/repository/catalog"
	customerRepoPkg "salonflow/database/repository/customer"
	holdRepoPkg "salonflow/database/repository/hold"
	tokenRepoPkg "salonflow/database/repository/token"
	"salonflow/handlers"
	"salonflow/middleware"
	"salonflow/routes"
	"salonflow/services/booking"
	"salonflow/services/notification"
	"salonflow/services/otp"
	"salonflow/services/sms"
	"salonflow/services/tasks"
	"salonflow/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	holdRepo := holdRepoPkg.NewMongoHoldRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	tokenRepo := tokenRepoPkg.NewMongoTokenRepo()
	catalog := catalogRepoPkg.NewMongoServiceCatalog()

	// shared primitives.
	clock := utils.NewSystemClock()
	slotLocks := booking.NewSlotLocks()
	slotIndex := &booking.SlotIndex{
		Bookings: bookingRepo,
		Holds:    holdRepo,
		Clock:    clock,
	}
	lockWait := time.Duration(config.AppConfig.SlotLockWaitSec) * time.Second

	// collaborators.
	smsGateway := sms.FromConfig(config.AppConfig.SMSGatewayURL, config.AppConfig.SMSGatewayToken)
	publisher := notification.NewRedisPublisher(utils.GetEventsClient())
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	reminders := tasks.NewAsynqReminderScheduler(asynqClient)

	// services.
	holdService := &booking.DefaultHoldService{
		Holds:    holdRepo,
		Catalog:  catalog,
		Slots:    slotIndex,
		Locks:    slotLocks,
		Clock:    clock,
		HoldTTL:  time.Duration(config.AppConfig.HoldTTLMin) * time.Minute,
		LockWait: lockWait,
	}
	promoter := &booking.DefaultPromoter{
		Bookings:      bookingRepo,
		Holds:         holdRepo,
		Customers:     customerRepo,
		Tokens:        tokenRepo,
		Catalog:       catalog,
		Locks:         slotLocks,
		Clock:         clock,
		Notifier:      publisher,
		Reminders:     reminders,
		ManageBaseURL: config.AppConfig.ManageBaseURL,
		LockWait:      lockWait,
		ReminderLead:  time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour,
	}
	otpService := &otp.DefaultOTPService{
		Holds:       holdRepo,
		Store:       otp.NewRedisChallengeStore(utils.GetOTPCacheClient()),
		Limiter:     otp.NewRedisRateLimiter(utils.GetRateLimitCacheClient(), time.Duration(config.AppConfig.OTPResendCooldown)*time.Second, config.AppConfig.OTPHourlyCap),
		SMS:         smsGateway,
		Promoter:    promoter,
		Clock:       clock,
		CodeTTL:     time.Duration(config.AppConfig.OTPTTLMin) * time.Minute,
		MaxAttempts: config.AppConfig.OTPMaxAttempts,
	}
	manageService := &booking.DefaultManageService{
		Bookings: bookingRepo,
		Tokens:   tokenRepo,
		Notifier: publisher,
	}
	staffService := &booking.DefaultStaffBookingService{
		Bookings:  bookingRepo,
		Customers: customerRepo,
		Catalog:   catalog,
		Slots:     slotIndex,
		Locks:     slotLocks,
		Clock:     clock,
		Notifier:  publisher,
		LockWait:  lockWait,
	}

	// handlers.
	holdHandler := handlers.NewHoldHandler(holdService, logger)
	otpHandler := handlers.NewOTPHandler(otpService)
	manageHandler := handlers.NewManageHandler(manageService)
	staffHandler := handlers.NewStaffBookingHandler(staffService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateHoldHandler: holdHandler.CreateHoldHandler,
		GetHoldHandler:    holdHandler.GetHoldHandler,
		CancelHoldHandler: holdHandler.CancelHoldHandler,

		SendOTPHandler:   otpHandler.SendOTPHandler,
		VerifyOTPHandler: otpHandler.VerifyOTPHandler,

		GetBookingHandler:    manageHandler.GetBookingHandler,
		CancelBookingHandler: manageHandler.CancelBookingHandler,

		CreateBookingHandler: staffHandler.CreateBookingHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitReminderWorker(smsGateway, bookingRepo)
	cron.InitHoldSweep(holdRepo, clock, 5*time.Minute)
	utils.StartHealthMonitor(map[string]*redis.Client{
		"otp":       utils.GetOTPCacheClient(),
		"ratelimit": utils.GetRateLimitCacheClient(),
		"events":    utils.GetEventsClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
