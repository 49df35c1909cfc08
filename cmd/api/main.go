package main

import (
	"net/http"

	"skynest/internal/config"
	"skynest/internal/database"
	"skynest/internal/events"
	"skynest/internal/middleware"
	"skynest/internal/modules/availability"
	"skynest/internal/modules/booking"
	"skynest/internal/modules/housekeeping"
	"skynest/internal/modules/payment"
	"skynest/internal/modules/prebooking"
	"skynest/internal/modules/report"
	servicemod "skynest/internal/modules/service"
	"skynest/internal/pkg/jwt"
	"skynest/internal/pkg/logger"
	"skynest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if err := database.EnsureOverlapConstraint(db); err != nil {
		log.Fatal("overlap constraint setup failed", zap.Error(err))
	}

	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	preBookingRepo := repository.NewPreBookingRepository(db)

	hub := housekeeping.NewHub()
	defer hub.Close()
	housekeepingHandler := housekeeping.NewHandler(hub, log.Named("housekeeping"))

	sinks := events.Fanout{events.NewHousekeepingBridge(housekeepingHandler)}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log.Named("events"))
		defer kafkaPub.Close()
		sinks = append(sinks, kafkaPub)
		log.Info("kafka publishing enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	availabilitySvc := availability.NewService(bookingRepo, roomRepo)
	bookingSvc := booking.NewService(bookingRepo, roomRepo, guestRepo, paymentRepo, serviceRepo, sinks, log.Named("booking"))
	preBookingSvc := prebooking.NewService(preBookingRepo, roomRepo, guestRepo, log.Named("prebooking"))
	paymentSvc := payment.NewService(paymentRepo, bookingRepo, log.Named("payment"))
	serviceSvc := servicemod.NewService(serviceRepo, bookingRepo, log.Named("service"))
	reportSvc := report.NewService(bookingRepo, roomRepo, log.Named("report"))

	var tokens *jwt.Service
	if cfg.JWTSecret != "" {
		tokens = jwt.New(cfg.JWTSecret)
	} else if cfg.AppEnv != "development" {
		log.Warn("JWT_SECRET is empty; API is unauthenticated")
	}

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok"}})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(tokens))

	booking.NewHandler(bookingSvc, availabilitySvc).RegisterRoutes(api)
	prebooking.NewHandler(preBookingSvc).RegisterRoutes(api)
	payment.NewHandler(paymentSvc).RegisterRoutes(api)
	servicemod.NewHandler(serviceSvc).RegisterRoutes(api)
	report.NewHandler(reportSvc).RegisterRoutes(api)
	housekeepingHandler.RegisterRoutes(api)

	log.Info("api listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
