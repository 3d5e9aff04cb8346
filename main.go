package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saodatov/hotel-pms/config"
	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/clock"
	"github.com/saodatov/hotel-pms/internal/handler"
	"github.com/saodatov/hotel-pms/internal/middleware"
	"github.com/saodatov/hotel-pms/internal/notifier"
	"github.com/saodatov/hotel-pms/internal/repository"
	"github.com/saodatov/hotel-pms/internal/service"
	"github.com/saodatov/hotel-pms/pkg/database"
	"github.com/saodatov/hotel-pms/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.Open(cfg)
	if err := database.Initialize(db, cfg); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	hotelClock, err := clock.New(cfg.HotelTimezone, cfg.BookingWindowDays)
	if err != nil {
		log.Fatalf("failed to load hotel timezone %q: %v", cfg.HotelTimezone, err)
	}

	// RabbitMQ is optional: without a broker notifications still go to
	// the (simulated) email log.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, email-only notifications: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}
	emailNotifier := notifier.NewEmailNotifier(cfg, publisher)

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	resRepo := repository.NewReservationRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	allocator := service.NewAllocator(roomRepo, resRepo)
	reservationSvc := service.NewReservationService(resRepo, guestRepo, allocator, hotelClock, emailNotifier)
	gridSvc := service.NewGridService(roomRepo, resRepo, hotelClock)
	authSvc := service.NewAuthService(userRepo, tokens, emailNotifier)
	userSvc := service.NewUserService(userRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(middleware.ResolvePrincipal(tokens))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "hotel-pms"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewAuthHandler(authSvc).RegisterRoutes(e)
	handler.NewReservationHandler(reservationSvc, gridSvc).RegisterRoutes(e)
	handler.NewUserHandler(userSvc).RegisterRoutes(e)

	log.Printf("%s PMS starting on :%s", config.HotelName, cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
