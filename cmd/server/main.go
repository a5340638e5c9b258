package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/config"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/database"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/handler"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/middleware"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/queue"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/repository"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/router"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/service/queue_publisher"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	ledger := repository.NewBookingLedger(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	eventHandler := handler.NewEventHandler(events)
	bookingHandler := handler.NewBookingHandler(ledger, queue_publisher.Publisher{})

	e := echo.New()

	// Redis-backed rate limiting; disabled automatically when Redis is down.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterEvents(e, eventHandler, cfg.JWTSecret)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret)

	// Background consumer writes confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
