package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tobenna/room-booking/internal/auth"
	"github.com/tobenna/room-booking/internal/booking"
	"github.com/tobenna/room-booking/internal/config"
	"github.com/tobenna/room-booking/internal/database"
	"github.com/tobenna/room-booking/internal/handler"
	"github.com/tobenna/room-booking/internal/middleware"
	"github.com/tobenna/room-booking/internal/queue"
	"github.com/tobenna/room-booking/internal/repository"
	"github.com/tobenna/room-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}
	cfg := config.Load()

	// The store connection is confirmed before serving; failure here is fatal.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	roomRepo := repository.NewRoomRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	engine := booking.NewEngine(bookingRepo, roomRepo, queue.NewPublisher())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unreachable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	verifier := auth.NewVerifier(cfg.JWTSecret)
	session := middleware.Session(verifier)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterPublic(e, handler.NewRoomHandler(roomRepo), handler.NewReviewHandler(reviewRepo), cache)
	router.RegisterSession(e, handler.NewSessionHandler(cfg))
	router.RegisterBookings(e, handler.NewBookingHandler(engine), session)

	// Background consumer mirrors booking events into logs/booking.log and
	// keeps retrying if the broker is down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
