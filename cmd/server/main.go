package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/database"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/handler"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/mail"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/metrics"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/queue"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/router"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; reading environment directly")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	customers := repository.NewCustomerRepo(db)
	admins := repository.NewAdminRepo(db)
	bookings := repository.NewBookingRepo(db)

	mailer := mail.NewMailer(cfg)
	publisher := queue.NewPublisher(cfg.RabbitURL)
	metrics.Register()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unreachable; rate limiting and response cache disabled")
	}

	authH := handler.NewAuthHandler(cfg, customers, admins, mailer)
	bookingH := handler.NewBookingHandler(cfg, bookings)
	adminH := handler.NewAdminBookingHandler(cfg, bookings, publisher)
	paymentH := handler.NewPaymentHandler(cfg, bookings, publisher)
	reviewH := handler.NewReviewHandler(bookings)
	profileH := handler.NewProfileHandler(customers)
	chatH := handler.NewChatHandler(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, limiter)
	router.RegisterCustomer(e, cfg.JWTSecret, bookingH, paymentH, reviewH, profileH, chatH)
	router.RegisterAdmin(e, cfg.JWTSecret, adminH)
	router.RegisterPublic(e, reviewH, paymentH, cache)

	go queue.StartBookingConsumer(cfg.RabbitURL, mailer)

	reminders := service.NewReminderService(bookings, mailer)
	cronJob := reminders.StartScheduler()
	defer cronJob.Stop()

	// Outer bound on total request duration.
	e.Server.ReadTimeout = 20 * time.Second
	e.Server.WriteTimeout = 20 * time.Second

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
