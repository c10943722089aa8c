package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/educat/tutor_marketplace/cache"
	config "github.com/educat/tutor_marketplace/configs"
	"github.com/educat/tutor_marketplace/database"
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/jobs"
	"github.com/educat/tutor_marketplace/logger"
	"github.com/educat/tutor_marketplace/notifications"
	"github.com/educat/tutor_marketplace/repository"
	"github.com/educat/tutor_marketplace/routes"
	"github.com/educat/tutor_marketplace/services"
	"github.com/educat/tutor_marketplace/uploads"
	"github.com/educat/tutor_marketplace/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Environment)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}
	if err := database.SeedAdmin(db, cfg, log); err != nil {
		log.Fatal("admin seeding failed", zap.Error(err))
	}
	store := repository.New(db, log)

	var statsCache services.StatisticsCache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, statistics will not be cached", zap.Error(err))
		} else {
			defer rdb.Close()
			statsCache = cache.NewStatisticsCache(rdb, cfg.StatisticsTTL, log)
		}
	}

	var (
		fileStorage services.FileStorage
		signer      handlers.UploadSigner
	)
	if cfg.CloudinaryURL != "" {
		cld, err := uploads.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryFolder, log)
		if err != nil {
			log.Warn("cloudinary unavailable, attachments will be stored inline", zap.Error(err))
		} else {
			fileStorage, signer = cld, cld
		}
	}

	mailer := notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName, log)

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	notifier := services.Notifiers{hub}
	if mailer != nil {
		notifier = append(notifier, notifications.NewEmailNotifier(store.Users(), mailer, log))
	}

	clock := services.SystemClock{}
	lessons := services.NewLessonService(store, clock, statsCache, notifier, log)
	ratings := services.NewRatingService(store, statsCache, log)

	h := &handlers.Handler{
		Auth:          services.NewAuthService(store, log),
		Lessons:       lessons,
		Reviews:       services.NewReviewService(store, lessons, ratings, clock, notifier, log),
		Ratings:       ratings,
		Relationships: services.NewRelationshipService(store, clock, statsCache, notifier, log),
		Statistics:    services.NewStatisticsService(store, clock, statsCache, log),
		Attachments:   services.NewAttachmentService(store, fileStorage, clock, log),
		Subjects:      services.NewSubjectService(store),
		Profiles:      services.NewProfileService(store, log),
		Signer:        signer,
		JWTSecret:     cfg.JWTSecret,
		JWTTTL:        cfg.JWTTTL,
		Log:           log,
	}

	scheduler, err := jobs.NewScheduler(jobs.New(lessons, ratings, mailer, clock, log), jobs.Schedules{
		Sweep:    cfg.SweepSchedule,
		Ratings:  cfg.RatingSchedule,
		Reminder: cfg.ReminderSchedule,
	})
	if err != nil {
		log.Fatal("invalid job schedule", zap.Error(err))
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	app := fiber.New(fiber.Config{
		AppName:       "Tutor Marketplace",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			log.Error("unhandled request error",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()))
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	routes.Setup(app, h, hub, log)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", zap.Error(err))
	}
}
