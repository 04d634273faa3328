package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swish-api/internal/api/handlers"
	"swish-api/internal/config"
	"swish-api/internal/jobs"
	"swish-api/internal/repository"
	"swish-api/internal/service"
	"swish-api/internal/websocket"
	"swish-api/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	repo := repository.New(db)
	if err := repo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// The live leaderboard feed needs Redis; everything else works without it.
	var (
		publisher *repository.EventPublisher
		eventPool *worker.Pool
		hub       *websocket.Hub
	)
	if cfg.Redis.Enabled {
		redisClient, err := initRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")

		publisher = repository.NewEventPublisher(redisClient)

		eventPool = worker.NewPool(4, 256, publisher)
		eventPool.Start()

		hub = websocket.NewHub(publisher)
	}

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	if hub != nil {
		go hub.Run(hubCtx)
	}

	userService := service.NewUserService(repo)
	gameService := service.NewGameService(repo, eventPool)
	shotService := service.NewShotService(repo)
	leaderboardService := service.NewLeaderboardService(repo)

	userHandler := handlers.NewUserHandler(userService)
	gameHandler := handlers.NewGameHandler(gameService)
	shotHandler := handlers.NewShotHandler(shotService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	healthHandler := handlers.NewHealthHandler(repo, publisher)

	var simulator *jobs.Simulator
	if cfg.Simulator.Enabled {
		simulator = jobs.NewSimulator(repo, gameService, shotService, jobs.SimulatorConfig{
			TickInterval: cfg.Simulator.TickInterval,
			ShotsPerGame: cfg.Simulator.ShotsPerGame,
		})
		if err := simulator.Start(hubCtx); err != nil {
			log.Printf("Failed to start simulator: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "Swish API",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.Register(app, userHandler, gameHandler, shotHandler, leaderboardHandler, healthHandler)

	if hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if fiberws.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", fiberws.New(func(conn *fiberws.Conn) {
			websocket.ServeWS(hub, conn)
		}))
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		if simulator != nil {
			simulator.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}

		hubCancel()

		if eventPool != nil {
			if err := eventPool.Shutdown(10 * time.Second); err != nil {
				log.Printf("Event pool shutdown error: %v", err)
			}
		}

		if publisher != nil {
			if err := publisher.Close(); err != nil {
				log.Printf("Error closing Redis: %v", err)
			}
		}
		if err := repo.Close(); err != nil {
			log.Printf("Error closing PostgreSQL: %v", err)
		}

		log.Println("Server shutdown complete")
	}()

	port := cfg.Server.Port
	log.Printf("Server starting on port %d...", port)
	if err := app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initPostgres initializes PostgreSQL connection with connection pooling
func initPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// initRedis initializes the Redis connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// errorHandler handles errors that escape the route handlers
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   "Request failed",
		"message": err.Error(),
	})
}
