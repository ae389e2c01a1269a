package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/coldchain/dispatch-optimizer/internal/handlers"
	"github.com/coldchain/dispatch-optimizer/internal/inventory"
	"github.com/coldchain/dispatch-optimizer/internal/optimizer"
	"github.com/coldchain/dispatch-optimizer/internal/synth"
	applogger "github.com/coldchain/dispatch-optimizer/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP optimize API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	_ = godotenv.Load()

	appLogger := applogger.New()

	redisURL := getEnv("REDIS_URL", "")
	var redisClient *redis.Client
	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	httpClient := &http.Client{Timeout: time.Duration(getEnvInt("WAREHOUSE_TIMEOUT_SECONDS", 10)) * time.Second}
	oracle := inventory.Oracle(inventory.NewHTTPOracle(
		getEnv("API_SERVER_URL", "http://localhost:8080"),
		getEnv("AGENT_API_TOKEN", ""),
		httpClient,
		appLogger,
	))
	if redisClient != nil {
		oracle = inventory.NewCachedOracle(oracle, redisClient, time.Duration(getEnvInt("WAREHOUSE_CACHE_TTL_SECONDS", 30))*time.Second)
	}

	synthesizer := synth.New(oracle, appLogger)
	opt := optimizer.New(synthesizer, nil, appLogger)
	h := handlers.New(opt, appLogger)

	app := fiber.New(fiber.Config{AppName: "dispatch-optimizer"})
	app.Use(requestid.New(requestid.Config{Generator: func() string { return uuid.New().String() }}))
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: getEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", h.Health)
	app.Get("/metrics", h.Metrics)
	app.Post("/optimize", h.Optimize)

	port := getEnv("PORT", "5001")
	log.Printf("dispatch-optimizer listening on :%s", port)
	return app.Listen(":" + port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
