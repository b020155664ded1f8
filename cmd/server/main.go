package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lripredict/backend/internal/delivery/http"
	"github.com/lripredict/backend/internal/model"
	"github.com/lripredict/backend/internal/service"
)

func main() {
	// Load environment variables; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := newLogger(cfg.Env)

	// Per-model ordered feature lists, produced by the training pipeline.
	features, err := model.LoadFeatureConfig(cfg.ModelConfigPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ModelConfigPath).Msg("Could not load model configuration")
	}

	classifier := model.NewHTTPScorer(cfg.ModelServiceURL, "model1_classification")
	scorers := map[model.Role]model.Scorer{
		model.RoleClassifier:   classifier,
		model.RoleSingleLength: model.NewHTTPScorer(cfg.ModelServiceURL, "model2_single_lri"),
		model.RolePairedLength: model.NewHTTPScorer(cfg.ModelServiceURL, "model3_paired_lri"),
	}

	// Eager validation: a feature-name mismatch is a deployment error and
	// must abort startup, not a request.
	registry, err := model.NewRegistry(scorers, features)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid model registry")
	}

	// The process must not serve predictions it cannot back with models.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := classifier.Health(ctx); err != nil {
		logger.Fatal().Err(err).Str("url", cfg.ModelServiceURL).Msg("Model server unavailable")
	}
	logger.Info().Str("url", cfg.ModelServiceURL).Msg("Connected to model server")

	predictor := service.NewPredictor(registry, logger)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "LRI Prediction API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, predictor, logger)

	// Graceful shutdown
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited gracefully")
}

type Config struct {
	ModelServiceURL string
	ModelConfigPath string
	AllowOrigins    string
	Port            string
	Env             string
}

func loadConfig() *Config {
	return &Config{
		ModelServiceURL: getEnv("MODEL_SERVICE_URL", "http://localhost:8000"),
		ModelConfigPath: getEnv("MODEL_CONFIG_PATH", "models/model_configs.json"),
		AllowOrigins:    getEnv("ALLOW_ORIGINS", "*"),
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// newLogger builds the process logger; development gets the console
// writer, everything else structured JSON.
func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// requestLogger assigns each request an ID and logs its outcome.
func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		logger.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")

		return err
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
