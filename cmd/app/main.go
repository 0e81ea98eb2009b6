package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"ordercart/cmd"
	httpin "ordercart/internal/adapters/in/http"
	"ordercart/internal/adapters/out/postgres/batchrepo"
	"ordercart/internal/adapters/out/postgres/fingerprintrepo"
	"ordercart/internal/adapters/out/postgres/orderrepo"
	"ordercart/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := mustOpenDatabase(configs)
	app := cmd.NewCompositionRoot(configs, db)
	defer func() {
		if err := app.Close(); err != nil {
			app.Logger().Error("Failed to close composition root", "error", err)
		}
	}()

	jobManager := jobs.NewJobManager(app.CreateSuggestBatchesQueryHandler(), app.Logger())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaEventsTopic:        goDotEnvVariable("KAFKA_ORDER_EVENTS_TOPIC"),
		SMTPHost:                goDotEnvVariable("SMTP_HOST"),
		SMTPPort:                intEnvVariable("SMTP_PORT", 587),
		SMTPUser:                goDotEnvVariable("SMTP_USER"),
		SMTPPassword:            goDotEnvVariable("SMTP_PASSWORD"),
		MailFrom:                goDotEnvVariable("MAIL_FROM"),
		AIServiceURL:            goDotEnvVariable("AI_SERVICE_URL"),
		AITimeout:               durationEnvVariable("AI_TIMEOUT", 10*time.Second),
		AllowReorderAfterClosed: boolEnvVariable("ALLOW_REORDER_AFTER_CLOSED"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s value: %v", key, err)
	}
	return value
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s value: %v", key, err)
	}
	return value
}

func boolEnvVariable(key string) bool {
	value, err := strconv.ParseBool(goDotEnvVariable(key))
	if err != nil {
		return false
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which fingerprint reservation relies on.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&fingerprintrepo.FingerprintDTO{},
		&batchrepo.BatchDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(app.MetricsHandler()))

	server := httpin.NewServer(
		app.CreateIntakeOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateBulkTransitionCommandHandler(),
		app.CreateCreateBatchCommandHandler(),
		app.CreateRaiseExceptionCommandHandler(),
		app.CreateAnalyzeExceptionCommandHandler(),
		app.CreateResolveExceptionCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetExceptionsQueryHandler(),
		app.CreateGetBatchQueryHandler(),
		app.CreateSuggestBatchesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
