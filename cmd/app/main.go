package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"munchies/cmd"
	httpin "munchies/internal/adapters/in/http"
	"munchies/internal/adapters/out/postgres/assignmentrepo"
	"munchies/internal/adapters/out/postgres/courierrepo"
	"munchies/internal/adapters/out/postgres/orderrepo"
	"munchies/internal/adapters/out/postgres/restaurantrepo"
	"munchies/internal/adapters/out/redisbus"
	"munchies/internal/jobs"
	"munchies/internal/realtime"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB := mustConnectDB(configs)
	bus := createBus(ctx, configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, bus, logger)

	unsubscribe := app.InstallNotificationFanout(ctx)
	defer unsubscribe()

	jobManager := jobs.NewJobManager(app.CreateAcceptPendingOrdersCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:     goDotEnvVariable("REDIS_ADDR"),
		RedisPassword: goDotEnvVariable("REDIS_PASSWORD"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&courierrepo.CourierDTO{},
		&restaurantrepo.RestaurantPolicyDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// createBus picks the event fabric: redis pub/sub when REDIS_ADDR is set so
// events cross processes, the in-memory bus otherwise.
func createBus(ctx context.Context, configs cmd.Config, logger *slog.Logger) realtime.Bus {
	if configs.RedisAddr == "" {
		return realtime.NewInMemoryBus()
	}

	client, err := redisbus.NewClient(ctx, redisbus.Config{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	return redisbus.NewBus(client, logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := httpin.NewServer(
		app.CreateTransitionOrderStatusCommandHandler(),
		app.CreateAssignCourierCommandHandler(),
		app.CreateUnassignCourierCommandHandler(),
		app.CreateCreateCourierCommandHandler(),
		app.CreateSetCourierShiftCommandHandler(),
		app.CreateSetRestaurantPolicyCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetRestaurantOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server stopped: %v", err)
	}
}
