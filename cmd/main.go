package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/taskboard/docs"
	"github.com/sbilibin2017/taskboard/internal/facades"
	"github.com/sbilibin2017/taskboard/internal/handlers"
	"github.com/sbilibin2017/taskboard/internal/jwt"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/middlewares"
	"github.com/sbilibin2017/taskboard/internal/repositories"
	"github.com/sbilibin2017/taskboard/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	LoginMaxAttempts int64
	LoginLockSecond  int

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	JWTSecretKey string
	JWTExpSecond int

	RecoveryPurgeIntervalSecond int
	RecoveryExposeToken         bool
}

// @title Taskboard API
// @version 1.0.0
// @description Kanban task tracker with ToDo, Doing and Done columns
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file, when present, and
// returns the application configuration with defaults applied.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// Database config
	cfg.DBDriver = getEnv("DB_DRIVER", repositories.DriverSQLite)
	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", "4"); err != nil {
		return
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Redis config
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	maxAttempts, err := getInt("LOGIN_MAX_ATTEMPTS", "5")
	if err != nil {
		return
	}
	cfg.LoginMaxAttempts = int64(maxAttempts)
	if cfg.LoginLockSecond, err = getInt("LOGIN_LOCK_SECOND", "900"); err != nil {
		return
	}

	// Kafka config
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "taskboard.task-events")

	// SMTP config
	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	if cfg.SMTPPort, err = getInt("SMTP_PORT", "587"); err != nil {
		return
	}
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPass = getEnv("SMTP_PASS", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	if cfg.RecoveryPurgeIntervalSecond, err = getInt("RECOVERY_PURGE_INTERVAL_SECOND", "3600"); err != nil {
		return
	}
	if cfg.RecoveryExposeToken, err = strconv.ParseBool(getEnv("RECOVERY_EXPOSE_TOKEN", "false")); err != nil {
		err = fmt.Errorf("RECOVERY_EXPOSE_TOKEN: %w", err)
		return
	}

	return
}

// app is the wired application: the HTTP handler plus what run needs
// to drive background work and shut down.
type app struct {
	handler http.Handler
	auth    *services.AuthService
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Log.Errorw("failed to close resource", "error", err)
		}
	}
}

// newApp opens the store and optional backends and builds the router.
func newApp(ctx context.Context, cfg config) (*app, error) {
	a := &app{}

	dsn := cfg.DBDSN
	if dsn == "" && cfg.DBDriver == repositories.DriverSQLite {
		dsn = repositories.SQLiteDSN("taskboard.db")
	}
	logger.Log.Infow("Opening database", "driver", cfg.DBDriver)
	db, err := repositories.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	a.closers = append(a.closers, db.Close)

	var authOpts []services.AuthOpt

	// Connect to Redis
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Warnw("Redis not reachable, login throttling fails open", "addr", cfg.RedisAddr, "error", err)
		}
		a.closers = append(a.closers, rdb.Close)
		attempts := repositories.NewLoginAttemptCacheRepository(rdb, time.Duration(cfg.LoginLockSecond)*time.Second)
		authOpts = append(authOpts, services.WithLoginLimiter(attempts, cfg.LoginMaxAttempts))
	} else {
		logger.Log.Info("Redis not configured, login throttling disabled")
	}

	// Task events go nowhere unless brokers are set; the writer stays an
	// untyped nil so the services see it as absent.
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		a.closers = append(a.closers, w.Close)
		kafkaWriter = w
	}

	mailer := facades.NewRecoveryMailFacade(
		facades.NewSMTPDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		cfg.SMTPFrom,
	)
	authOpts = append(authOpts,
		services.WithRecoveryNotifier(mailer),
		services.WithExposedRecoveryToken(cfg.RecoveryExposeToken),
	)
	if cfg.RecoveryExposeToken {
		logger.Log.Warn("Recovery tokens are returned over HTTP when mail is not configured")
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)
	userReadRepo := repositories.NewUserReadRepository(db, txGetter)
	userWriteRepo := repositories.NewUserWriteRepository(db, txGetter)
	taskReadRepo := repositories.NewTaskReadRepository(db, txGetter)
	taskWriteRepo := repositories.NewTaskWriteRepository(db, txGetter)
	recoveryRepo := repositories.NewRecoveryRepository(db, txGetter)
	statsRepo := repositories.NewStatsRepository(db, txGetter)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, recoveryRepo, tokens, authOpts...)
	taskService := services.NewTaskService(taskReadRepo, taskWriteRepo, kafkaWriter)
	adminService := services.NewAdminService(userReadRepo, userWriteRepo, taskReadRepo, taskWriteRepo, statsRepo, kafkaWriter)

	a.auth = authService
	a.handler = newRouter(cfg, db, tokens, authService, taskService, adminService)
	return a, nil
}

// newRouter mounts every route. All API routes run inside a per-request
// transaction; authenticated routes additionally resolve the session.
func newRouter(
	cfg config,
	db *sqlx.DB,
	tokens *jwt.JWT,
	authService *services.AuthService,
	taskService *services.TaskService,
	adminService *services.AdminService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(db))

		// Public routes
		r.Post("/register", handlers.NewRegisterHandler(authService))
		r.Post("/login", handlers.NewLoginHandler(authService))
		r.Post("/password/recovery", handlers.NewRequestRecoveryHandler(authService))
		r.Post("/password/reset", handlers.NewResetPasswordHandler(authService))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokens, authService))

			r.Post("/logout", handlers.NewLogoutHandler(authService))
			r.Put("/me/password", handlers.NewChangePasswordHandler(authService))

			r.Get("/tasks", handlers.NewListTasksHandler(taskService))
			r.Post("/tasks", handlers.NewCreateTaskHandler(taskService))
			r.Get("/tasks/{id}", handlers.NewGetTaskHandler(taskService))
			r.Put("/tasks/{id}", handlers.NewUpdateTaskHandler(taskService))
			r.Patch("/tasks/{id}/status", handlers.NewUpdateTaskStatusHandler(taskService))
			r.Delete("/tasks/{id}", handlers.NewDeleteTaskHandler(taskService))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewares.AdminMiddleware)

				r.Get("/users", handlers.NewAdminListUsersHandler(adminService))
				r.Post("/users", handlers.NewAdminCreateUserHandler(adminService))
				r.Patch("/users/{id}/admin", handlers.NewAdminSetRoleHandler(adminService))
				r.Put("/users/{id}/password", handlers.NewAdminResetPasswordHandler(adminService))
				r.Delete("/users/{id}", handlers.NewAdminDeleteUserHandler(adminService))
				r.Get("/tasks", handlers.NewAdminListTasksHandler(adminService))
				r.Post("/tasks", handlers.NewAdminAssignTaskHandler(adminService))
				r.Get("/stats", handlers.NewAdminStatsHandler(adminService))
			})
		})
	})

	return r
}

type recoveryPurger interface {
	PurgeStaleRecoveries(ctx context.Context) (int64, error)
}

// purgeRecoveries deletes stale recovery entries every interval until
// ctx is done. A non-positive interval disables it.
func purgeRecoveries(ctx context.Context, purger recoveryPurger, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.PurgeStaleRecoveries(ctx)
			if err != nil {
				continue
			}
			if n > 0 {
				logger.Log.Infow("Purged stale recovery entries", "count", n)
			}
		}
	}
}

// run initializes the logger, the store and optional backends, and the
// HTTP server. It handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: a.handler,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	purgeDone := make(chan struct{})
	go func() {
		defer close(purgeDone)
		purgeRecoveries(ctxShutdown, a.auth, time.Duration(cfg.RecoveryPurgeIntervalSecond)*time.Second)
	}()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		stop()
		<-purgeDone
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	<-purgeDone

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
