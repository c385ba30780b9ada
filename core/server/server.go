package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"eventrely-api/core/cache"
	"eventrely-api/core/clock"
	"eventrely-api/core/config"
	"eventrely-api/core/controller"
	"eventrely-api/core/database"
	"eventrely-api/core/logger"
	"eventrely-api/core/middleware"
	"eventrely-api/core/queue"
	"eventrely-api/core/telemetry"
	"eventrely-api/modules/reminder"
	"eventrely-api/modules/reminder/service"

	"github.com/labstack/echo/v4"
)

const defaultShutdownTimeout = 10 * time.Second

// Server owns the HTTP listener and every resource opened at startup.
type Server struct {
	cfg             *config.Config
	echo            *echo.Echo
	db              *database.Database
	cache           cache.Cache
	queueClient     *queue.Client
	worker          *queue.Worker
	shutdownTracing func(context.Context) error
}

// Run loads configuration, starts the server and blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server:Run:Error", "error", err)
			_ = srv.Stop()
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	return srv.Stop()
}

// New opens the database, the optional Redis cache and task queue, and
// builds the echo instance with every route registered.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{cfg: cfg, cache: cache.NewNoop()}

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	s.shutdownTracing = shutdownTracing

	db, err := database.InitDB(ctx, database.DatabaseConfig{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		AutoMigrate:     cfg.Database.AutoMigrate,
	})
	if err != nil {
		_ = s.Stop()
		return nil, err
	}
	s.db = &db

	redisCfg := cache.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if cfg.Redis.Enabled {
		c, err := cache.NewRedisCache(ctx, redisCfg)
		if err != nil {
			// The cache is optional; reads fall back to the database.
			logger.Warn("Redis unavailable, caching disabled", "error", err, "addr", cfg.Redis.Addr)
		} else {
			s.cache = c
		}
	}

	var publisher service.EventPublisher = service.NewLogPublisher()
	if cfg.Queue.Enabled {
		queueRedis := queue.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		s.queueClient = queue.NewClient(queueRedis, cfg.Queue.Name)
		publisher = service.NewQueuePublisher(s.queueClient)

		s.worker = queue.NewWorker(queueRedis, cfg.Queue.Name, cfg.Queue.Concurrency)
		reminder.RegisterWorker(s.worker)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = controller.HTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.NewMiddleware(cfg.Server.CORSOrigins).Setup(e)
	registerSystemRoutes(e, cfg.App.Name, s.db, s.cache)

	reminder.Init(e, s.db, reminder.Options{
		Cache:     s.cache,
		Publisher: publisher,
		Clock:     clock.NewSystem(),
		Query: service.QueryOptions{
			DefaultUpcomingLimit: cfg.Reminder.DefaultUpcomingLimit,
			MaxUpcomingLimit:     cfg.Reminder.MaxUpcomingLimit,
			CacheTTL:             cfg.Redis.CacheTTL,
		},
	})

	s.echo = e
	return s, nil
}

// Start starts the queue worker, if configured, and then the HTTP listener.
// It blocks until the listener stops.
func (s *Server) Start() error {
	if s.worker != nil {
		if err := s.worker.Start(); err != nil {
			return err
		}
	}

	logger.Info("Starting server", "address", s.cfg.Server.Address(), "driver", s.db.DriverName())
	return s.echo.Start(s.cfg.Server.Address())
}

// Stop calls Shutdown with a deadline of the configured shutdown timeout.
func (s *Server) Stop() error {
	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests and releases resources in reverse order
// of acquisition.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.echo != nil {
		if err := s.echo.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
	}
	if s.worker != nil {
		s.worker.Shutdown()
	}
	if s.queueClient != nil {
		if err := s.queueClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("queue: %w", err))
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if s.shutdownTracing != nil {
		if err := s.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("Server:Shutdown:Error", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// Echo exposes the router, mostly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
