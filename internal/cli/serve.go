package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/accountweb/accountweb/internal/factory"
	redisstorage "github.com/accountweb/accountweb/internal/storage/redis"
	"github.com/accountweb/accountweb/internal/web"
)

type serveOptions struct {
	host         string
	port         int
	storageType  string
	databaseURL  string
	sessionStore string
	redisURL     string
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{
		host:         envOr("HOST", ""),
		storageType:  envOr("STORAGE_TYPE", factory.StorageTypeMemory),
		databaseURL:  envOr("DATABASE_URL", ""),
		sessionStore: envOr("SESSION_STORE_TYPE", ""),
		redisURL:     envOr("REDIS_URL", ""),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", opts.host, "Listen host (env: HOST)")
	cmd.Flags().IntVar(&opts.port, "port", 8080, "Listen port")
	cmd.Flags().StringVar(&opts.storageType, "storage-type", opts.storageType, "User storage backend: memory, postgres (env: STORAGE_TYPE)")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", opts.databaseURL, "PostgreSQL connection URL (env: DATABASE_URL)")
	cmd.Flags().StringVar(&opts.sessionStore, "session-store", opts.sessionStore, "Session storage backend: memory, postgres, redis (env: SESSION_STORE_TYPE)")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "Redis connection URL (env: REDIS_URL)")

	return cmd
}

func runServe(opts serveOptions) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		Logger:           logger,
		StorageType:      opts.storageType,
		DatabaseURL:      opts.databaseURL,
		SessionStoreType: opts.sessionStore,
	}

	if opts.sessionStore == factory.SessionStoreTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		if opts.redisURL != "" {
			redisCfg.URL = opts.redisURL
		}
		cfg.RedisConfig = &redisCfg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer app.Close()

	router := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
	})

	serverConfig := web.DefaultServerConfig()
	serverConfig.Host = opts.host
	serverConfig.Port = opts.port
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
