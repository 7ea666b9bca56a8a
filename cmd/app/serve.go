package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "postboard/internal/adapters/database"
	"postboard/internal/adapters/httpapi"
	memadapter "postboard/internal/adapters/memory"
	redisadapter "postboard/internal/adapters/redis"
	"postboard/internal/config"
	postapp "postboard/internal/core/post/service"
	postPort "postboard/internal/ports/post"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort  string
	serveStore string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides APP_PORT)")
	cmd.Flags().StringVar(&serveStore, "store", "", "Post store: memory, mysql, sqlite or redis (overrides STORE_DRIVER)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.AppPort = servePort
	}
	if serveStore != "" {
		cfg.StoreDriver = serveStore
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := config.InitLogger(cfg)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	postSvc := postapp.NewPostService(postRepo, logger)
	if cfg.SeedPosts {
		if _, err := postSvc.SeedPosts(ctx, postapp.DemoPosts); err != nil {
			return err
		}
	}

	handler, err := httpapi.SetupRoutes(postSvc, httpapi.Options{
		Logger:    logger,
		ViewsDir:  cfg.ViewsDir,
		PublicDir: cfg.PublicDir,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr()), zap.String("store", cfg.StoreDriver))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore builds the post store picked by cfg.StoreDriver and a func that releases it.
func openStore(ctx context.Context, cfg *config.Config) (postPort.PostRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL, config.DriverSQLite:
		db, err := config.OpenDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			sqlDB, err := db.DB()
			if err != nil {
				config.Logger.Error("Error getting raw DB", zap.Error(err))
				return
			}
			if err := sqlDB.Close(); err != nil {
				config.Logger.Error("Error closing database connection", zap.Error(err))
			}
		}
		return dbadapter.NewPostRepositoryDatabase(db), closeDB, nil
	case config.DriverRedis:
		client, err := config.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeRedis := func() {
			if err := client.Close(); err != nil {
				config.Logger.Error("Error closing Redis connection", zap.Error(err))
			}
		}
		return redisadapter.NewPostRepositoryRedis(client), closeRedis, nil
	default:
		return memadapter.NewPostRepositoryMemory(), func() {}, nil
	}
}
