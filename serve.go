package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shorturl/cache"
	"shorturl/cache/cacher"
	"shorturl/cache/inmemory"
	"shorturl/cache/redis"
	"shorturl/config"
	"shorturl/logger"
	"shorturl/repository"
	"shorturl/server"
	"shorturl/shortener"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

func newCacheEngine(env config.Env) (cacher.Engine, error) {
	switch env.Cache.Engine {
	case "memory", "":
		return inmemory.New(time.Hour, 24*time.Hour), nil
	case "redis":
		return redis.New(env.Cache.Host, env.Cache.Port), nil
	default:
		return nil, fmt.Errorf("unknown cache engine %q", env.Cache.Engine)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zaplogger, err := logger.New(env.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zaplogger.Sync()

	db, err := repository.NewPGRepo(env.DB.Port, env.DB.Host, env.DB.User, env.DB.Name, env.DB.Password, env.DB.BaseChars)
	if err != nil {
		return fmt.Errorf("failed to connect db: %w", err)
	}
	engine, err := newCacheEngine(env)
	if err != nil {
		return err
	}
	repo := cache.New(db, engine, zaplogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	counter := shortener.NewCounter(repo, env.Counter.FlushInterval, zaplogger)
	counterDone := make(chan struct{})
	go func() {
		counter.Run(ctx)
		close(counterDone)
	}()

	service := shortener.New(repo, counter, zaplogger)
	if _, err := service.Codec(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: server.NewRouter(service, zaplogger, env.Web.BaseURL),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zaplogger.Error("failed to shut down server", zap.Error(err))
		}
	}()

	zaplogger.Info("listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-counterDone
		return err
	}
	<-counterDone
	return nil
}
