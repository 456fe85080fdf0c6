package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghecrochet/storefront/app/cmd"
	"github.com/ghecrochet/storefront/app/configs"
	"github.com/ghecrochet/storefront/app/models/migrations"
	"github.com/ghecrochet/storefront/app/routes"
	"github.com/ghecrochet/storefront/app/storage"
	"go.uber.org/zap"
)

func main() {
	env := configs.LoadEnv()

	logger, err := configs.InitLogger(env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if len(os.Args) > 1 {
		if err := cmd.RunCli(context.Background(), env, os.Args); err != nil {
			zap.S().Fatal(err)
		}
		return
	}

	keys, err := configs.LoadSessionKeysFromEnv(env)
	if err != nil {
		zap.S().Fatalf("Session keys: %v (run `generate-keys`)", err)
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		zap.S().Fatalf("DB connection failed: %v", err)
	}
	if !env.IsProduction() {
		if err := migrations.AutoMigrate(db); err != nil {
			zap.S().Fatalf("Migration failed: %v", err)
		}
	}

	bucket, err := storage.NewOSBucket(env.UploadDir, env.UploadURL)
	if err != nil {
		zap.S().Fatalf("Upload storage: %v", err)
	}

	router := routes.NewRouter(db, routes.Options{Env: env, Keys: keys, Bucket: bucket})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("Server shutdown: %v", err)
	}
	zap.S().Info("Server stopped")
}
