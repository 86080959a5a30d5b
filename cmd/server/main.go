package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mytheresa/catalog-api/app/categories"
	"github.com/mytheresa/catalog-api/app/config"
	"github.com/mytheresa/catalog-api/app/database"
	"github.com/mytheresa/catalog-api/app/logger"
	"github.com/mytheresa/catalog-api/app/products"
	"github.com/mytheresa/catalog-api/app/routes"
	"github.com/mytheresa/catalog-api/app/users"
	"github.com/mytheresa/catalog-api/models"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.Log.Level)

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	categoriesRepo := models.NewCategoriesRepository(db)
	handlers := routes.Handlers{
		Categories:  categories.NewCategoryHandler(categoriesRepo),
		Products:    products.NewProductHandler(models.NewProductsRepository(db), categoriesRepo),
		Users:       users.NewUserHandler(models.NewUsersRepository(db), users.BcryptHasher{Cost: bcrypt.DefaultCost}),
		Diagnostics: routes.NewDiagnostics(cfg.App),
	}

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:      routes.New(handlers, log),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server started", "addr", srv.Addr, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case serveErr = <-errCh:
		log.Error("HTTP server failed", "error", serveErr)
	case sig := <-shutdown:
		log.Info("received shutdown signal, stopping gracefully", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		if serveErr == nil {
			serveErr = err
		}
	} else {
		log.Info("HTTP server stopped")
	}

	return serveErr
}
