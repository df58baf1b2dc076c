package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mytheresa/category-admin/app/admin"
	"github.com/mytheresa/category-admin/app/categories"
	"github.com/mytheresa/category-admin/app/middleware"
	"github.com/mytheresa/category-admin/config"
	"github.com/mytheresa/category-admin/models"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewAdmin builds the admin web handler talking to cfg.APIBaseURL.
func NewAdmin(cfg *config.Config, log *zap.Logger) (http.Handler, error) {
	client := &http.Client{
		Timeout:   cfg.APITimeout,
		Transport: middleware.TracingTransport(nil),
	}
	svc, err := admin.NewCategoryService(cfg.APIBaseURL, client)
	if err != nil {
		return nil, err
	}

	h, err := admin.NewHandler(svc, log.Named("admin"))
	if err != nil {
		return nil, err
	}
	return NewAdminRouter(h, log.Named("admin")), nil
}

// NewAPI opens the database, migrates it and builds the REST handler. The
// returned function closes the database.
func NewAPI(cfg *config.Config, log *zap.Logger) (http.Handler, func() error, error) {
	db, err := models.OpenDB(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}

	repo := models.NewCategoriesRepository(db)
	if err := repo.Migrate(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	h := categories.NewCategoryHandler(repo, log.Named("api"))
	return NewAPIRouter(h, log.Named("api")), sqlDB.Close, nil
}

// Serve runs an HTTP server on addr until ctx is done, then shuts it down
// gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", addr, err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped", zap.String("addr", addr))
	return nil
}
