package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/gaubuali/bingo-generator/internal/adapters/http"
	"github.com/gaubuali/bingo-generator/internal/adapters/pdf"
	"github.com/gaubuali/bingo-generator/internal/app"
	"github.com/gaubuali/bingo-generator/internal/config"
)

func runServe(ctx context.Context, cfg config.Config) error {
	logger := newLogger(os.Stdout, cfg.LogLevel)

	svc := app.NewCardService(pdf.NewRenderer(""), newRNG(cfg.Seed), logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, httpadapter.Defaults{
		Range:           cfg.Range(),
		NumbersPerCard:  cfg.NumbersPerCard,
		WantFreeCenter:  cfg.FreeCenter,
		CardCount:       cfg.CardCount,
		AllowDuplicates: cfg.AllowDuplicates,
		Criterion:       cfg.Criterion,
	})
	handler.Register(e)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
