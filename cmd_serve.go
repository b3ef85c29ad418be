package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpLayer "agriconnect/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
	}()

	violations, err := a.connections.CheckMirrors(ctx)
	if err != nil {
		return fmt.Errorf("check loan mirrors: %w", err)
	}
	for _, v := range violations {
		logger.Warn("one-sided loan edge",
			zap.String("profile_id", v.ProfileID),
			zap.String("counterparty_id", v.Loan.CounterpartyID),
			zap.String("reason", v.Reason),
		)
	}

	var limiters httpLayer.Limiters
	if cfg.Server.PlanRateLimit > 0 {
		limiters.Plans = httpLayer.NewRateLimiter(cfg.Server.PlanRateLimit, cfg.Server.RateWindow)
		defer limiters.Plans.Stop()
	}
	if cfg.Server.RateLimit > 0 {
		limiters.Writes = httpLayer.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		defer limiters.Writes.Stop()
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpLayer.NewRouter(httpLayer.Handlers{
		Profiles:     httpLayer.NewProfileHandler(a.directory, a.connections),
		Plans:        httpLayer.NewRepaymentPlanHandler(a.plans),
		Connections:  httpLayer.NewConnectionHandler(a.connections, cfg.Directory.CurrentUserID),
		LoanRequests: httpLayer.NewLoanRequestHandler(a.loanRequests),
	}, limiters, logger.Named("http"))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("Server exited")
	return err
}
