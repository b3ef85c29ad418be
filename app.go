package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"agriconnect/config"
	"agriconnect/domain"
	"agriconnect/repository"
	"agriconnect/service"
)

// app holds the wired services shared by every command.
type app struct {
	closeCache   func() error
	directory    *service.DirectoryService
	connections  *service.ConnectionService
	plans        *service.RepaymentPlanService
	loanRequests *service.LoanRequestService
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	seed, err := loadProfiles(cfg)
	if err != nil {
		return nil, err
	}
	profiles, err := repository.NewProfileRepositoryMemory(seed)
	if err != nil {
		return nil, err
	}
	requests := repository.NewLoanRequestRepositoryMemory()

	cache, closeCache := newCache(ctx, cfg, logger)

	ai := service.NewAIService(service.AIConfig{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	}, logger.Named("ai"))
	if !ai.Configured() {
		logger.Warn("GEMINI_API_KEY is not set; repayment plans will fail until it is configured")
	}

	currentUser := cfg.Directory.CurrentUserID
	if _, err := profiles.FindByID(ctx, currentUser); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &app{
		closeCache: closeCache,
		directory: service.NewDirectoryService(
			profiles, cache, cfg.Cache.TTL, currentUser, logger.Named("directory"),
		),
		connections: service.NewConnectionService(profiles, requests),
		plans: service.NewRepaymentPlanService(profiles, ai, service.PlanOptions{
			Principal: cfg.Plan.Principal,
			Strict:    cfg.Plan.StrictValidation,
		}, logger.Named("plan")),
		loanRequests: service.NewLoanRequestService(profiles, requests, service.LoanRequestOptions{
			CurrentUserID: currentUser,
			SubmitDelay:   cfg.LoanRequests.SubmitDelay,
		}, logger.Named("loan_requests")),
	}, nil
}

func (a *app) Close() error {
	a.plans.Wait()
	return a.closeCache()
}

func loadProfiles(cfg config.Config) ([]domain.Borrower, error) {
	if cfg.Data.ProfilesPath != "" {
		return repository.LoadProfiles(cfg.Data.ProfilesPath)
	}
	return repository.DefaultProfiles()
}

// newCache connects to Redis when configured and falls back to the in-memory
// cache when it is not reachable.
func newCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.CacheRepository, func() error) {
	noop := func() error { return nil }
	if cfg.Cache.RedisAddr == "" {
		return repository.NewMockCache(), noop
	}

	rc := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache",
			zap.String("addr", cfg.Cache.RedisAddr),
			zap.Error(err),
		)
		_ = rc.Close()
		return repository.NewMockCache(), noop
	}
	logger.Info("using redis cache", zap.String("addr", cfg.Cache.RedisAddr))
	return rc, rc.Close
}
