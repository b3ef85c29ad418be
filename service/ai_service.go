package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"agriconnect/logging"
)

// PlanGenerator sends a prompt with a response schema to a generative model
// and returns the raw response text.
type PlanGenerator interface {
	GenerateText(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds one call; zero leaves it to the caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// AIService is the Gemini-backed PlanGenerator. It makes exactly one request
// per call and never retries.
type AIService struct {
	cfg    AIConfig
	logger *zap.Logger

	once      sync.Once
	client    *genai.Client
	clientErr error
}

var _ PlanGenerator = (*AIService)(nil)

func NewAIService(cfg AIConfig, logger *zap.Logger) *AIService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &AIService{
		cfg:    cfg,
		logger: logging.OrNop(logger),
	}
}

// Configured reports whether a credential is present.
func (s *AIService) Configured() bool {
	return s.cfg.APIKey != ""
}

func (s *AIService) getClient(ctx context.Context) (*genai.Client, error) {
	s.once.Do(func() {
		s.client, s.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      s.cfg.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  s.cfg.HTTPClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: s.cfg.BaseURL},
		})
	})
	return s.client, s.clientErr
}

func (s *AIService) GenerateText(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if !s.Configured() {
		return "", &PlanError{Kind: KindConfiguration}
	}

	client, err := s.getClient(ctx)
	if err != nil {
		s.logger.Error("failed to create GenAI client", zap.Error(err))
		return "", &PlanError{Kind: KindService, Err: fmt.Errorf("create client: %w", err)}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, s.cfg.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		s.logger.Warn("GenAI generate failed",
			zap.String("model", s.cfg.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", &PlanError{Kind: KindService, Err: fmt.Errorf("generate content: %w", err)}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("GenAI returned no text", zap.String("model", s.cfg.Model))
		return "", &PlanError{Kind: KindService, Err: fmt.Errorf("no completion returned")}
	}

	s.logger.Debug("GenAI generate done",
		zap.String("model", s.cfg.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
