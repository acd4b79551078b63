package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/pkg/config"
	"github.com/artem13815/mockinterview/pkg/llm"
	"github.com/artem13815/mockinterview/pkg/llm/breaker"
	"github.com/artem13815/mockinterview/pkg/llm/gemini"
	"github.com/artem13815/mockinterview/pkg/llm/openrouter"
	"github.com/artem13815/mockinterview/pkg/metrics"
)

type namedModel interface {
	llm.ChatModel
	Name() string
}

// newChatModel builds the configured provider wrapped as
// metrics -> circuit breaker -> provider.
func newChatModel(ctx context.Context, cfg config.Config, m *metrics.Metrics, log *zap.Logger) (llm.ChatModel, *breaker.ChatModel, string, error) {
	var provider namedModel
	switch cfg.LLM.Provider {
	case config.ProviderOpenRouter:
		if cfg.LLM.APIKey == "" {
			log.Warn("LLM_API_KEY is empty, completion calls will be rejected upstream")
		}
		provider = openrouter.New(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model,
			cfg.LLM.AppTitle, cfg.LLM.Referer, cfg.LLM.Timeout)
	case config.ProviderGemini:
		c, err := gemini.New(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, nil, "", err
		}
		provider = c
	default:
		return nil, nil, "", fmt.Errorf("unsupported LLM_PROVIDER %q (openrouter or gemini)", cfg.LLM.Provider)
	}

	guarded := breaker.Wrap(provider, breaker.Settings{
		MaxFailures: uint32(max(cfg.Breaker.MaxFailures, 0)),
		OpenTimeout: cfg.Breaker.OpenTimeout,
	}, log)
	log.Info("completion provider ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.Name()))
	return metrics.InstrumentChatModel(guarded, m), guarded, provider.Name(), nil
}
