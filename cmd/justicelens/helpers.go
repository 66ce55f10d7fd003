package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/catalog"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/config"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/narration"
)

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func newNarrator(cfg *config.Config) (narration.Synthesizer, error) {
	return narration.New(cfg.NarrationProvider, narration.Options{
		Timeout:       cfg.NarrationTimeout,
		GTTSBaseURL:   cfg.GTTSBaseURL,
		Language:      cfg.NarrationLang,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIVoice:   cfg.OpenAIVoice,
	})
}

// newEvaluator wires the embedded catalog to the configured narrator.
func newEvaluator(cfg *config.Config, logger *slog.Logger) (*interaction.Evaluator, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	narrator, err := newNarrator(cfg)
	if err != nil {
		return nil, fmt.Errorf("narration: %w", err)
	}

	logger.Info("catalog loaded",
		"cases", cat.Len(),
		"narration", cfg.NarrationProvider,
	)
	return interaction.NewEvaluator(cat, narrator, logger), nil
}
