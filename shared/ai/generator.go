package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"nba-dispatch/shared/config"
)

// probePrompt is the trivial prompt used to verify a model actually responds
// before the run commits to it.
const probePrompt = "Say 'OK' if you're ready."

// ErrNoModelAvailable means the configured model and every fallback failed
// the startup probe. Callers treat this as fatal.
var ErrNoModelAvailable = errors.New("no generation model available")

// Generator wraps the Gemini client behind a plain text-in/text-out call.
type Generator struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGenerator creates the Gemini client and selects a working model by
// probing the configured model first, then each fallback in order.
func NewGenerator(ctx context.Context, cfg *config.AIConfig, logger zerolog.Logger) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &Generator{
		client: client,
		logger: logger.With().Str("component", "generator").Logger(),
	}

	candidates := append([]string{cfg.Model}, cfg.FallbackModels...)
	for _, name := range candidates {
		if err := g.probe(ctx, name); err != nil {
			g.logger.Warn().Str("model", name).Err(err).Msg("model failed probe, trying next")
			continue
		}
		g.model = name
		g.logger.Info().Str("model", name).Msg("generation model selected")
		return g, nil
	}

	return nil, fmt.Errorf("%w: tried %v", ErrNoModelAvailable, candidates)
}

// Model returns the name of the model that passed the startup probe.
func (g *Generator) Model() string {
	return g.model
}

// GenerateText runs a single-turn generation and returns the reply text.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generation with %s failed: %w", g.model, err)
	}
	return text, nil
}

func (g *Generator) probe(ctx context.Context, model string) error {
	text, err := g.generate(ctx, model, probePrompt)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("model %s returned an empty probe response", model)
	}
	return nil
}

func (g *Generator) generate(ctx context.Context, model, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
