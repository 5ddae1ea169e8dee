package main

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig selects the Vertex AI project and model used for recognition.
type GeminiConfig struct {
	ProjectID string
	Region    string
	Model     string
}

// GeminiClient classifies handwritten digits with a Gemini model on Vertex AI.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient connects to Vertex AI with Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("gemini: project id is required")
	}
	if cfg.Region == "" {
		cfg.Region = "europe-west1"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client for %s/%s: %w", cfg.ProjectID, cfg.Region, err)
	}
	return &GeminiClient{client: client, modelName: cfg.Model}, nil
}

// Model returns the model name requests are sent to.
func (g *GeminiClient) Model() string { return g.modelName }

// Close releases resources held by the client. The genai client keeps none.
func (g *GeminiClient) Close() error {
	return nil
}
