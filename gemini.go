package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"google.golang.org/genai"
)

const classifyPrompt = `This image is a single handwritten digit, dark ink on a white 28x28 background.

Return the probability that it shows each digit from 0 to 9 as JSON:
{"probabilities": [p0, p1, p2, p3, p4, p5, p6, p7, p8, p9]}

Rules:
- Exactly 10 numbers between 0 and 1, in digit order.
- If the drawing does not look like a digit, spread the probability evenly.
- Answer ONLY with the JSON, no comment and no markdown.`

var distributionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"probabilities": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeNumber},
		},
	},
	Required: []string{"probabilities"},
}

// Classify sends the drawing to Gemini and returns its digit distribution.
func (g *GeminiClient) Classify(ctx context.Context, b Bitmap) (Distribution, error) {
	img, err := b.PNG()
	if err != nil {
		return Distribution{}, err
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: classifyPrompt},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: img}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0)),
			ResponseMIMEType: "application/json",
			ResponseSchema:   distributionSchema,
		},
	)
	if err != nil {
		return Distribution{}, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return Distribution{}, errors.New("empty gemini response")
	}
	return parseDistribution(text)
}

// parseDistribution decodes a model answer and normalizes it to sum to 1.
func parseDistribution(text string) (Distribution, error) {
	var payload struct {
		Probabilities []float64 `json:"probabilities"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return Distribution{}, fmt.Errorf("parse distribution JSON: %w\nraw response: %s", err, text)
	}

	var d Distribution
	if len(payload.Probabilities) != len(d) {
		return Distribution{}, fmt.Errorf("expected %d probabilities, got %d", len(d), len(payload.Probabilities))
	}

	var sum float64
	for i, p := range payload.Probabilities {
		if math.IsNaN(p) || p < 0 {
			return Distribution{}, fmt.Errorf("invalid probability %v for digit %d", p, i)
		}
		d[i] = p
		sum += p
	}
	if sum == 0 {
		return Distribution{}, errors.New("distribution sums to zero")
	}
	for i := range d {
		d[i] /= sum
	}
	return d, nil
}
