package main

import (
	"context"
	"os"
	"testing"
)

func TestParseDistribution(t *testing.T) {
	d, err := parseDistribution(`{"probabilities": [0, 0, 0, 0, 0, 0, 0, 3, 1, 0]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	digit, conf := d.Best()
	if digit != 7 || conf != 0.75 {
		t.Fatalf("expected 7 at 0.75, got %d at %v", digit, conf)
	}

	bad := []string{
		`not json`,
		`{"probabilities": [0.5, 0.5]}`,
		`{"probabilities": [0, 0, 0, 0, 0, 0, 0, 0, 0, 0]}`,
		`{"probabilities": [-1, 1, 0, 0, 0, 0, 0, 0, 0, 1]}`,
	}
	for _, in := range bad {
		if _, err := parseDistribution(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestNewGeminiClientRequiresProject(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected an error without a project id")
	}
}

func TestGeminiClassify(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, GeminiConfig{ProjectID: projectID, Region: os.Getenv("GCP_REGION")})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	// A vertical bar reads as a 1.
	var b Bitmap
	for y := 4; y < 24; y++ {
		for x := 13; x < 16; x++ {
			b[y*BitmapSize+x] = 1
		}
	}

	d, err := client.Classify(ctx, b)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	digit, conf := d.Best()
	t.Logf("Predicted %d with confidence %.2f: %v", digit, conf, d)
	if digit != 1 {
		t.Fatalf("expected 1, got %d", digit)
	}
}
