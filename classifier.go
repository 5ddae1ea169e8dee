package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/time/rate"
)

// BitmapSize is the side length of the classifier input.
const BitmapSize = 28

// inkThreshold is the intensity above which a pixel counts as drawn.
const inkThreshold = 0.05

// Bitmap is a 28x28 grayscale drawing, row-major, normalized to 0..1 with ink as 1.
type Bitmap [BitmapSize * BitmapSize]float32

// BitmapFromPixels copies a flat pixel slice into a bitmap, clamping to 0..1.
func BitmapFromPixels(px []float64) (Bitmap, error) {
	var b Bitmap
	if len(px) != len(b) {
		return b, fmt.Errorf("bitmap needs %d pixels, got %d", len(b), len(px))
	}
	for i, v := range px {
		b[i] = float32(min(max(v, 0), 1))
	}
	return b, nil
}

// HasInk reports whether anything was drawn.
func (b *Bitmap) HasInk() bool {
	for _, v := range b {
		if v > inkThreshold {
			return true
		}
	}
	return false
}

// PNG renders the bitmap as dark ink on a white background.
func (b *Bitmap) PNG() ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, BitmapSize, BitmapSize))
	for i, v := range b {
		img.SetGray(i%BitmapSize, i/BitmapSize, color.Gray{Y: uint8(255 - v*255)})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Distribution holds one probability per digit class 0..9.
type Distribution [10]float64

// Best returns the most likely digit and its probability. Ties go to the lower digit.
func (d Distribution) Best() (digit int, confidence float64) {
	for i := 1; i < len(d); i++ {
		if d[i] > d[digit] {
			digit = i
		}
	}
	return digit, d[digit]
}

// DigitClassifier predicts which digit a bitmap shows.
type DigitClassifier interface {
	Classify(ctx context.Context, b Bitmap) (Distribution, error)
}

// ClassifierFunc adapts a function to DigitClassifier.
type ClassifierFunc func(ctx context.Context, b Bitmap) (Distribution, error)

func (f ClassifierFunc) Classify(ctx context.Context, b Bitmap) (Distribution, error) {
	return f(ctx, b)
}

// interpret turns a distribution into the value recorded for a cell.
func interpret(d Distribution, minConfidence float64) (digit int, confidence float64, reason RejectReason) {
	digit, confidence = d.Best()
	switch {
	case confidence < minConfidence:
		return Empty, confidence, ReasonLowConfidence
	case digit == 0:
		return Empty, confidence, ReasonZero
	}
	return digit, confidence, ReasonNone
}

// throttledClassifier waits on a token bucket before each call so bursts of
// drawing across many puzzles stay under the model quota.
type throttledClassifier struct {
	next    DigitClassifier
	limiter *rate.Limiter
}

// Throttle wraps c with a limiter of rps requests per second and the given burst.
// A non-positive rps disables throttling.
func Throttle(c DigitClassifier, rps float64, burst int) DigitClassifier {
	if rps <= 0 {
		return c
	}
	return &throttledClassifier{
		next:    c,
		limiter: rate.NewLimiter(rate.Limit(rps), max(burst, 1)),
	}
}

func (t *throttledClassifier) Classify(ctx context.Context, b Bitmap) (Distribution, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return Distribution{}, fmt.Errorf("classifier rate limit: %w", err)
	}
	return t.next.Classify(ctx, b)
}
