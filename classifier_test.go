package main

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peaked(digit int, p float64) Distribution {
	var d Distribution
	rest := (1 - p) / 9
	for i := range d {
		d[i] = rest
	}
	d[digit] = p
	return d
}

func inkedBitmap() Bitmap {
	var b Bitmap
	for i := 10; i < 18; i++ {
		b[i*BitmapSize+14] = 1
	}
	return b
}

func TestBitmapFromPixels(t *testing.T) {
	px := make([]float64, BitmapSize*BitmapSize)
	px[0] = -0.5
	px[1] = 0.25
	px[2] = 3

	b, err := BitmapFromPixels(px)
	require.NoError(t, err)
	assert.Equal(t, float32(0), b[0])
	assert.Equal(t, float32(0.25), b[1])
	assert.Equal(t, float32(1), b[2])

	_, err = BitmapFromPixels(px[:10])
	require.Error(t, err)
}

func TestBitmapHasInk(t *testing.T) {
	var blank Bitmap
	assert.False(t, blank.HasInk())

	blank[5] = inkThreshold / 2
	assert.False(t, blank.HasInk())

	b := inkedBitmap()
	assert.True(t, b.HasInk())
}

func TestBitmapPNG(t *testing.T) {
	b := inkedBitmap()
	data, err := b.PNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, BitmapSize, img.Bounds().Dx())

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r, "background should be white")
	r, _, _, _ = img.At(14, 12).RGBA()
	assert.Equal(t, uint32(0), r, "ink should be black")
}

func TestDistributionBest(t *testing.T) {
	d, c := peaked(7, 0.9).Best()
	assert.Equal(t, 7, d)
	assert.InDelta(t, 0.9, c, 1e-9)

	var tie Distribution
	tie[3], tie[5] = 0.5, 0.5
	d, _ = tie.Best()
	assert.Equal(t, 3, d)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name       string
		dist       Distribution
		wantDigit  int
		wantReason RejectReason
	}{
		{"confident digit", peaked(4, 0.95), 4, ReasonNone},
		{"at threshold", peaked(2, 0.6), 2, ReasonNone},
		{"low confidence", peaked(7, 0.4), Empty, ReasonLowConfidence},
		{"zero", peaked(0, 0.99), Empty, ReasonZero},
		{"low confidence zero", peaked(0, 0.3), Empty, ReasonLowConfidence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digit, _, reason := interpret(tt.dist, 0.6)
			assert.Equal(t, tt.wantDigit, digit)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestThrottle(t *testing.T) {
	calls := 0
	base := ClassifierFunc(func(context.Context, Bitmap) (Distribution, error) {
		calls++
		return peaked(1, 1), nil
	})

	_, passthrough := Throttle(base, 0, 1).(ClassifierFunc)
	assert.True(t, passthrough, "non-positive rate should not wrap")

	c := Throttle(base, 1, 1)
	_, err := c.Classify(context.Background(), Bitmap{})
	require.NoError(t, err)

	// The bucket is empty; a short deadline cannot be met.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Classify(ctx, Bitmap{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
