package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidLayout is returned when a layout breaks the hint contract.
var ErrInvalidLayout = errors.New("invalid layout")

// LayoutCell is one entry of the initial layout.
type LayoutCell struct {
	Value  int  `json:"value,omitempty"`
	Locked bool `json:"locked"`
}

// Layout is the initial 3x3 configuration a puzzle is built from.
// Exactly the locked cells carry a value.
type Layout [GridSize][GridSize]LayoutCell

// layoutFile is the TOML form of a layout. Non-zero entries are locked hints.
//
//	values = [[8, 0, 6], [0, 5, 0], [4, 0, 0]]
type layoutFile struct {
	Values [][]int `toml:"values"`
}

// DefaultLayout returns the built-in puzzle.
func DefaultLayout() Layout {
	l, _ := LayoutFromValues(Values{
		{8, 0, 6},
		{0, 5, 0},
		{4, 0, 0},
	})
	return l
}

// LayoutFromValues builds a layout where every non-empty value is a locked hint.
func LayoutFromValues(v Values) (Layout, error) {
	var l Layout
	for r := range GridSize {
		for c := range GridSize {
			n := v[r][c]
			switch {
			case n == Empty:
			case validDigit(n):
				l[r][c] = LayoutCell{Value: n, Locked: true}
			default:
				return Layout{}, fmt.Errorf("%w: hint %d at (%d,%d) out of range", ErrInvalidLayout, n, r, c)
			}
		}
	}
	return l, nil
}

// ParseLayout decodes a TOML layout document.
func ParseLayout(data []byte) (Layout, error) {
	var f layoutFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if len(f.Values) != GridSize {
		return Layout{}, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidLayout, GridSize, len(f.Values))
	}
	var v Values
	for r, row := range f.Values {
		if len(row) != GridSize {
			return Layout{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidLayout, r, len(row))
		}
		copy(v[r][:], row)
	}
	return LayoutFromValues(v)
}

// LoadLayout reads a layout file, or returns the default layout when path is empty.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(data)
}

// Values returns the hint values of the layout.
func (l Layout) Values() Values {
	var v Values
	for r := range GridSize {
		for c := range GridSize {
			v[r][c] = l[r][c].Value
		}
	}
	return v
}
