package main

import (
	"errors"
	"fmt"
)

// GridSize is the width and height of the magic square.
const GridSize = 3

// Empty is the stored value of a cell that holds no digit.
const Empty = 0

// Values is a row-major snapshot of resolved cell values; Empty marks a blank cell.
type Values [GridSize][GridSize]int

// CellID identifies a cell by its 0-indexed position.
type CellID struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (id CellID) String() string {
	return fmt.Sprintf("(%d,%d)", id.Row, id.Col)
}

// Valid reports whether the position lies inside the grid.
func (id CellID) Valid() bool {
	return id.Row >= 0 && id.Row < GridSize && id.Col >= 0 && id.Col < GridSize
}

// Source is the provenance of a cell value.
type Source string

const (
	SourceEmpty  Source = "empty"
	SourceHint   Source = "hint"
	SourceManual Source = "manual"
	SourceAuto   Source = "auto"
)

// StateKind tags the lifecycle state of a cell.
type StateKind string

const (
	StateHint     StateKind = "hint"
	StateEmpty    StateKind = "empty"
	StateManual   StateKind = "manual"
	StateAuto     StateKind = "auto"
	StateRejected StateKind = "rejected"
)

// RejectReason explains why a recognition produced no digit.
type RejectReason string

const (
	ReasonNone          RejectReason = ""
	ReasonLowConfidence RejectReason = "low-confidence"
	ReasonZero          RejectReason = "zero-not-allowed"
	ReasonError         RejectReason = "error"
)

var (
	// ErrCellLocked is returned for any mutation aimed at a hint cell.
	ErrCellLocked = errors.New("cell is locked")
	// ErrUnknownCell is returned for positions outside the grid.
	ErrUnknownCell = errors.New("unknown cell")
	// ErrSuperseded marks a recognition result that no longer applies to its cell.
	ErrSuperseded = errors.New("recognition result superseded")
	// ErrInvalidSource is returned when a caller tries to write a hint or empty source directly.
	ErrInvalidSource = errors.New("invalid value source")
)

// CellView is what the presentation layer renders for one cell.
type CellView struct {
	CellID
	Locked     bool         `json:"locked"`
	Value      int          `json:"value,omitempty"`
	Source     Source       `json:"source"`
	Confidence *float64     `json:"confidence,omitempty"`
	State      StateKind    `json:"state"`
	Reason     RejectReason `json:"reason,omitempty"`
	Pending    bool         `json:"pending,omitempty"`
}

// validDigit reports whether v may be stored as a cell value.
func validDigit(v int) bool {
	return v >= 1 && v <= 9
}

// allCells lists every cell position in row-major order.
func allCells() []CellID {
	ids := make([]CellID, 0, GridSize*GridSize)
	for r := range GridSize {
		for c := range GridSize {
			ids = append(ids, CellID{Row: r, Col: c})
		}
	}
	return ids
}
