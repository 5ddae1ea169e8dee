package main

import "sync"

// Write is an intent to change the value of one cell.
type Write struct {
	Value      int
	Source     Source // SourceManual or SourceAuto
	Confidence float64
	// Seq tags auto writes with the recognition request they came from.
	// Zero means untagged.
	Seq    uint64
	Reason RejectReason
}

type cell struct {
	locked     bool
	value      int
	source     Source
	confidence float64
	hasConf    bool
	reason     RejectReason

	seq       uint64 // bumped by every event that invalidates in-flight recognition
	manualSeq uint64 // seq assigned by the latest manual write
	pending   bool

	drawing    Bitmap
	hasDrawing bool
}

func (c *cell) state() StateKind {
	switch {
	case c.locked || c.source == SourceHint:
		return StateHint
	case c.source == SourceAuto && c.reason != ReasonNone:
		return StateRejected
	case c.value == Empty:
		return StateEmpty
	case c.source == SourceAuto:
		return StateAuto
	}
	return StateManual
}

func (c *cell) invalidate() {
	c.seq++
	c.pending = false
}

// CellStore owns the grid. It is the only place cell values change, and it
// serialises every mutation so a cell's value, source and sequence number
// always move together.
type CellStore struct {
	mu    sync.Mutex
	cells [GridSize][GridSize]cell
	// notify is called with the lock held, in mutation order. It must not block
	// or call back into the store.
	notify func(CellView)
}

// NewCellStore builds a grid from layout. notify may be nil.
func NewCellStore(layout Layout, notify func(CellView)) *CellStore {
	s := &CellStore{notify: notify}
	for _, id := range allCells() {
		c := &s.cells[id.Row][id.Col]
		lc := layout[id.Row][id.Col]
		c.source = SourceEmpty
		if lc.Locked {
			c.locked = true
			c.value = lc.Value
			c.source = SourceHint
		}
	}
	return s
}

func (s *CellStore) lookup(id CellID) (*cell, error) {
	if !id.Valid() {
		return nil, ErrUnknownCell
	}
	return &s.cells[id.Row][id.Col], nil
}

// mutable returns the cell at id if it exists and is not a hint.
func (s *CellStore) mutable(id CellID) (*cell, error) {
	c, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if c.locked {
		return nil, ErrCellLocked
	}
	return c, nil
}

func (s *CellStore) view(id CellID, c *cell) CellView {
	v := CellView{
		CellID:  id,
		Locked:  c.locked,
		Value:   c.value,
		Source:  c.source,
		State:   c.state(),
		Reason:  c.reason,
		Pending: c.pending,
	}
	if c.hasConf {
		conf := c.confidence
		v.Confidence = &conf
	}
	return v
}

func (s *CellStore) emit(id CellID, c *cell) CellView {
	v := s.view(id, c)
	if s.notify != nil {
		s.notify(v)
	}
	return v
}

// SetValue applies a manual or recognition write.
//
// Manual writes always win and invalidate any recognition in flight. Auto
// writes only replace auto or empty values; a tagged auto write whose request
// is no longer current, or predates the latest manual write, fails with
// ErrSuperseded and changes nothing.
func (s *CellStore) SetValue(id CellID, w Write) (CellView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.mutable(id)
	if err != nil {
		return CellView{}, err
	}

	value := w.Value
	if !validDigit(value) {
		value = Empty
	}

	switch w.Source {
	case SourceManual:
		c.invalidate()
		c.manualSeq = c.seq
		c.value = value
		c.source = SourceManual
		c.hasConf = false
		c.confidence = 0
		c.reason = ReasonNone
	case SourceAuto:
		if w.Seq != 0 && w.Seq != c.seq {
			return s.view(id, c), ErrSuperseded
		}
		if c.source == SourceManual && (w.Seq == 0 || w.Seq <= c.manualSeq) {
			return s.view(id, c), ErrSuperseded
		}
		c.value = value
		c.source = SourceAuto
		c.reason = w.Reason
		c.hasConf = w.Reason != ReasonError
		c.confidence = w.Confidence
		if w.Seq == c.seq {
			c.pending = false
		}
	default:
		return s.view(id, c), ErrInvalidSource
	}
	return s.emit(id, c), nil
}

// Clear empties a cell, forgets its drawing and invalidates any recognition in flight.
func (s *CellStore) Clear(id CellID) (CellView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.mutable(id)
	if err != nil {
		return CellView{}, err
	}
	c.invalidate()
	c.value = Empty
	c.source = SourceEmpty
	c.hasConf = false
	c.confidence = 0
	c.reason = ReasonNone
	c.drawing = Bitmap{}
	c.hasDrawing = false
	return s.emit(id, c), nil
}

// Reset returns every unlocked cell to the empty state it was built with.
// Locked cells are untouched.
func (s *CellStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range allCells() {
		c := &s.cells[id.Row][id.Col]
		if c.locked {
			continue
		}
		c.invalidate()
		c.value = Empty
		c.source = SourceEmpty
		c.hasConf = false
		c.confidence = 0
		c.reason = ReasonNone
		c.drawing = Bitmap{}
		c.hasDrawing = false
		s.emit(id, c)
	}
}

// CollectValues returns a row-major snapshot of resolved values.
func (s *CellStore) CollectValues() Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v Values
	for r := range GridSize {
		for c := range GridSize {
			v[r][c] = s.cells[r][c].value
		}
	}
	return v
}

// View returns the presentation tuple for one cell.
func (s *CellStore) View(id CellID) (CellView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.lookup(id)
	if err != nil {
		return CellView{}, err
	}
	return s.view(id, c), nil
}

// Views returns every cell in row-major order.
func (s *CellStore) Views() []CellView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]CellView, 0, GridSize*GridSize)
	for _, id := range allCells() {
		views = append(views, s.view(id, &s.cells[id.Row][id.Col]))
	}
	return views
}

// recordStroke stores the latest drawing for a cell and invalidates any
// recognition in flight. It returns the sequence number a request for this
// drawing must carry.
func (s *CellStore) recordStroke(id CellID, b Bitmap) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.mutable(id)
	if err != nil {
		return 0, err
	}
	c.invalidate()
	c.drawing = b
	c.hasDrawing = b.HasInk()
	s.emit(id, c)
	return c.seq, nil
}

// beginRecognition marks the cell pending and returns its drawing, provided
// seq is still current and there is something to recognise.
func (s *CellStore) beginRecognition(id CellID, seq uint64) (Bitmap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.mutable(id)
	if err != nil || c.seq != seq || !c.hasDrawing {
		return Bitmap{}, false
	}
	c.pending = true
	s.emit(id, c)
	return c.drawing, true
}

func (s *CellStore) seqOf(id CellID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.lookup(id)
	if err != nil {
		return 0
	}
	return c.seq
}
