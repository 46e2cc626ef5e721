// Package session keeps the rows of one calculator session in a single
// ordered collection. Each row owns its kind, label, measurements, quantity
// and result; nothing is kept in parallel slices.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"Calcform/internal/calc/dims"
	"Calcform/internal/calc/entry"
	"Calcform/internal/calc/volume"
	"Calcform/internal/metrics"
)

var (
	ErrRowNotFound = errors.New("row not found")
	// ErrUnresolved marks a row whose kind changed after its last save.
	ErrUnresolved = errors.New("measurements required for the selected structure kind")
)

type Row struct {
	ID           string
	Kind         volume.Kind
	Label        string
	Dimensions   []entry.Dimension
	Measurements dims.Set
	Quantity     int
	Volume       float64
	Err          error
	Saved        bool
	Seq          int
	SavedAt      time.Time
}

type Status string

const (
	StatusOK         Status = "ok"
	StatusFailed     Status = "failed"
	StatusUnresolved Status = "unresolved"
)

func (r Row) Status() Status {
	switch {
	case !r.Saved || errors.Is(r.Err, ErrUnresolved):
		return StatusUnresolved
	case r.Err != nil:
		return StatusFailed
	default:
		return StatusOK
	}
}

func (r Row) clone() Row {
	out := r
	out.Dimensions = append([]entry.Dimension(nil), r.Dimensions...)
	out.Measurements = make(dims.Set, len(r.Measurements))
	for k, v := range r.Measurements {
		out.Measurements[k] = v
	}
	return out
}

type Session struct {
	ID string

	mu      sync.Mutex
	rows    []*Row
	seq     int
	touched time.Time
	now     func() time.Time
}

func New() *Session {
	return &Session{ID: uuid.NewString(), now: time.Now, touched: time.Now()}
}

// Touch records activity for idle expiry.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.now()
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// AddRow appends an empty, unresolved row.
func (s *Session) AddRow(kind volume.Kind, label string) (Row, error) {
	if !kind.Valid() {
		return Row{}, fmt.Errorf("%w: %q", volume.ErrUnknownKind, string(kind))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := &Row{
		ID:           uuid.NewString(),
		Kind:         kind,
		Label:        kind.Label(label),
		Measurements: dims.Set{},
		Quantity:     1,
	}
	s.rows = append(s.rows, row)
	return row.clone(), nil
}

// Save replaces the row's measurements wholesale and recomputes its volume
// from scratch. A measurement failure is stored on the row; the row never
// keeps a volume from an earlier save. Quantity and unit errors reject the
// save and leave the row as it was.
func (s *Session) Save(id string, fields []entry.FieldInput, quantity string) (Row, error) {
	qty, err := entry.ParseQuantity(quantity)
	if err != nil {
		return Row{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, err := s.find(id)
	if err != nil {
		return Row{}, err
	}
	parsed, err := entry.Parse(row.Kind, fields)
	if err != nil {
		return Row{}, err
	}
	v, cerr := volume.Compute(row.Kind, parsed.Set)
	metrics.RecordRowSaved(string(row.Kind), cerr)

	row.Dimensions = parsed.Dimensions
	row.Measurements = parsed.Set
	row.Quantity = qty
	row.Volume = 0
	row.Err = cerr
	if cerr == nil {
		row.Volume = v
	}
	if !row.Saved {
		s.seq++
		row.Seq = s.seq
		row.Saved = true
	}
	row.SavedAt = s.now()
	return row.clone(), nil
}

// Commit adds a row and saves it in one step.
func (s *Session) Commit(kind volume.Kind, label string, fields []entry.FieldInput, quantity string) (Row, error) {
	if _, err := entry.ParseQuantity(quantity); err != nil {
		return Row{}, err
	}
	if _, err := entry.Parse(kind, fields); err != nil {
		return Row{}, err
	}
	row, err := s.AddRow(kind, label)
	if err != nil {
		return Row{}, err
	}
	return s.Save(row.ID, fields, quantity)
}

// ChangeKind switches the row's formula. The old measurements do not apply
// to the new kind, so they and the result are dropped.
func (s *Session) ChangeKind(id string, kind volume.Kind, label string) (Row, error) {
	if !kind.Valid() {
		return Row{}, fmt.Errorf("%w: %q", volume.ErrUnknownKind, string(kind))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, err := s.find(id)
	if err != nil {
		return Row{}, err
	}
	if row.Kind == kind {
		row.Label = kind.Label(label)
		return row.clone(), nil
	}
	row.Kind = kind
	row.Label = kind.Label(label)
	row.Dimensions = nil
	row.Measurements = dims.Set{}
	row.Volume = 0
	row.Err = nil
	if row.Saved {
		row.Err = ErrUnresolved
	}
	return row.clone(), nil
}

func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRowNotFound, id)
}

func (s *Session) Row(id string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, err := s.find(id)
	if err != nil {
		return Row{}, err
	}
	return row.clone(), nil
}

// Rows returns every row in insertion order.
func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r.clone())
	}
	return out
}

// Reset drops every row.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.seq = 0
}

// Entries snapshots the saved rows, most recently saved entry first.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	saved := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		if r.Saved {
			saved = append(saved, r.clone())
		}
	}
	s.mu.Unlock()

	sort.Slice(saved, func(i, j int) bool { return saved[i].Seq > saved[j].Seq })
	out := make([]Entry, 0, len(saved))
	for _, r := range saved {
		out = append(out, NewEntry(r))
	}
	return out
}

func (s *Session) find(id string) (*Row, error) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRowNotFound, id)
}
