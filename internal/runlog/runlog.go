// Package runlog writes one CSV row per simulation attempt.
package runlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"cellsim/pkg/sims/life"
)

// Record is a single CSV row.
type Record struct {
	RunID          string `csv:"run_id"`
	Attempt        int    `csv:"attempt"`
	Seed           int64  `csv:"seed"`
	State          string `csv:"state"`
	Generations    int    `csv:"generations"`
	InitialRegions int    `csv:"initial_regions"`
	Regions        int    `csv:"regions"`
	NewShapes      int    `csv:"new_shapes"`
	FinishedAt     string `csv:"finished_at"`
}

// Log appends attempt records to a writer. All rows written by one Log share
// a run ID.
type Log struct {
	w             io.Writer
	closer        io.Closer
	runID         string
	now           func() time.Time
	headerWritten bool
}

// New returns a Log writing to w.
func New(w io.Writer) *Log {
	return &Log{w: w, runID: uuid.NewString(), now: time.Now}
}

// Open appends to the CSV file at path, creating it if needed. A header is
// written only when the file is empty. An empty path returns nil; a nil Log
// discards records.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	l := New(f)
	l.closer = f
	l.headerWritten = info.Size() > 0
	return l, nil
}

// RunID identifies this log's rows.
func (l *Log) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Record implements life.Recorder.
func (l *Log) Record(a life.Attempt) error {
	if l == nil {
		return nil
	}
	records := []Record{{
		RunID:          l.runID,
		Attempt:        a.Index,
		Seed:           a.Seed,
		State:          a.State.String(),
		Generations:    a.Generations,
		InitialRegions: a.InitialRegions,
		Regions:        a.Regions,
		NewShapes:      a.NewShapes,
		FinishedAt:     l.now().UTC().Format(time.RFC3339),
	}}

	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.w); err != nil {
			return fmt.Errorf("writing run log: %w", err)
		}
		l.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.w); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	return nil
}

// Close closes the underlying file, if any.
func (l *Log) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ReadAll parses records previously written by a Log.
func ReadAll(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}
	return records, nil
}
