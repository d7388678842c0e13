// Package storage deduplicates grid shapes by their canonical string and
// persists occurrence counts in a line-oriented text file.
//
// Each entry is the canonical grid string followed by a "count: N" line:
//
//	0 1 0
//	1 1 1
//	count: 2
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"cellsim/pkg/grid"
)

const countPrefix = "count:"

var (
	// ErrMissingFile is returned by LoadFile when the file does not exist and
	// the caller asked for that to be reported.
	ErrMissingFile = errors.New("storage file does not exist")
	// ErrMalformedCount is returned when a count line has no integer.
	ErrMalformedCount = errors.New("malformed count line")
)

// Storage maps canonical grid strings to the number of times each was added.
// Iteration order is insertion order. It is not safe for concurrent use.
type Storage struct {
	counts map[string]int
	keys   []string
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{counts: make(map[string]int)}
}

// Add records one more occurrence of g and returns its new count.
func (s *Storage) Add(g *grid.Grid) int {
	return s.AddKey(g.String())
}

// AddKey records one more occurrence of a canonical grid string.
func (s *Storage) AddKey(key string) int {
	if _, ok := s.counts[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.counts[key]++
	return s.counts[key]
}

// Set overwrites the count stored for key.
func (s *Storage) Set(key string, count int) {
	if _, ok := s.counts[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.counts[key] = count
}

// Size returns the number of distinct shapes.
func (s *Storage) Size() int { return len(s.keys) }

// Lookup returns the count recorded for g, or 0. It never inserts.
func (s *Storage) Lookup(g *grid.Grid) int {
	return s.LookupKey(g.String())
}

// LookupKey returns the count recorded for key, or 0.
func (s *Storage) LookupKey(key string) int {
	return s.counts[key]
}

// Keys returns the stored canonical strings in insertion order.
func (s *Storage) Keys() []string {
	return append([]string(nil), s.keys...)
}

// WriteTo serialises every entry to w in insertion order.
func (s *Storage) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, key := range s.keys {
		m, err := fmt.Fprintf(bw, "%s%s %d\n", key, countPrefix, s.counts[key])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadFrom merges entries read from r. Lines accumulate into a pending key
// until a count line commits it, overwriting any existing count. A count line
// with no pending lines is skipped. Nothing is merged unless the whole stream
// parses; the returned count is the number of bytes consumed.
func (s *Storage) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	parsed := New()
	var (
		n       int64
		lineNo  int
		pending strings.Builder
	)
	for {
		raw, err := br.ReadString('\n')
		n += int64(len(raw))
		if err != nil && !errors.Is(err, io.EOF) {
			return n, err
		}
		if raw != "" {
			lineNo++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if !strings.HasPrefix(line, countPrefix) {
				pending.WriteString(line)
				pending.WriteByte('\n')
			} else {
				count, perr := strconv.Atoi(strings.TrimSpace(line[len(countPrefix):]))
				if perr != nil {
					return n, fmt.Errorf("line %d %q: %w", lineNo, line, ErrMalformedCount)
				}
				if pending.Len() > 0 {
					parsed.Set(pending.String(), count)
				}
				pending.Reset()
			}
		}
		if err != nil {
			break
		}
	}
	for _, key := range parsed.keys {
		s.Set(key, parsed.counts[key])
	}
	return n, nil
}

// LoadFile merges the entries stored at path. A missing file leaves the
// storage unchanged and is only reported when errorOnMissing is set.
func (s *Storage) LoadFile(path string, errorOnMissing bool) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if errorOnMissing {
				return fmt.Errorf("opening %s: %w", path, ErrMissingFile)
			}
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := s.ReadFrom(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// SaveFile replaces the file at path with the full serialised storage.
func (s *Storage) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
