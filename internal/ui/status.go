package ui

import (
	"fmt"
	"strings"
)

// Status is the information shown in the viewer overlay.
type Status struct {
	Seed       int64
	Generation int
	State      string
	Regions    int
	Paused     bool
}

// Lines renders the status as overlay text.
func (s Status) Lines() []string {
	state := s.State
	if s.Paused && state == "running" {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("seed %d", s.Seed),
		fmt.Sprintf("gen %d  %s", s.Generation, state),
		fmt.Sprintf("regions %d", s.Regions),
	}
}

// String joins Lines with newlines.
func (s Status) String() string {
	return strings.Join(s.Lines(), "\n")
}
