package models

import (
	"sync"
	"sync/atomic"
)

// ScanPhase is the orchestrator's observable state
type ScanPhase string

const (
	PhaseDiscovering ScanPhase = "discovering"
	PhaseParsing     ScanPhase = "parsing"
	PhaseBuilding    ScanPhase = "building"
	PhaseCompleted   ScanPhase = "completed"
	PhaseCancelled   ScanPhase = "cancelled"
)

// ScanProgress is a poll-able snapshot of scan progress, suitable for
// periodic sampling by a UI layer.
type ScanProgress struct {
	Phase       ScanPhase `json:"phase"`
	Current     int       `json:"current"`
	Total       int       `json:"total"`
	CurrentFile string    `json:"current_file"`
}

// ScanState is the cancellation and progress token shared between one scan
// and its observers. Cancellation is advisory: workers poll the flag before
// each unit of work, so in-flight file parses always run to completion.
type ScanState struct {
	cancelled atomic.Bool
	current   atomic.Int64
	total     atomic.Int64

	mu          sync.Mutex
	currentFile string
	phase       ScanPhase
}

// NewScanState creates a state token in the discovering phase
func NewScanState() *ScanState {
	return &ScanState{phase: PhaseDiscovering}
}

// Cancel requests cooperative cancellation of the scan
func (s *ScanState) Cancel() {
	s.cancelled.Store(true)
}

// IsCancelled reports whether cancellation has been requested
func (s *ScanState) IsCancelled() bool {
	return s.cancelled.Load()
}

// SetPhase records the current scan phase
func (s *ScanState) SetPhase(phase ScanPhase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

// SetTotal records the total number of parse work items
func (s *ScanState) SetTotal(total int) {
	s.total.Store(int64(total))
}

// SetCurrent records the number of completed parse work items
func (s *ScanState) SetCurrent(current int) {
	s.current.Store(int64(current))
}

// AdvanceCurrent atomically increments the completed-item counter and
// returns the new value.
func (s *ScanState) AdvanceCurrent() int64 {
	return s.current.Add(1)
}

// SetCurrentFile records the last file touched by a worker
func (s *ScanState) SetCurrentFile(path string) {
	s.mu.Lock()
	s.currentFile = path
	s.mu.Unlock()
}

// Progress returns a consistent snapshot for display
func (s *ScanState) Progress() ScanProgress {
	s.mu.Lock()
	phase := s.phase
	file := s.currentFile
	s.mu.Unlock()

	return ScanProgress{
		Phase:       phase,
		Current:     int(s.current.Load()),
		Total:       int(s.total.Load()),
		CurrentFile: file,
	}
}
