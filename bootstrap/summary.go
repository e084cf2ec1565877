package bootstrap

import (
	"sync"
	"time"

	"github.com/kbukum/pipekit/logger"
)

// RunRecord captures the outcome of a single pipeline run.
type RunRecord struct {
	Pipeline string
	Status   string
	Items    int
	Duration time.Duration
	When     time.Time
}

// Summary accumulates engine startup and run information for reporting.
// Safe for concurrent use.
type Summary struct {
	mu sync.Mutex

	name        string
	version     string
	environment string

	startupDuration time.Duration
	runs            []RunRecord
}

// NewSummary creates a summary for the named engine.
func NewSummary(name, version, environment string) *Summary {
	return &Summary{name: name, version: version, environment: environment}
}

// SetStartupDuration records how long startup took.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startupDuration = d
}

// StartupDuration returns the recorded startup duration.
func (s *Summary) StartupDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startupDuration
}

// RecordRun appends a pipeline run outcome.
func (s *Summary) RecordRun(rec RunRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, rec)
}

// Runs returns a copy of the recorded runs in order.
func (s *Summary) Runs() []RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RunRecord(nil), s.runs...)
}

// Display logs the engine summary and every recorded run.
func (s *Summary) Display(log *logger.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info("engine summary", map[string]interface{}{
		"name":        s.name,
		"version":     s.version,
		"environment": s.environment,
		"startup_ms":  s.startupDuration.Milliseconds(),
		"runs":        len(s.runs),
	})
	for _, r := range s.runs {
		log.Info("pipeline run", map[string]interface{}{
			logger.FieldPipeline: r.Pipeline,
			logger.FieldStatus:   r.Status,
			logger.FieldItems:    r.Items,
			logger.FieldDuration: r.Duration.Milliseconds(),
		})
	}
}
