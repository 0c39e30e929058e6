package probe

import (
	"time"

	"github.com/okian/launchboard/internal/domain/model"
)

// Config holds configuration for a probe run
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Enable verbose logging
}

// Case is one control setting the probe evaluates.
type Case struct {
	Site string
	Min  float64
	Max  float64
}

// Violation records a broken view invariant.
type Violation struct {
	Check  string
	Case   Case
	Detail string
}

// Baseline is the full table as reported by the service for the widest window.
type Baseline struct {
	Sites       []string
	Launches    []model.Launch
	SiteCounts  map[string]int
	OutcomeSum  int
	SiteOutcome map[string]int
}

// Stats holds probe statistics
type Stats struct {
	Cases      int
	Requests   int64
	Failed     int64
	Violations int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
