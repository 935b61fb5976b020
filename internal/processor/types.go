package processor

import (
	"resize/internal/sizing"
)

// Outcome is the terminal state of one file.
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeSkipped
	OutcomeDryRun
	OutcomeDecodeFailed
	OutcomeTransformFailed
	OutcomeWriteFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDryRun:
		return "dry run"
	case OutcomeDecodeFailed:
		return "decode failed"
	case OutcomeTransformFailed:
		return "transform failed"
	case OutcomeWriteFailed:
		return "write failed"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome is a per-file error.
func (o Outcome) Failed() bool {
	return o == OutcomeDecodeFailed || o == OutcomeTransformFailed || o == OutcomeWriteFailed
}

type Result struct {
	Path     string
	Dest     string
	Width    int
	Height   int
	Decision sizing.Decision
	Outcome  Outcome
	Err      error
	Deleted  bool
}

// Summary aggregates outcome counts over a run.
type Summary struct {
	Total           int
	Written         int
	Skipped         int
	DryRun          int
	DecodeFailed    int
	TransformFailed int
	WriteFailed     int
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	s.Total++
	switch o {
	case OutcomeWritten:
		s.Written++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeDryRun:
		s.DryRun++
	case OutcomeDecodeFailed:
		s.DecodeFailed++
	case OutcomeTransformFailed:
		s.TransformFailed++
	case OutcomeWriteFailed:
		s.WriteFailed++
	}
}

// Merge adds the counts of other into s.
func (s *Summary) Merge(other Summary) {
	s.Total += other.Total
	s.Written += other.Written
	s.Skipped += other.Skipped
	s.DryRun += other.DryRun
	s.DecodeFailed += other.DecodeFailed
	s.TransformFailed += other.TransformFailed
	s.WriteFailed += other.WriteFailed
}

// Failed returns the number of files that hit a per-file error.
func (s Summary) Failed() int {
	return s.DecodeFailed + s.TransformFailed + s.WriteFailed
}

// Reporter receives the decisions of a dry run. Calls may come from several
// workers at once.
type Reporter interface {
	// NoOp reports a file that needs no transformation.
	NoOp(path string, width, height int, decision sizing.Decision)
	// Planned reports the resize a real run would perform.
	Planned(src, dest string, width, height int, decision sizing.Decision)
	// Unreadable reports a file that could not be decoded.
	Unreadable(path string, err error, wouldDelete bool)
}

type nopReporter struct{}

func (nopReporter) NoOp(string, int, int, sizing.Decision)            {}
func (nopReporter) Planned(string, string, int, int, sizing.Decision) {}
func (nopReporter) Unreadable(string, error, bool)                    {}
