// Package scanner drives a single pass over a mail log stream and
// aggregates the classification results into a monitoring report.
package scanner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"check-postfix-blocked/internal/matcher"
	"check-postfix-blocked/internal/model"
)

// maxLineSize bounds a single log line. Provider bounce replies can be
// long (mail.ru embeds tracking blobs) but stay well under this.
const maxLineSize = 1024 * 1024

// scanState tracks the scan lifecycle: NotStarted -> Scanning -> Completed.
type scanState int

const (
	stateNotStarted scanState = iota
	stateScanning
	stateCompleted
)

// Scanner consumes a log stream line by line, collecting the set of queue
// ids with failed deliveries and the subset rejected as spam or blocked.
// A Scanner performs exactly one scan; it holds no state across runs.
type Scanner struct {
	matcher *matcher.Matcher
	warn    int
	crit    int
	trace   bool
	logger  zerolog.Logger

	state     scanState
	blocked   map[string]struct{}
	worrisome map[string]struct{}
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithTrace enables echoing of matched lines to the diagnostic logger.
// Tracing has no effect on the computed report.
func WithTrace(trace bool) Option {
	return func(s *Scanner) {
		s.trace = trace
	}
}

// New creates a Scanner with the given matcher and thresholds.
// The ordering of warn and crit is not validated; the report precedence
// (critical first) applies even to inverted thresholds.
func New(m *matcher.Matcher, warn, crit int, logger zerolog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		matcher:   m,
		warn:      warn,
		crit:      crit,
		logger:    logger.With().Str("component", "scanner").Logger(),
		state:     stateNotStarted,
		blocked:   make(map[string]struct{}),
		worrisome: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Process scans the stream to EOF, one line at a time. Lines that do not
// match the delivery-failure pattern are skipped silently. Repeated lines
// for the same queue id (delivery retries) count once per set.
// Process is synchronous and must be called at most once.
func (s *Scanner) Process(r io.Reader) error {
	if s.state != stateNotStarted {
		return fmt.Errorf("scan already performed")
	}
	s.state = stateScanning

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for lines.Scan() {
		line := lines.Text()

		queueID, ok := s.matcher.MatchDeliveryFailure(line)
		if !ok {
			continue
		}
		s.blocked[queueID] = struct{}{}
		if s.trace {
			s.logger.Debug().Str("queue_id", queueID).Str("line", line).Msg("blocked")
		}

		if !s.matcher.IsRejection(line) {
			continue
		}
		s.worrisome[queueID] = struct{}{}
		if s.trace {
			s.logger.Debug().Str("queue_id", queueID).Str("line", line).Msg("worrisome")
		}
	}

	if err := lines.Err(); err != nil {
		return fmt.Errorf("failed to read log stream: %w", err)
	}

	s.state = stateCompleted

	s.logger.Info().
		Int("blocked", len(s.blocked)).
		Int("worrisome", len(s.worrisome)).
		Msg("scan completed")

	return nil
}

// Report computes the final report. Before a scan it returns an Unknown
// report noting that no analysis was performed; after a completed scan it
// compares the worrisome count against the thresholds.
func (s *Scanner) Report() *model.Report {
	if s.state != stateCompleted {
		return model.NewUnscannedReport()
	}
	return model.NewReport(len(s.blocked), len(s.worrisome), s.warn, s.crit)
}

// BlockedCount returns the number of unique queue ids with a bounced or
// deferred delivery.
func (s *Scanner) BlockedCount() int {
	return len(s.blocked)
}

// WorrisomeCount returns the number of unique queue ids whose failure
// carried a site-rejection signature.
func (s *Scanner) WorrisomeCount() int {
	return len(s.worrisome)
}
