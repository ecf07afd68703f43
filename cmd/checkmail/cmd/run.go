// Package cmd implements CLI commands for the blocked-mail check.
package cmd

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"check-postfix-blocked/internal/config"
	"check-postfix-blocked/internal/matcher"
	"check-postfix-blocked/internal/scanner"
)

// Command flags
var (
	warnThreshold  int    // Warning threshold for worrisome count
	critThreshold  int    // Critical threshold for worrisome count
	logFile        string // Mail log path, "-" for stdin
	verbosity      int    // Repeatable -v; > 2 traces matched lines
	signaturesPath string // Optional rejection-signature definition file
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the mail log and report",
	Long: `Scan the mail log once, front to back, and print a status line.

Every line reporting a bounced or deferred postfix/smtp delivery counts
its queue id as blocked; if the same line carries a site rejection
(e.g. "said: 550 ... spam") the queue id also counts as worrisome.
Each queue id counts once per set no matter how many retries were logged.

At least one of --warn/--crit must be set, via flags, config file, or
environment. The status is CRITICAL when the worrisome count reaches the
critical threshold, WARNING when it reaches the warning threshold, OK
otherwise.

Examples:
  # Warn at 5 worrisome messages, go critical at 20
  checkmail run -w 5 -c 20

  # Scan a rotated log
  checkmail run -w 5 -c 20 -f /var/log/maillog.1

  # Read the log from stdin with matched-line tracing
  grep smtp /var/log/maillog | checkmail run -w 5 -c 20 -f - -vvv

  # Use site-specific rejection signatures
  checkmail run -w 5 -c 20 --signatures configs/signatures.yaml`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&warnThreshold, "warn", "w", 0, "warning threshold for worrisome-message count")
	runCmd.Flags().IntVarP(&critThreshold, "crit", "c", 0, "critical threshold for worrisome-message count")
	runCmd.Flags().StringVarP(&logFile, "file", "f", "", "mail log path (default "+config.DefaultLogFile+", \"-\" for stdin)")
	runCmd.Flags().CountVarP(&verbosity, "verbose", "v", "verbosity level; repeat more than twice to trace matched lines")
	runCmd.Flags().StringVar(&signaturesPath, "signatures", "", "rejection-signature definition file (YAML)")
}

// runCheck executes the check: load config, scan the log, print the report.
func runCheck(cmd *cobra.Command, args []string) {
	// Step 1: Load configuration (optional file; flags override below)
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkmail: %v\n", err)
		os.Exit(3)
	}

	// Step 2: Resolve thresholds. Flags win over config; a threshold is
	// set when its flag was given or the config holds a non-zero value.
	warn, warnSet := resolveThreshold(cmd, "warn", warnThreshold, cfg.Thresholds.Warning)
	crit, critSet := resolveThreshold(cmd, "crit", critThreshold, cfg.Thresholds.Critical)
	if !warnSet && !critSet {
		cmd.Help()
		os.Exit(3)
	}
	inversionWarning := ""
	if warnSet && critSet {
		inversionWarning = config.ThresholdOrderWarning(warn, crit)
	}
	// An unset threshold never triggers.
	if !warnSet {
		warn = math.MaxInt
	}
	if !critSet {
		crit = math.MaxInt
	}

	// Step 3: Initialize logger. Tracing needs debug level to be visible.
	level := cfg.Logging.Level
	if GetLogLevel() != "info" { // If explicitly set via command line
		level = GetLogLevel()
	}
	trace := verbosity > 2
	if trace {
		level = "debug"
	}
	logger := setupLogger(level, cfg.Logging.Format)

	if inversionWarning != "" {
		logger.Warn().Msg(inversionWarning)
	}

	// Step 4: Build the matcher, with site-specific signatures if given.
	sigPath := signaturesPath
	if sigPath == "" {
		sigPath = cfg.Signatures.File
	}
	m, err := buildMatcher(sigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkmail: %v\n", err)
		os.Exit(3)
	}
	logger.Debug().Int("signatures", len(m.Signatures())).Str("file", sigPath).Msg("matcher ready")

	// Step 5: Open the log stream.
	path := logFile
	if path == "" {
		path = cfg.Log.File
	}
	stream, closeStream, err := openLog(path)
	if err != nil {
		// A missing or unreadable log is an operational failure, not a
		// monitoring state; report it distinctly instead of a status line.
		logger.Error().Err(err).Str("path", path).Msg("cannot read mail log")
		fmt.Fprintf(os.Stderr, "checkmail: cannot read mail log: %v\n", err)
		os.Exit(3)
	}

	// Step 6: Scan and report.
	s := scanner.New(m, warn, crit, logger, scanner.WithTrace(trace))
	if err := s.Process(stream); err != nil {
		closeStream()
		logger.Error().Err(err).Str("path", path).Msg("scan failed")
		fmt.Fprintf(os.Stderr, "checkmail: scan failed: %v\n", err)
		os.Exit(3)
	}
	closeStream()

	report := s.Report()
	fmt.Println(report.Note)
	os.Exit(report.Status.ExitCode())
}

// resolveThreshold applies flag-over-config precedence for one threshold.
func resolveThreshold(cmd *cobra.Command, flagName string, flagValue, cfgValue int) (int, bool) {
	if cmd.Flags().Changed(flagName) {
		return flagValue, true
	}
	if cfgValue != 0 {
		return cfgValue, true
	}
	return 0, false
}

// buildMatcher creates the line matcher, loading signatures from the given
// file when one is configured.
func buildMatcher(sigPath string) (*matcher.Matcher, error) {
	if sigPath == "" {
		return matcher.New(), nil
	}
	sigs, err := matcher.LoadSignatures(sigPath)
	if err != nil {
		return nil, err
	}
	return matcher.NewWithSignatures(sigs)
}

// openLog opens the log stream, treating "-" as stdin.
func openLog(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// setupLogger creates a zerolog logger with the specified level and format.
func setupLogger(level string, format string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Select output format based on configuration
	var output io.Writer
	if format == "json" {
		// JSON format - structured logging for log aggregation systems
		output = os.Stderr
	} else {
		// Console format - human-readable output for interactive use
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
