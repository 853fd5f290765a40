package disc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Executor abstracts command execution for the scanner and player.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

type scanOutputParser interface {
	Parse(stdout, stderr []byte) (*Disc, error)
}

// commandExecutor executes commands using os/exec.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ScanOptions tunes the HandBrake scan invocation.
type ScanOptions struct {
	// MinDurationSeconds hides titles shorter than this from the scan.
	MinDurationSeconds int
	// DVDNav selects libdvdnav for title navigation.
	DVDNav bool
}

// DefaultScanOptions mirrors HandBrake's usual episode-oriented scan.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{MinDurationSeconds: 300, DVDNav: true}
}

// Scanner wraps HandBrakeCLI scans to gather the disc layout.
type Scanner struct {
	binary string
	opts   ScanOptions
	exec   Executor
	parser scanOutputParser
}

// NewScanner constructs a Scanner for the provided HandBrakeCLI binary.
func NewScanner(binary string, opts ScanOptions) *Scanner {
	return NewScannerWithExecutor(binary, opts, nil)
}

// NewScannerWithExecutor allows injecting a custom executor for testing.
func NewScannerWithExecutor(binary string, opts ScanOptions, exec Executor) *Scanner {
	if exec == nil {
		exec = commandExecutor{}
	}
	return &Scanner{
		binary: strings.TrimSpace(binary),
		opts:   opts,
		exec:   exec,
		parser: handBrakeParser{},
	}
}

// Scan runs HandBrakeCLI against source and returns every title it reports.
func (s *Scanner) Scan(ctx context.Context, source string) (*Disc, error) {
	stdout, stderr, err := s.run(ctx, source)
	if err != nil {
		return nil, err
	}
	return s.parse(source, stdout, stderr)
}

// ScanToFile behaves like Scan and also saves the raw scan output to path on
// fs, in the form LoadScan reads back.
func (s *Scanner) ScanToFile(ctx context.Context, source string, fs afero.Fs, path string) (*Disc, error) {
	stdout, stderr, err := s.run(ctx, source)
	if err != nil {
		return nil, err
	}
	d, err := s.parse(source, stdout, stderr)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create scan cache directory: %w", err)
		}
	}
	raw := make([]byte, 0, len(stderr)+len(stdout)+1)
	raw = append(raw, stderr...)
	raw = append(raw, '\n')
	raw = append(raw, stdout...)
	if err := afero.WriteFile(fs, path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write scan cache: %w", err)
	}
	return d, nil
}

func (s *Scanner) run(ctx context.Context, source string) ([]byte, []byte, error) {
	if s.binary == "" {
		return nil, nil, errors.New("handbrake binary not configured")
	}
	if strings.TrimSpace(source) == "" {
		return nil, nil, errors.New("scan source not configured")
	}

	args := []string{
		"-i", source,
		"-t", "0",
		"--min-duration", strconv.Itoa(s.opts.MinDurationSeconds),
		"--scan",
		"--json",
	}
	if !s.opts.DVDNav {
		args = append(args, "--no-dvdnav")
	}

	stdout, stderr, err := s.exec.Run(ctx, s.binary, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, fmt.Errorf("handbrake scan of %s: %w%s", source, err, stderrSuffix(stderr))
	}
	return stdout, stderr, nil
}

func (s *Scanner) parse(source string, stdout, stderr []byte) (*Disc, error) {
	d, err := s.parser.Parse(stdout, stderr)
	if err != nil {
		if errors.Is(err, ErrUnreadable) {
			return nil, fmt.Errorf("%w in %s", err, source)
		}
		return nil, fmt.Errorf("parse handbrake scan: %w", err)
	}
	return d, nil
}

// LoadScan parses a saved HandBrake scan (stdout and stderr captured to one
// file) from fs.
func LoadScan(fs afero.Fs, path string) (*Disc, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read scan file: %w", err)
	}
	d, err := handBrakeParser{}.Parse(data, data)
	if err != nil {
		return nil, fmt.Errorf("parse scan file %s: %w", path, err)
	}
	return d, nil
}

func stderrSuffix(stderr []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		return ""
	}
	return ": " + strings.TrimSpace(lines[len(lines)-1])
}
