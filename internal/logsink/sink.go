package logsink

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"ghostie/internal/config"
)

// Sink addresses the daemon stdout and stderr capture files.
type Sink struct {
	stdoutPath string
	stderrPath string
	now        func() time.Time
}

// New builds a sink for the configured runtime directory.
func New(cfg *config.Config) (*Sink, error) {
	if cfg == nil {
		return nil, errors.New("log sink requires config")
	}
	return &Sink{
		stdoutPath: cfg.StdoutLogPath(),
		stderrPath: cfg.StderrLogPath(),
		now:        time.Now,
	}, nil
}

// Paths returns the stdout and stderr capture file locations.
func (s *Sink) Paths() (string, string) {
	return s.stdoutPath, s.stderrPath
}

// Prepare truncates and opens both capture files for a new daemon run.
// The caller owns the returned files.
func (s *Sink) Prepare() (*os.File, *os.File, error) {
	stdout, err := os.OpenFile(s.stdoutPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open stdout log: %w", err)
	}
	stderr, err := os.OpenFile(s.stderrPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		_ = stdout.Close()
		return nil, nil, fmt.Errorf("open stderr log: %w", err)
	}
	return stdout, stderr, nil
}

// Clear leaves both capture files present and empty, as Prepare does.
func (s *Sink) Clear() error {
	stdout, stderr, err := s.Prepare()
	if err != nil {
		return err
	}
	if err := stdout.Close(); err != nil {
		_ = stderr.Close()
		return fmt.Errorf("close stdout log: %w", err)
	}
	if err := stderr.Close(); err != nil {
		return fmt.Errorf("close stderr log: %w", err)
	}
	return nil
}

type entry struct {
	at   time.Time
	line string
}

// Replay writes the lines of both capture files to w ordered by their leading
// bracketed timestamp. Lines without one sort after every stamped line while
// keeping their relative order. Missing files replay as empty.
func (s *Sink) Replay(w io.Writer) error {
	now := s.now()
	var entries []entry
	for _, path := range []string{s.stdoutPath, s.stderrPath} {
		lines, err := readLines(path)
		if err != nil {
			return err
		}
		for _, line := range lines {
			at, ok := ParseTimestamp(line)
			if !ok {
				at = now
			}
			entries = append(entries, entry{at: at, line: line})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.Before(entries[j].at)
	})

	buf := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := buf.WriteString(e.line + "\n"); err != nil {
			return fmt.Errorf("write log line: %w", err)
		}
	}
	return buf.Flush()
}

// ParseTimestamp extracts the timestamp from a line starting with
// "[<timestamp>]", or from the "ts" field of a JSON record. RFC 3339 and
// RFC 1123Z forms are accepted.
func ParseTimestamp(line string) (time.Time, bool) {
	var token string
	switch {
	case strings.HasPrefix(line, "["):
		end := strings.IndexByte(line, ']')
		if end < 0 {
			return time.Time{}, false
		}
		token = line[1:end]
	case strings.HasPrefix(line, "{"):
		var record struct {
			TS string `json:"ts"`
		}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return time.Time{}, false
		}
		token = record.TS
	default:
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC1123Z} {
		if at, err := time.Parse(layout, token); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return lines, nil
}
