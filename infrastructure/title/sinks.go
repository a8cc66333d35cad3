package title

import (
	"fmt"
	"io"
	"os"

	"github.com/rios0rios0/branchwatch/config"
	"github.com/rios0rios0/branchwatch/domain"
)

// TerminalSink sets the terminal window/tab title through the OSC 0
// escape sequence.
type TerminalSink struct {
	out io.Writer
}

// NewTerminalSink creates a sink writing escape sequences to out.
func NewTerminalSink(out io.Writer) *TerminalSink {
	return &TerminalSink{out: out}
}

// Set replaces the terminal title.
func (s *TerminalSink) Set(text string) error {
	_, err := fmt.Fprintf(s.out, "\x1b]0;%s\x07", text)
	return err
}

// FileSink mirrors the title into a file for tmux or prompt integrations.
// Writes are atomic: consumers never observe a half-written title.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Set rewrites the target file with the new title.
func (s *FileSink) Set(text string) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write title file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// StreamSink prints each title update as a plain line, for piping into
// other tools.
type StreamSink struct {
	out io.Writer
}

// NewStreamSink creates a sink printing to out.
func NewStreamSink(out io.Writer) *StreamSink {
	return &StreamSink{out: out}
}

// Set prints the new title.
func (s *StreamSink) Set(text string) error {
	_, err := fmt.Fprintln(s.out, text)
	return err
}

// NewSink builds the title sink selected by the configuration. Terminal
// and stream sinks write to out; the file sink writes to cfg.File.
func NewSink(cfg config.TitleConfig, out io.Writer) (domain.TitleSink, error) {
	switch cfg.Sink {
	case config.SinkTerminal:
		return NewTerminalSink(out), nil
	case config.SinkFile:
		return NewFileSink(cfg.File), nil
	case config.SinkStdout:
		return NewStreamSink(out), nil
	default:
		return nil, fmt.Errorf("unknown title sink %q", cfg.Sink)
	}
}
