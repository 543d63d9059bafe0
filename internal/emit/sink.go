package emit

import (
	"fmt"
	"io"
	"os"
)

// Sink is the output-destination interface every emission mode shares:
// plain stdout, a file path (-o@path), or the clipboard (-o clipboard).
type Sink interface {
	Write(doc string) error
}

// StdoutSink writes the document to w (normally os.Stdout) with no
// confirmation message.
type StdoutSink struct {
	Writer io.Writer
}

func (s StdoutSink) Write(doc string) error {
	_, err := io.WriteString(s.Writer, doc)
	return err
}

// FileSink writes the document to Path and prints a confirmation to
// Diagnostic (normally os.Stderr), per spec §4.7.
type FileSink struct {
	Path       string
	Diagnostic io.Writer
}

func (s FileSink) Write(doc string) error {
	if err := os.WriteFile(s.Path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	fmt.Fprintf(s.Diagnostic, "Content written to %s\n", s.Path)
	return nil
}

// ClipboardSink wraps an internal/clipboard.Sink.
type ClipboardSink struct {
	Clip interface{ Write(string) error }
}

func (s ClipboardSink) Write(doc string) error {
	return s.Clip.Write(doc)
}
