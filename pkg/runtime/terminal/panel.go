package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
)

// WriterPanel prints the rendered page as is.
type WriterPanel struct {
	out io.Writer
}

func NewWriterPanel(out io.Writer) *WriterPanel {
	return &WriterPanel{out: out}
}

func (p *WriterPanel) Show(_ context.Context, _, html string) error {
	_, err := io.WriteString(p.out, html)
	return err
}

// FilePanel saves each page to a temporary file and prints its location,
// so it can be opened in a browser.
type FilePanel struct {
	dir string
	out io.Writer
}

// NewFilePanel writes into dir, or the system temp directory when dir is empty.
func NewFilePanel(dir string, out io.Writer) *FilePanel {
	return &FilePanel{dir: dir, out: out}
}

func (p *FilePanel) Show(_ context.Context, title, html string) error {
	f, err := os.CreateTemp(p.dir, "runai-workload-*.html")
	if err != nil {
		return fmt.Errorf("failed to create details file: %w", err)
	}
	if _, err := io.WriteString(f, html); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write details file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close details file: %w", err)
	}
	fmt.Fprintf(p.out, "%s: file://%s\n", title, f.Name())
	return nil
}
