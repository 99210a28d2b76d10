package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

const maxPickAttempts = 3

// Prompter asks questions on a line-oriented terminal. End of input counts
// as the user dismissing the prompt.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() (string, error)
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(p.out)
			if err != nil {
				return "", fmt.Errorf("failed to read secret: %w", err)
			}
			return string(b), nil
		}
	}
	return p
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", domain.ErrCancelled
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Input shows the current value in brackets; an empty answer keeps it.
func (p *Prompter) Input(_ context.Context, opts dialog.InputOptions) (string, error) {
	prompt := opts.Prompt
	switch {
	case opts.Value != "":
		prompt += fmt.Sprintf(" [%s]", opts.Value)
	case opts.Placeholder != "":
		prompt += fmt.Sprintf(" (e.g. %s)", opts.Placeholder)
	}
	fmt.Fprintf(p.out, "%s: ", prompt)

	var (
		answer string
		err    error
	)
	if opts.Password && p.secret != nil {
		answer, err = p.secret()
	} else {
		answer, err = p.readLine()
	}
	if err != nil {
		return "", err
	}
	if answer == "" {
		return opts.Value, nil
	}
	return answer, nil
}

// Pick accepts either the item number or its exact label.
func (p *Prompter) Pick(_ context.Context, placeholder string, items []dialog.PickItem) (int, error) {
	if len(items) == 0 {
		return 0, domain.ErrCancelled
	}

	for i, item := range items {
		fmt.Fprintf(p.out, "%3d) %s", i+1, item.Label)
		if item.Description != "" {
			fmt.Fprintf(p.out, "  %s", item.Description)
		}
		fmt.Fprintln(p.out)
		if item.Detail != "" {
			fmt.Fprintf(p.out, "     %s\n", item.Detail)
		}
	}

	for attempt := 0; attempt < maxPickAttempts; attempt++ {
		fmt.Fprintf(p.out, "%s: ", placeholder)
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, domain.ErrCancelled
		}
		if idx, ok := matchItem(answer, items); ok {
			return idx, nil
		}
		fmt.Fprintf(p.out, "No item matches %q\n", answer)
	}
	return 0, domain.ErrCancelled
}

func matchItem(answer string, items []dialog.PickItem) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(items) {
			return n - 1, true
		}
		return 0, false
	}
	for i, item := range items {
		if item.Label == answer {
			return i, true
		}
	}
	return 0, false
}

// Confirm is true only for an explicit yes or the action name itself.
func (p *Prompter) Confirm(_ context.Context, message, action string) (bool, error) {
	fmt.Fprintf(p.out, "%s [%s? y/N]: ", message, action)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", strings.ToLower(action):
		return true, nil
	}
	return false, nil
}
