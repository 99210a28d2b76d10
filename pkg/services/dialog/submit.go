package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

// SubmitInput holds values already known before prompting. Set fields skip
// their prompt.
type SubmitInput struct {
	Project string // project id or name
	Name    string
	Image   string
	Command *string
	GPU     *int
}

type submitKind struct {
	namePrompt       string
	namePlaceholder  string
	imagePlaceholder string
	askCommand       bool
	successFormat    string
	failurePrefix    string
}

var (
	workspaceKind = submitKind{
		namePrompt:       "Enter workspace name",
		namePlaceholder:  "my-workspace",
		imagePlaceholder: "ubuntu:latest",
		successFormat:    "Workspace %q submitted!",
		failurePrefix:    "Failed to submit workspace",
	}
	trainingKind = submitKind{
		namePrompt:       "Enter training job name",
		namePlaceholder:  "my-training-job",
		imagePlaceholder: "pytorch/pytorch:latest",
		askCommand:       true,
		successFormat:    "Training job %q submitted!",
		failurePrefix:    "Failed to submit training job",
	}
)

type submission struct {
	projectID string
	name      string
	image     string
	command   string
	gpu       int
}

func (c *Commands) SubmitWorkspace(ctx context.Context, in SubmitInput) error {
	return c.submit(ctx, workspaceKind, in, func(runai client.RunAI, s submission) error {
		_, err := runai.SubmitWorkspace(ctx, s.projectID, s.name, s.image, s.gpu)
		return err
	})
}

func (c *Commands) SubmitTraining(ctx context.Context, in SubmitInput) error {
	return c.submit(ctx, trainingKind, in, func(runai client.RunAI, s submission) error {
		_, err := runai.SubmitTraining(ctx, s.projectID, s.name, s.image, s.command, s.gpu)
		return err
	})
}

func (c *Commands) submit(
	ctx context.Context,
	kind submitKind,
	in SubmitInput,
	send func(client.RunAI, submission) error,
) error {
	runai, ok, err := c.requireClient(ctx)
	if err != nil || !ok {
		return err
	}

	s, err := c.collect(ctx, runai, kind, in)
	if errors.Is(err, domain.ErrCancelled) {
		return nil
	}
	if err != nil {
		return c.fail(ctx, kind.failurePrefix, err)
	}

	if err := send(runai, *s); err != nil {
		return c.fail(ctx, kind.failurePrefix, err)
	}

	c.notifier.Info(ctx, fmt.Sprintf(kind.successFormat, s.name))
	c.views.Workloads.Refresh()
	return nil
}

// collect runs the prompt sequence. A dismissed required step returns
// domain.ErrCancelled; dismissed optional steps count as not provided.
func (c *Commands) collect(
	ctx context.Context,
	runai client.RunAI,
	kind submitKind,
	in SubmitInput,
) (*submission, error) {
	projectID, err := c.pickProject(ctx, runai, in.Project)
	if err != nil {
		return nil, err
	}

	name, err := c.required(ctx, in.Name, InputOptions{Prompt: kind.namePrompt, Placeholder: kind.namePlaceholder})
	if err != nil {
		return nil, err
	}

	image, err := c.required(ctx, in.Image, InputOptions{Prompt: "Enter Docker image", Placeholder: kind.imagePlaceholder})
	if err != nil {
		return nil, err
	}

	s := &submission{projectID: projectID, name: name, image: image}

	if kind.askCommand {
		if in.Command != nil {
			s.command = *in.Command
		} else {
			s.command, err = c.optional(ctx, InputOptions{Prompt: "Enter command (optional)", Placeholder: "python train.py"})
			if err != nil {
				return nil, err
			}
		}
	}

	if in.GPU != nil {
		s.gpu = *in.GPU
	} else {
		raw, err := c.optional(ctx, InputOptions{Prompt: "Enter number of GPUs (optional)", Placeholder: "1"})
		if err != nil {
			return nil, err
		}
		s.gpu = ParseGPUCount(raw)
	}

	return s, nil
}

func (c *Commands) pickProject(ctx context.Context, runai client.RunAI, want string) (string, error) {
	projects, err := runai.ListProjects(ctx)
	if err != nil {
		return "", err
	}

	if want != "" {
		for _, p := range projects {
			if p.ID == want || p.Name == want {
				return p.ID, nil
			}
		}
		return "", fmt.Errorf("project %q not found", want)
	}
	if len(projects) == 0 {
		return "", errors.New("no projects available")
	}

	items := make([]PickItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, PickItem{Label: p.Name, Description: p.DepartmentName})
	}
	idx, err := c.prompter.Pick(ctx, "Select a project", items)
	if err != nil {
		return "", err
	}
	return projects[idx].ID, nil
}

func (c *Commands) required(ctx context.Context, preset string, opts InputOptions) (string, error) {
	if preset != "" {
		return preset, nil
	}
	value, err := c.prompter.Input(ctx, opts)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", domain.ErrCancelled
	}
	return value, nil
}

func (c *Commands) optional(ctx context.Context, opts InputOptions) (string, error) {
	value, err := c.prompter.Input(ctx, opts)
	if errors.Is(err, domain.ErrCancelled) {
		return "", nil
	}
	return value, err
}

// ParseGPUCount reads the leading integer of free text. Anything without
// leading digits, or a number too large for an int, is 0, meaning no GPUs
// are requested.
func ParseGPUCount(text string) int {
	text = strings.TrimSpace(text)
	digits := strings.TrimLeft(text, "+-")
	if len(text)-len(digits) > 1 {
		return 0
	}
	if end := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
		digits = digits[:end]
	}
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(text, "-") {
		return -n
	}
	return n
}
