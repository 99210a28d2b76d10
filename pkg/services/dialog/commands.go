package dialog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

type InputOptions struct {
	Prompt      string
	Placeholder string
	Value       string
	Password    bool
}

type PickItem struct {
	Label       string
	Description string
	Detail      string
}

// Prompter is the input surface. Every method returns domain.ErrCancelled
// when the user dismisses the prompt.
type Prompter interface {
	Input(ctx context.Context, opts InputOptions) (string, error)
	// Pick returns the index of the chosen item.
	Pick(ctx context.Context, placeholder string, items []PickItem) (int, error)
	Confirm(ctx context.Context, message, action string) (bool, error)
}

// AssumeYes answers every confirmation with yes and passes other prompts through.
func AssumeYes(p Prompter) Prompter {
	return assumeYes{Prompter: p}
}

type assumeYes struct {
	Prompter
}

func (assumeYes) Confirm(context.Context, string, string) (bool, error) {
	return true, nil
}

type Notifier interface {
	Info(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Panel displays a rendered detail page.
type Panel interface {
	Show(ctx context.Context, title, html string) error
}

type Dependencies struct {
	Session  *session.Session
	Views    *resources.Set
	Prompter Prompter
	Notifier Notifier
	Panel    Panel
}

type Commands struct {
	session  *session.Session
	views    *resources.Set
	prompter Prompter
	notifier Notifier
	panel    Panel
}

func New(deps Dependencies) *Commands {
	return &Commands{
		session:  deps.Session,
		views:    deps.Views,
		prompter: deps.Prompter,
		notifier: deps.Notifier,
		panel:    deps.Panel,
	}
}

// reportedError marks a failure the user has already been shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// MarkReported wraps err for callers that surfaced it to the user themselves.
func MarkReported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Reported reports whether err was already surfaced through the Notifier.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func (c *Commands) fail(ctx context.Context, prefix string, err error) error {
	zerolog.Ctx(ctx).Debug().Err(err).Msg(prefix)
	c.notifier.Error(ctx, fmt.Sprintf("%s: %v", prefix, err))
	return &reportedError{err: err}
}

func (c *Commands) notConfigured(ctx context.Context) error {
	c.notifier.Error(ctx, "Run:AI client not initialized")
	return &reportedError{err: domain.ErrNotConfigured}
}

// requireClient offers to run the configuration flow when no client exists.
func (c *Commands) requireClient(ctx context.Context) (client.RunAI, bool, error) {
	if runai, ok := c.session.Client(); ok {
		return runai, true, nil
	}

	ok, err := c.prompter.Confirm(ctx, "Run:AI is not configured. Would you like to configure it now?", "Configure")
	if err != nil || !ok {
		return nil, false, ignoreCancel(err)
	}
	if err := c.Configure(ctx); err != nil {
		return nil, false, err
	}
	runai, ok := c.session.Client()
	return runai, ok, nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, domain.ErrCancelled) {
		return nil
	}
	return err
}

// Configure asks for the API URL and token, persists them and rebuilds the client.
func (c *Commands) Configure(ctx context.Context) error {
	current := c.session.Config()

	apiURL, err := c.prompter.Input(ctx, InputOptions{
		Prompt:      "Enter Run:AI API URL",
		Placeholder: "https://app.run.ai",
		Value:       current.APIURL,
	})
	if err != nil || apiURL == "" {
		return ignoreCancel(err)
	}

	token, err := c.prompter.Input(ctx, InputOptions{
		Prompt:   "Enter Run:AI API Token (optional)",
		Password: true,
	})
	if err != nil && !errors.Is(err, domain.ErrCancelled) {
		return err
	}

	if err := c.session.Configure(ctx, domain.ConnectionConfig{APIURL: apiURL, Token: token}); err != nil {
		return c.fail(ctx, "Failed to update configuration", err)
	}

	c.notifier.Info(ctx, "Run:AI configuration updated successfully!")
	return nil
}

// GettingStarted offers the configuration flow on first use.
func (c *Commands) GettingStarted(ctx context.Context) error {
	if c.session.Configured() {
		return nil
	}
	ok, err := c.prompter.Confirm(ctx,
		"Welcome to Run:AI! Would you like to configure your API connection now?", "Configure Now")
	if err != nil || !ok {
		return ignoreCancel(err)
	}
	return c.Configure(ctx)
}

func (c *Commands) Refresh(ctx context.Context, view domain.View) error {
	p, err := c.views.Get(view)
	if err != nil {
		return err
	}
	p.Refresh()
	c.notifier.Info(ctx, fmt.Sprintf("%s refreshed", refreshedLabel(view)))
	return nil
}

func refreshedLabel(view domain.View) string {
	switch view {
	case domain.ViewWorkloads:
		return "Workloads"
	case domain.ViewProjects:
		return "Projects"
	case domain.ViewClusters:
		return "Clusters"
	}
	return string(view)
}

func (c *Commands) ShowWorkloadDetails(ctx context.Context, w domain.Workload) error {
	html, err := RenderWorkloadDetails(w)
	if err != nil {
		return c.fail(ctx, "Failed to render workload details", err)
	}
	if err := c.panel.Show(ctx, "Workload: "+w.Name, html); err != nil {
		return c.fail(ctx, "Failed to show workload details", err)
	}
	return nil
}

// DeleteWorkload asks for confirmation, deletes, and refreshes the workloads
// view only when the delete succeeded.
func (c *Commands) DeleteWorkload(ctx context.Context, w domain.Workload) error {
	runai, ok := c.session.Client()
	if !ok {
		return c.notConfigured(ctx)
	}

	confirmed, err := c.prompter.Confirm(ctx, fmt.Sprintf("Delete workload %q?", w.Name), "Delete")
	if err != nil || !confirmed {
		return ignoreCancel(err)
	}

	if err := runai.DeleteWorkload(ctx, w.ID); err != nil {
		return c.fail(ctx, "Failed to delete workload", err)
	}

	c.notifier.Info(ctx, fmt.Sprintf("Workload %q deleted", w.Name))
	c.views.Workloads.Refresh()
	return nil
}

// ListWorkloads lets the user pick a workload and shows its details.
func (c *Commands) ListWorkloads(ctx context.Context) error {
	runai, ok := c.session.Client()
	if !ok {
		return c.notConfigured(ctx)
	}

	workloads, err := runai.ListWorkloads(ctx, "")
	if err != nil {
		return c.fail(ctx, "Failed to list workloads", err)
	}
	if len(workloads) == 0 {
		c.notifier.Info(ctx, "No workloads found")
		return nil
	}

	items := make([]PickItem, 0, len(workloads))
	for _, w := range workloads {
		items = append(items, PickItem{
			Label:       w.Name,
			Description: fmt.Sprintf("%s - %s", w.Phase, w.ProjectName),
			Detail:      "Created: " + FormatCreated(w.CreatedAt),
		})
	}

	idx, err := c.prompter.Pick(ctx, "Select a workload to view details", items)
	if err != nil {
		return ignoreCancel(err)
	}
	return c.ShowWorkloadDetails(ctx, workloads[idx])
}
