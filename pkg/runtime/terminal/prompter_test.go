package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

func TestPrompterInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    dialog.InputOptions
		want    string
		wantErr error
	}{
		{name: "answer", input: "value\n", want: "value"},
		{name: "trims", input: "  value  \n", want: "value"},
		{name: "empty keeps current", input: "\n", opts: dialog.InputOptions{Value: "current"}, want: "current"},
		{name: "last line without newline", input: "value", want: "value"},
		{name: "eof cancels", input: "", wantErr: domain.ErrCancelled},
		{name: "password without terminal reads a line", input: "secret\n", opts: dialog.InputOptions{Password: true}, want: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), new(bytes.Buffer))

			got, err := p.Input(context.Background(), tt.opts)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompterInput_ShowsCurrentValue(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)

	_, err := p.Input(context.Background(), dialog.InputOptions{Prompt: "Enter Run:AI API URL", Value: "https://a"})

	require.NoError(t, err)
	assert.Equal(t, "Enter Run:AI API URL [https://a]: ", out.String())
}

func TestPrompterPick(t *testing.T) {
	items := []dialog.PickItem{
		{Label: "team-a", Description: "research"},
		{Label: "team-b", Detail: "Created: today"},
	}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "by number", input: "2\n", want: 1},
		{name: "by label", input: "team-a\n", want: 0},
		{name: "retries after a miss", input: "9\n1\n", want: 0},
		{name: "empty cancels", input: "\n", wantErr: domain.ErrCancelled},
		{name: "too many misses cancel", input: "x\ny\nz\n", wantErr: domain.ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Pick(context.Background(), "Select a project", items)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "  1) team-a  research")
			assert.Contains(t, out.String(), "     Created: today")
		})
	}
}

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "delete\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), new(bytes.Buffer))

			got, err := p.Confirm(context.Background(), `Delete workload "a"?`, "Delete")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilePanel_WritesPage(t *testing.T) {
	var out bytes.Buffer
	panel := NewFilePanel(t.TempDir(), &out)

	err := panel.Show(context.Background(), "Workload: a", "<h1>a</h1>")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Workload: a: file://"))
}
