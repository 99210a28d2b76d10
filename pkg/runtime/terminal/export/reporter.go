package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/ghodss/yaml"
	jsoniter "github.com/json-iterator/go"

	"github.com/de-tools/runai-atlas/pkg/adapters"
	"github.com/de-tools/runai-atlas/pkg/models/api"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/config"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var glyphs = map[string]string{
	"play":           "▶",
	"clock":          "◷",
	"error":          "✖",
	"check":          "✔",
	"circle-outline": "○",
	"folder":         "▣",
	"server":         "▤",
	"gear":           "⚙",
	"info":           "ℹ",
}

// Glyph maps an icon name to a single terminal character.
func Glyph(icon domain.Icon) string {
	if g, ok := glyphs[icon.Name]; ok {
		return g
	}
	return " "
}

type TableConfig struct {
	LabelWidth       int
	DescriptionWidth int
	IDWidth          int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth:       36,
		DescriptionWidth: 40,
		IDWidth:          36,
	}
}

type Reporter struct {
	writer io.Writer
	format string
	config TableConfig
}

func NewReporter(writer io.Writer, format string) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = config.OutputTable
	}
	return &Reporter{
		writer: writer,
		format: format,
		config: DefaultTableConfig(),
	}
}

const rowsTemplate = `{{separator}}
{{formatRow "" "Name" "Description" "ID"}}
{{separator}}
{{range .}}{{formatRow (glyph .Icon) .Label .Description .ID}}
{{end}}{{separator}}
`

// Rows prints one view in the configured format. Structured formats carry
// the synthetic rows too, so scripts can tell an empty view from an
// unconfigured one.
func (r *Reporter) Rows(view domain.View, configured bool, rows []domain.Row) error {
	switch r.format {
	case config.OutputJSON, config.OutputYAML:
		return r.encode(api.ViewResponse{
			View:       string(view),
			Configured: configured,
			Rows:       adapters.MapRowsToAPI(rows),
		})
	}

	funcMap := template.FuncMap{
		"glyph": Glyph,
		"formatRow": func(glyph, label, desc, id string) string {
			return fmt.Sprintf("| %-1s | %-*s | %-*s | %-*s |",
				glyph,
				r.config.LabelWidth, truncate(label, r.config.LabelWidth),
				r.config.DescriptionWidth, truncate(desc, r.config.DescriptionWidth),
				r.config.IDWidth, truncate(id, r.config.IDWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", 3),
				strings.Repeat("-", r.config.LabelWidth+2),
				strings.Repeat("-", r.config.DescriptionWidth+2),
				strings.Repeat("-", r.config.IDWidth+2))
		},
	}

	t, err := template.New("rows").Funcs(funcMap).Parse(rowsTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, rows)
}

const workloadTemplate = `{{.Name}}
  Status:      {{.Phase}}
  Type:        {{.Type}}
  Project:     {{.ProjectName}} ({{.ProjectID}})
  Cluster:     {{.ClusterID}}
  Created:     {{created .CreatedAt}}
  GPU:         {{gpu .AllocatedResources}}
  CPU:         {{cpu .AllocatedResources}}
  GPU Memory:  {{gpuMemory .AllocatedResources}}
  CPU Memory:  {{cpuMemory .AllocatedResources}}
`

// Workload prints a single workload.
func (r *Reporter) Workload(w domain.Workload) error {
	switch r.format {
	case config.OutputJSON, config.OutputYAML:
		return r.encode(w)
	}

	funcMap := template.FuncMap{
		"created": dialog.FormatCreated,
		"gpu": func(res *domain.AllocatedResources) string {
			if res == nil || res.GPU == 0 {
				return "N/A"
			}
			return fmt.Sprintf("%g", res.GPU)
		},
		"cpu": func(res *domain.AllocatedResources) string {
			if res == nil || res.CPU == 0 {
				return "N/A"
			}
			return fmt.Sprintf("%g", res.CPU)
		},
		"gpuMemory": func(res *domain.AllocatedResources) string {
			if res == nil || res.GPUMemory == "" {
				return "N/A"
			}
			return res.GPUMemory
		},
		"cpuMemory": func(res *domain.AllocatedResources) string {
			if res == nil || res.CPUMemory == "" {
				return "N/A"
			}
			return res.CPUMemory
		},
	}

	t, err := template.New("workload").Funcs(funcMap).Parse(workloadTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, w)
}

func (r *Reporter) encode(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if r.format == config.OutputYAML {
		data, err = yaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to convert output to yaml: %w", err)
		}
	} else {
		data = append(data, '\n')
	}
	_, err = r.writer.Write(data)
	return err
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
