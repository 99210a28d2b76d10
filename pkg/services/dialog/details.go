package dialog

import (
	"bytes"
	"html/template"
	"time"

	"github.com/Masterminds/sprig"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
)

const createdLayout = "2006-01-02 15:04:05 MST"

const detailsTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Workload: {{ .Name }}</title>
    <style>
        body { font-family: var(--vscode-font-family, sans-serif); padding: 20px; color: var(--vscode-foreground, inherit); }
        .detail { margin: 10px 0; }
        .label { font-weight: bold; display: inline-block; width: 150px; }
        .status-running { color: #4CAF50; }
        .status-pending { color: #FFC107; }
        .status-failed { color: #F44336; }
        .status-succeeded { color: #4CAF50; }
        .status-completed { color: #4CAF50; }
    </style>
</head>
<body>
    <h1>{{ .Name }}</h1>
    <div class="detail"><span class="label">Status:</span><span class="status-{{ lower .Phase }}">{{ .Phase }}</span></div>
    <div class="detail"><span class="label">Type:</span><span>{{ .Type }}</span></div>
    <div class="detail"><span class="label">Project:</span><span>{{ .ProjectName }}</span></div>
    <div class="detail"><span class="label">Project ID:</span><span>{{ .ProjectID }}</span></div>
    <div class="detail"><span class="label">Created:</span><span>{{ .Created }}</span></div>
    <h2>Resources</h2>
    <div class="detail"><span class="label">GPU:</span><span>{{ default "N/A" .GPU }}</span></div>
    <div class="detail"><span class="label">CPU:</span><span>{{ default "N/A" .CPU }}</span></div>
    <div class="detail"><span class="label">GPU Memory:</span><span>{{ default "N/A" .GPUMemory }}</span></div>
    <div class="detail"><span class="label">CPU Memory:</span><span>{{ default "N/A" .CPUMemory }}</span></div>
</body>
</html>
`

var details = template.Must(template.New("workload").Funcs(sprig.HtmlFuncMap()).Parse(detailsTemplate))

type detailsView struct {
	domain.Workload
	Created   string
	GPU       float64
	CPU       float64
	GPUMemory string
	CPUMemory string
}

// RenderWorkloadDetails builds the static detail page. Unset or zero
// resources render as N/A.
func RenderWorkloadDetails(w domain.Workload) (string, error) {
	view := detailsView{Workload: w, Created: FormatCreated(w.CreatedAt)}
	if r := w.AllocatedResources; r != nil {
		view.GPU = r.GPU
		view.CPU = r.CPU
		view.GPUMemory = r.GPUMemory
		view.CPUMemory = r.CPUMemory
	}

	var buf bytes.Buffer
	if err := details.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatCreated renders an ISO-8601 timestamp in local time, or returns it
// unchanged when it does not parse.
func FormatCreated(createdAt string) string {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return createdAt
	}
	return t.Local().Format(createdLayout)
}
