package adapters

import (
	"fmt"
	"strings"

	"github.com/de-tools/runai-atlas/pkg/models/api"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
)

const (
	ColorGreen  = "terminal.ansiGreen"
	ColorYellow = "terminal.ansiYellow"
	ColorRed    = "terminal.ansiRed"

	ConfigureLabel      = "Click here to configure Run:AI"
	EmptyWorkloadsLabel = "No workloads found. Click + to create one."
)

func PhaseIcon(phase string) domain.Icon {
	switch strings.ToLower(phase) {
	case "running":
		return domain.Icon{Name: "play", Color: ColorGreen}
	case "pending":
		return domain.Icon{Name: "clock", Color: ColorYellow}
	case "failed":
		return domain.Icon{Name: "error", Color: ColorRed}
	case "succeeded", "completed":
		return domain.Icon{Name: "check", Color: ColorGreen}
	default:
		return domain.Icon{Name: "circle-outline"}
	}
}

func MapWorkloadToRow(w domain.Workload) domain.Row {
	workload := w
	return domain.Row{
		Kind:         domain.RowEntity,
		ID:           w.ID,
		Label:        w.Name,
		Description:  fmt.Sprintf("%s - %s", w.Phase, w.ProjectName),
		Tooltip:      fmt.Sprintf("%s\nStatus: %s\nProject: %s", w.Name, w.Phase, w.ProjectName),
		Icon:         PhaseIcon(w.Phase),
		Command:      domain.CommandShowWorkloadDetails,
		ContextValue: "workload",
		Workload:     &workload,
	}
}

func MapProjectToRow(p domain.Project) domain.Row {
	return domain.Row{
		Kind:         domain.RowEntity,
		ID:           p.ID,
		Label:        p.Name,
		Description:  p.DepartmentName,
		Tooltip:      fmt.Sprintf("%s\nDepartment: %s", p.Name, p.DepartmentName),
		Icon:         domain.Icon{Name: "folder"},
		ContextValue: "project",
	}
}

func MapClusterToRow(c domain.Cluster) domain.Row {
	return domain.Row{
		Kind:         domain.RowEntity,
		ID:           c.ID,
		Label:        c.Name,
		Description:  c.URL,
		Tooltip:      fmt.Sprintf("%s\nURL: %s", c.Name, c.URL),
		Icon:         domain.Icon{Name: "server"},
		ContextValue: "cluster",
	}
}

func ConfigureRow() domain.Row {
	return domain.Row{
		Kind:         domain.RowConfigure,
		Label:        ConfigureLabel,
		Icon:         domain.Icon{Name: "gear"},
		Command:      domain.CommandConfigure,
		ContextValue: "configure",
	}
}

func EmptyRow(message string) domain.Row {
	return domain.Row{
		Kind:         domain.RowEmpty,
		Label:        message,
		Icon:         domain.Icon{Name: "info"},
		ContextValue: "empty",
	}
}

func MapRowToAPI(r domain.Row) api.ViewRow {
	return api.ViewRow{
		Kind:         string(r.Kind),
		ID:           r.ID,
		Label:        r.Label,
		Description:  r.Description,
		Tooltip:      r.Tooltip,
		Icon:         r.Icon.Name,
		IconColor:    r.Icon.Color,
		Command:      r.Command,
		ContextValue: r.ContextValue,
	}
}

func MapRowsToAPI(rows []domain.Row) []api.ViewRow {
	out := make([]api.ViewRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, MapRowToAPI(r))
	}
	return out
}
