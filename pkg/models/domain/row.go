package domain

type RowKind string

const (
	RowEntity    RowKind = "entity"
	RowConfigure RowKind = "configure"
	RowEmpty     RowKind = "empty"
)

type View string

const (
	ViewWorkloads View = "workloads"
	ViewProjects  View = "projects"
	ViewClusters  View = "clusters"
)

func (v View) Valid() bool {
	switch v {
	case ViewWorkloads, ViewProjects, ViewClusters:
		return true
	}
	return false
}

const (
	CommandConfigure           = "run-ai.configure"
	CommandShowWorkloadDetails = "run-ai.showWorkloadDetails"
)

type Icon struct {
	Name  string
	Color string // terminal.ansiGreen etc, empty for the default foreground
}

// Row is a single display line of a flat resource view. Synthetic rows
// (configure, empty) carry no entity.
type Row struct {
	Kind         RowKind
	ID           string
	Label        string
	Description  string
	Tooltip      string
	Icon         Icon
	Command      string
	ContextValue string
	Workload     *Workload
}

func (r Row) IsEntity() bool {
	return r.Kind == RowEntity
}
