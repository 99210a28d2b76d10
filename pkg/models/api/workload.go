package api

import "github.com/de-tools/runai-atlas/pkg/models/domain"

type WorkloadList struct {
	Workloads []domain.Workload `json:"workloads"`
}

type ProjectList struct {
	Projects []domain.Project `json:"projects"`
}

type ClusterList struct {
	Clusters []domain.Cluster `json:"clusters"`
}

// SubmitRequest is the body of both workspace and training submissions.
type SubmitRequest struct {
	Name      string       `json:"name"`
	ProjectID string       `json:"projectId"`
	Spec      WorkloadSpec `json:"spec"`
}

type WorkloadSpec struct {
	Image   string  `json:"image"`
	Compute Compute `json:"compute"`
	// Command is nil for workspaces; trainings always send it, possibly empty.
	Command *string `json:"command,omitempty"`
}

type Compute struct {
	GPUDevicesRequest *int `json:"gpuDevicesRequest,omitempty"`
}

// SubmitResult is the submission response body as returned by the service.
type SubmitResult map[string]interface{}
