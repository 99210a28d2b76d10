package domain

type Workload struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Type               string              `json:"type"`  // Workspace, Training
	Phase              string              `json:"phase"` // Running, Pending, Failed, Succeeded, Completed
	ProjectName        string              `json:"projectName"`
	ProjectID          string              `json:"projectId"`
	ClusterID          string              `json:"clusterId"`
	CreatedAt          string              `json:"createdAt"` // ISO-8601, kept as sent by the service
	AllocatedResources *AllocatedResources `json:"allocatedResources,omitempty"`
}

type AllocatedResources struct {
	GPU       float64 `json:"gpu,omitempty"`
	CPU       float64 `json:"cpu,omitempty"`
	CPUMemory string  `json:"cpuMemory,omitempty"`
	GPUMemory string  `json:"gpuMemory,omitempty"`
}

type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	ClusterID      string `json:"clusterId"`
}

type Cluster struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
