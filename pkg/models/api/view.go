package api

type ViewRow struct {
	Kind         string `json:"kind"`
	ID           string `json:"id,omitempty"`
	Label        string `json:"label"`
	Description  string `json:"description,omitempty"`
	Tooltip      string `json:"tooltip,omitempty"`
	Icon         string `json:"icon,omitempty"`
	IconColor    string `json:"iconColor,omitempty"`
	Command      string `json:"command,omitempty"`
	ContextValue string `json:"contextValue,omitempty"`
}

type ViewResponse struct {
	View       string    `json:"view"`
	Configured bool      `json:"configured"`
	Rows       []ViewRow `json:"rows"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
