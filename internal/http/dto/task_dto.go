package dto

type CreateTaskRequest struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Priority    string `json:"priority"`
}

type TaskResponse struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Priority    string `json:"priority"`
	Display     string `json:"display"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type ConflictResponse struct {
	Error     string       `json:"error"`
	Kind      string       `json:"kind"`
	Attempted TaskResponse `json:"attempted"`
	Existing  TaskResponse `json:"existing"`
}
