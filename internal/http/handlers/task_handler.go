package handlers

import (
	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/http/dto"
	"encoding/json"
	"errors"
	"net/http"
)

type TaskService interface {
	CreateTask(description, start, end, priority string) (domain.Task, error)
	RemoveTask(description string) error
	GetTask(description string) (domain.Task, error)
	ListTasks() []domain.Task
}

type TaskHandler struct {
	taskService TaskService
}

func New(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	task, err := h.taskService.CreateTask(req.Description, req.Start, req.End, req.Priority)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(task))
}

// GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks := h.taskService.ListTasks()

	response := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toResponse(task))
	}

	writeJSON(w, http.StatusOK, response)
}

// GET /tasks/{description}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTask(r.PathValue("description"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(task))
}

// DELETE /tasks/{description}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.RemoveTask(r.PathValue("description")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toResponse(task domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		Description: task.Description(),
		Start:       task.Start().String(),
		End:         task.End().String(),
		Priority:    string(task.Priority()),
		Display:     task.String(),
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, dto.ConflictResponse{
			Error:     conflict.Error(),
			Kind:      "conflict",
			Attempted: toResponse(conflict.Attempted),
			Existing:  toResponse(conflict.Existing),
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Kind: "validation"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Kind: "not_found"})
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
