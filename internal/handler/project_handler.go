package handler

import (
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/service"
)

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Status:      req.Status,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, ProjectEnvelope{Project: domainProjectToHTTP(project)})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	result := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, domainProjectToHTTP(p))
	}
	h.writeJSON(w, http.StatusOK, ProjectListResponse{Projects: result})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ProjectEnvelope{Project: domainProjectToHTTP(project)})
}

func (h *Handler) GetProjectBoard(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	board, err := h.projectService.ProjectBoard(r.Context(), projectID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domainBoardToHTTP(projectID, board))
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	task, err := h.projectService.CreateTask(r.Context(), service.CreateTaskInput{
		ProjectID:   r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
		Lane:        domain.Lane(req.Lane),
		AssigneeIDs: req.AssigneeIDs,
		DueAt:       req.DueAt,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, TaskEnvelope{Task: domainTaskToHTTP(task)})
}

func (h *Handler) MoveTask(w http.ResponseWriter, r *http.Request) {
	var req MoveTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	task, err := h.projectService.MoveTask(r.Context(), r.PathValue("id"), domain.Lane(req.Lane), req.Position)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TaskEnvelope{Task: domainTaskToHTTP(task)})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	task, err := h.projectService.UpdateTask(r.Context(), service.UpdateTaskInput{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
		AssigneeIDs: req.AssigneeIDs,
		DueAt:       req.DueAt,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TaskEnvelope{Task: domainTaskToHTTP(task)})
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
