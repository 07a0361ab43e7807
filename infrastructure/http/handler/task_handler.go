package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/application/usecase"
	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/http/middleware"
	"github.com/pookie/pookie/infrastructure/http/response"
)

type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
	auth        *middleware.AuthMiddleware
}

func NewTaskHandler(taskUseCase *usecase.TaskUseCase, auth *middleware.AuthMiddleware) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
		auth:        auth,
	}
}

func (h *TaskHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/tasks", h.auth.RequireAuth(h.Create)).Methods("POST")
	router.HandleFunc("/api/v1/tasks", h.auth.RequireAuth(h.List)).Methods("GET")
	router.HandleFunc("/api/v1/tasks/stats", h.auth.RequireAuth(h.Stats)).Methods("GET")
	router.HandleFunc("/api/v1/tasks/{id}", h.auth.RequireAuth(h.Get)).Methods("GET")
	router.HandleFunc("/api/v1/tasks/{id}", h.auth.RequireAuth(h.Update)).Methods("PUT")
	router.HandleFunc("/api/v1/tasks/{id}/toggle", h.auth.RequireAuth(h.Toggle)).Methods("POST")
	router.HandleFunc("/api/v1/tasks/{id}", h.auth.RequireAuth(h.Delete)).Methods("DELETE")
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req usecase.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	task, err := h.taskUseCase.CreateTask(r.Context(), claims.UserID, req)
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := entity.TaskFilter{
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		switch status {
		case "completed":
			completed := true
			filter.Status = &completed
		case "pending":
			completed := false
			filter.Status = &completed
		default:
			response.BadRequest(w, "Invalid status filter")
			return
		}
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	tasks, err := h.taskUseCase.ListTasks(r.Context(), claims.UserID, filter)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	task, err := h.taskUseCase.GetTask(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req usecase.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	task, err := h.taskUseCase.UpdateTask(r.Context(), claims.UserID, mux.Vars(r)["id"], req)
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	task, err := h.taskUseCase.ToggleTask(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeTaskError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.taskUseCase.DeleteTask(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		h.writeTaskError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	stats, err := h.taskUseCase.Stats(r.Context(), claims.UserID)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.WriteJSON(w, http.StatusOK, stats)
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, outbound.ErrTaskNotFound):
		response.NotFound(w, "Task not found")
	case errors.Is(err, usecase.ErrDescriptionRequired):
		response.BadRequest(w, "Task description is required")
	case errors.Is(err, usecase.ErrInvalidPriority):
		response.BadRequest(w, "Invalid task priority")
	default:
		response.InternalServerError(w, "Internal server error")
	}
}
