package handler

import (
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

// AdminHandler serves the activity log and admin notifications behind the
// admin gate: 401 unauthenticated, 404 when the user record is gone, 403 when
// the caller is not the configured admin.
type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
	auth         *middleware.AuthMiddleware
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, auth *middleware.AuthMiddleware) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		auth:         auth,
	}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/admin/activity", h.auth.RequireAuth(h.GetActivityLog)).Methods("GET")
	router.HandleFunc("/api/v1/admin/notifications", h.auth.RequireAuth(h.GetNotifications)).Methods("GET")
}

func (h *AdminHandler) GetActivityLog(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	if !h.verifyAdmin(w, r, claims.UserID) {
		return
	}

	q := usecase.ActivityQuery{
		Action: entity.ActionType(r.URL.Query().Get("action")),
		Limit:  parseLimit(r.URL.Query().Get("limit")),
	}

	activities, err := h.adminUseCase.GetActivityLog(r.Context(), q)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	if activities == nil {
		activities = []entity.ActivityEntry{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"activities": activities})
}

func (h *AdminHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	if !h.verifyAdmin(w, r, claims.UserID) {
		return
	}

	q := usecase.NotificationQuery{
		Type:   entity.NotificationType(r.URL.Query().Get("type")),
		Status: entity.NotificationStatus(r.URL.Query().Get("status")),
		Limit:  parseLimit(r.URL.Query().Get("limit")),
	}

	notifications, err := h.adminUseCase.GetAdminNotifications(r.Context(), q)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	if notifications == nil {
		notifications = []entity.AdminNotification{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// verifyAdmin writes the error response itself and reports whether the
// caller may proceed.
func (h *AdminHandler) verifyAdmin(w http.ResponseWriter, r *http.Request, userID string) bool {
	err := h.adminUseCase.VerifyAdmin(r.Context(), userID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, outbound.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, usecase.ErrNotAdmin):
		response.Forbidden(w, "Forbidden: Admin access required")
	default:
		response.InternalServerError(w, "Internal server error")
	}
	return false
}

// parseLimit treats anything non-numeric or non-positive as "no limit"
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}
