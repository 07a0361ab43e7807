package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/application/usecase"
	"github.com/pookie/pookie/infrastructure/http/middleware"
	"github.com/pookie/pookie/infrastructure/http/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
	auth        *middleware.AuthMiddleware
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, auth *middleware.AuthMiddleware) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		auth:        auth,
	}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/chat", h.auth.RequireAuth(h.Chat)).Methods("POST")
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	reply, err := h.chatUseCase.Chat(r.Context(), claims.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyMessage):
			response.BadRequest(w, "Message is required")
		case errors.Is(err, outbound.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
