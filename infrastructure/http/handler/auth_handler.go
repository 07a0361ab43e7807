package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pookie/pookie/application/port/inbound"
	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/application/usecase"
	"github.com/pookie/pookie/infrastructure/http/middleware"
	"github.com/pookie/pookie/infrastructure/http/response"
	"github.com/pookie/pookie/infrastructure/http/validator"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
	auth        *middleware.AuthMiddleware
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		auth:        auth,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/auth/signup", h.Signup).Methods("POST")
	router.HandleFunc("/api/v1/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/v1/auth/me", h.auth.RequireAuth(h.Me)).Methods("GET")
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Email) || !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Email and password are required")
		return
	}
	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "Invalid email format")
		return
	}

	res, err := h.authUseCase.Signup(r.Context(), inbound.SignupRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
		IPAddress: middleware.GetClientIP(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrUserAlreadyExists):
			response.BadRequest(w, "User already exists")
		case errors.Is(err, usecase.ErrMissingCredentials):
			response.BadRequest(w, "Email and password are required")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.WriteJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Email) || !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Email and password are required")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), inbound.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
		IPAddress: middleware.GetClientIP(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid credentials")
		case errors.Is(err, usecase.ErrTooManyAttempts):
			w.Header().Set("Retry-After", "900")
			response.TooManyRequests(w, "Too many login attempts. Please try again later.")
		case errors.Is(err, usecase.ErrMissingCredentials):
			response.BadRequest(w, "Email and password are required")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.authUseCase.Me(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, profile)
}
