package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/UserRegistry/internal/domain"
	"github.com/GoArmGo/UserRegistry/internal/usecase"
)

// maxBodyBytes ограничивает тело запроса регистрации.
const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")

// UserHandler обрабатывает HTTP-запросы регистрации и списка пользователей.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: uc,
		logger:      logger,
	}
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

type notFoundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// respondWithJSON отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, errs []domain.FieldError, logger *slog.Logger) {
	respondWithJSON(w, code, errorResponse{Success: false, Message: message, Errors: errs}, logger)
}

func respondServerError(w http.ResponseWriter, logger *slog.Logger) {
	respondWithError(w, http.StatusInternalServerError, "Internal server error",
		[]domain.FieldError{{Message: "An unexpected error occurred"}}, logger)
}

func conflictSummary(field string) string {
	switch field {
	case domain.FieldEmail:
		return "User with this email already exists"
	case domain.FieldPhoneNo:
		return "User with this phone number already exists"
	default:
		return "User already exists"
	}
}

// Register обрабатывает POST /api/auth/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(&body)
	if err == nil && dec.Decode(&struct{}{}) != io.EOF {
		err = errTrailingData
	}
	if err != nil {
		h.logger.Warn("invalid request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Validation failed",
			[]domain.FieldError{{Field: "body", Message: "Request body must be valid JSON"}}, h.logger)
		return
	}
	payload, ok := body.(map[string]any)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Validation failed",
			[]domain.FieldError{{Field: "body", Message: "Request body must be a JSON object"}}, h.logger)
		return
	}

	user, err := h.userUseCase.Register(r.Context(), payload)
	if err != nil {
		var vErr *domain.ValidationError
		var conflict *domain.ConflictError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, "Validation failed", vErr.Violations, h.logger)
		case errors.As(err, &conflict):
			respondWithError(w, http.StatusBadRequest, conflictSummary(conflict.Field),
				[]domain.FieldError{{Field: conflict.Field, Message: domain.ConflictMessage(conflict.Field)}}, h.logger)
		default:
			h.logger.Error("failed to register user", "error", err)
			respondServerError(w, h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, successResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	}, h.logger)
}

// ListUsers обрабатывает GET /api/auth/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		respondServerError(w, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Users retrieved successfully",
		Data:    users,
	}, h.logger)
}

// NotFound отвечает на запросы к несуществующим маршрутам и неподдерживаемым методам.
func (h *UserHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusNotFound, notFoundResponse{
		Success: false,
		Message: "Route not found",
		Path:    r.URL.Path,
	}, h.logger)
}

// Health проверяет живость процесса.
func (h *UserHandler) Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "message": "OK"}, h.logger)
}
