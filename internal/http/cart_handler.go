package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mercata/cart-service/internal/domain"
)

// CartService is what the handlers need from the service layer.
type CartService interface {
	GetUserCart(ctx context.Context, userID string) (*domain.Cart, error)
	SaveUserCart(ctx context.Context, userID string, items []domain.CartItem) (*domain.Cart, error)
	ClearUserCart(ctx context.Context, userID string) error
	GetSessionCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	SaveSessionCart(ctx context.Context, sessionID string, items []domain.CartItem) (*domain.Cart, error)
	ClearSessionCart(ctx context.Context, sessionID string) error
	Merge(ctx context.Context, sessionID, userID string) (bool, error)
}

type CartHandler struct {
	service CartService
	timeout time.Duration
}

func NewCartHandler(service CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		service: service,
		timeout: timeout,
	}
}

type SaveCartRequestDTO struct {
	Items []domain.CartItem `json:"items"`
}

type MigrateRequestDTO struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type CartResponse struct {
	Cart *domain.Cart `json:"cart"`
}

type SaveCartResponse struct {
	Success bool         `json:"success"`
	Cart    *domain.Cart `json:"cart"`
}

type ClearCartResponse struct {
	Success bool `json:"success"`
}

type MigrateResponse struct {
	Success  bool `json:"success"`
	Migrated bool `json:"migrated"`
}

// Routes mounts the cart contract on a fresh router.
func (h *CartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/migrate", h.Migrate)
	r.Route("/session/{sessionId}", func(r chi.Router) {
		r.Get("/", h.GetSessionCart)
		r.Post("/", h.SaveSessionCart)
		r.Delete("/", h.ClearSessionCart)
	})
	r.Route("/{userId}", func(r chi.Router) {
		r.Get("/", h.GetUserCart)
		r.Post("/", h.SaveUserCart)
		r.Delete("/", h.ClearUserCart)
	})
	return r
}

func (h *CartHandler) GetUserCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.service.GetUserCart(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartResponse{Cart: cart})
}

func (h *CartHandler) SaveUserCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SaveCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.service.SaveUserCart(ctx, chi.URLParam(r, "userId"), req.Items)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SaveCartResponse{Success: true, Cart: cart})
}

func (h *CartHandler) ClearUserCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.service.ClearUserCart(ctx, chi.URLParam(r, "userId")); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ClearCartResponse{Success: true})
}

func (h *CartHandler) GetSessionCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.service.GetSessionCart(ctx, chi.URLParam(r, "sessionId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartResponse{Cart: cart})
}

func (h *CartHandler) SaveSessionCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SaveCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.service.SaveSessionCart(ctx, chi.URLParam(r, "sessionId"), req.Items)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SaveCartResponse{Success: true, Cart: cart})
}

func (h *CartHandler) ClearSessionCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.service.ClearSessionCart(ctx, chi.URLParam(r, "sessionId")); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ClearCartResponse{Success: true})
}

func (h *CartHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req MigrateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_field", "sessionId is required")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "missing_field", "userId is required")
		return
	}

	migrated, err := h.service.Merge(ctx, req.SessionID, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, MigrateResponse{Success: true, Migrated: migrated})
}

func handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrValidation) {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	log.Printf("internal error: %v \n", err)
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
