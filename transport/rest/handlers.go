package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spacecowboywalk/tictactoe/internal/apperror"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/internal/render"
)

type gameManager interface {
	Mount(ctx context.Context) (*entity.Session, error)
	Session(ctx context.Context, id string) (*entity.Session, error)
	PlaceMark(ctx context.Context, id string, cell int) (*entity.Session, entity.Placement, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	Unmount(ctx context.Context, id string) error
}

type placeMarkRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type SessionHandler struct {
	logger *slog.Logger
	games  gameManager
}

func NewSessionHandler(logger *slog.Logger, games gameManager) *SessionHandler {
	return &SessionHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Mount handles POST /sessions.
func (that *SessionHandler) Mount(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.Mount(r.Context())
	if err != nil {
		that.writeError(w, "Mount", err)
		return
	}

	writeJSON(w, http.StatusCreated, render.NewView(session.Snapshot()))
}

// Get handles GET /sessions/{id}.
func (that *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "Get", err)
		return
	}

	writeJSON(w, http.StatusOK, render.NewView(session.Snapshot()))
}

// PlaceMark handles POST /sessions/{id}/marks.
func (that *SessionHandler) PlaceMark(w http.ResponseWriter, r *http.Request) {
	var req placeMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	session, placement, err := that.games.PlaceMark(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, "PlaceMark", err)
		return
	}

	writeJSON(w, http.StatusOK, render.NewView(session.Snapshot()).WithPlacement(placement))
}

// Reset handles POST /sessions/{id}/reset.
func (that *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "Reset", err)
		return
	}

	writeJSON(w, http.StatusOK, render.NewView(session.Snapshot()))
}

// Unmount handles DELETE /sessions/{id}.
func (that *SessionHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := that.games.Unmount(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "Unmount", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *SessionHandler) writeError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidCell):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
