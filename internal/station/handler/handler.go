package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tallyboard/internal/station"
	dErrors "tallyboard/pkg/domain-errors"
	"tallyboard/pkg/platform/httputil"
	"tallyboard/pkg/platform/sentinel"
)

// Handler serves the station roster. The roster is read-only over HTTP;
// creation happens once at bootstrap.
type Handler struct {
	store  station.Store
	logger *slog.Logger
}

func New(store station.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Register mounts station endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stations", h.HandleList)
	r.Get("/stations/{id}", h.HandleGet)
}

// HandleList handles GET /stations.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	stations, err := h.store.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "station list failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "station list failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stations)
}

// HandleGet handles GET /stations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "station id must be a positive integer"))
		return
	}

	st, err := h.findStation(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) findStation(ctx context.Context, id int64) (*station.Station, error) {
	st, err := h.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown station %d", id))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "station lookup failed")
	}
	return st, nil
}
