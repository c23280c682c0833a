package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tallyboard/internal/device"
	"tallyboard/internal/turnout"
	dErrors "tallyboard/pkg/domain-errors"
	"tallyboard/pkg/platform/httputil"
	"tallyboard/pkg/requestcontext"
)

// Service defines the turnout operations the HTTP layer needs.
type Service interface {
	GetCurrentTurnout(ctx context.Context, stationID int64) (turnout.Current, error)
	ListCurrentTurnouts(ctx context.Context) ([]turnout.Current, error)
	TotalTurnout(ctx context.Context) (int64, error)
	UpdateTurnout(ctx context.Context, stationID int64, voterCount int, updatedBy string) (*turnout.Record, error)
}

// Handler wires turnout endpoints to the turnout service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a turnout handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts turnout endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stations/{id}/turnout", h.HandleGetTurnout)
	r.Put("/stations/{id}/turnout", h.HandleUpdateTurnout)
	r.Get("/turnouts", h.HandleListTurnouts)
	r.Get("/turnouts/total", h.HandleTotal)
}

// HandleGetTurnout handles GET /stations/{id}/turnout.
func (h *Handler) HandleGetTurnout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stationID, ok := stationIDParam(w, r)
	if !ok {
		return
	}

	current, err := h.service.GetCurrentTurnout(ctx, stationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, current)
}

// HandleListTurnouts handles GET /turnouts.
func (h *Handler) HandleListTurnouts(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.ListCurrentTurnouts(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// HandleTotal handles GET /turnouts/total.
func (h *Handler) HandleTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalTurnout(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TotalResponse{TotalVoters: total})
}

// HandleUpdateTurnout handles PUT /stations/{id}/turnout.
func (h *Handler) HandleUpdateTurnout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	stationID, ok := stationIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeJSON[UpdateTurnoutRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.VoterCount == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "voter_count is required"))
		return
	}

	rec, err := h.service.UpdateTurnout(ctx, stationID, *req.VoterCount, req.UpdatedBy)
	if err != nil {
		h.logger.ErrorContext(ctx, "turnout update failed",
			"request_id", requestID,
			"station_id", stationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "turnout update accepted",
		"request_id", requestID,
		"station_id", stationID,
		"voter_count", rec.VoterCount,
		"client", device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		"client_ip", requestcontext.ClientIP(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func stationIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "station id must be a positive integer"))
		return 0, false
	}
	return id, true
}
