package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/openperf-gateway/internal/delivery/http/response"
	"github.com/user/openperf-gateway/internal/entity"
	"github.com/user/openperf-gateway/internal/usecase"
)

const maxRequestBody = 1 << 20 // 1 MiB

const viewDisplay = "display"

type Handler struct {
	gateway usecase.Gateway
}

func NewHandler(gateway usecase.Gateway) *Handler {
	return &Handler{
		gateway: gateway,
	}
}

// RegisterRoutes attaches the gateway routes to r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.HandleHealthCheck)
	r.Post("/pages", h.HandleSubmitPage)
	r.Post("/pages/{id}/render", h.HandleRenderPage)
	r.Get("/pages/{id}/a11y", h.HandleAccessibility)
	r.Get("/metrics", h.HandleMetrics)
}

func (h *Handler) HandleSubmitPage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var draft entity.PageDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, fmt.Errorf("%w: body is not a valid JSON object", errBadRequest))
		return
	}

	pageID, err := h.gateway.SubmitPage(backendContext(r), &draft)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response.SubmitPageResponse{PageID: pageID})
}

func (h *Handler) HandleRenderPage(w http.ResponseWriter, r *http.Request) {
	if err := h.gateway.RenderPage(backendContext(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.StatusResponse{Status: "ok"})
}

func (h *Handler) HandleAccessibility(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view != "" && view != viewDisplay {
		h.writeError(w, fmt.Errorf("%w: unknown view %q", errBadRequest, view))
		return
	}

	issues, err := h.gateway.Accessibility(backendContext(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if view == viewDisplay {
		h.writeJSON(w, http.StatusOK, response.DisplayIssuesResponse{Issues: response.NewDisplayIssues(issues)})
		return
	}
	h.writeJSON(w, http.StatusOK, response.IssuesResponse{Issues: issues})
}

func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	samples, err := h.gateway.Metrics(backendContext(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.SamplesResponse{Samples: samples})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.StatusResponse{Status: "ok"})
}

// backendContext keeps the request's values but not its cancellation: a
// client that disconnects does not abort the engine call.
func backendContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	gwErr := mapError(err)
	h.writeJSON(w, gwErr.Status, response.ErrorResponse{Error: gwErr.Message})
}
