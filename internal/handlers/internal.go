package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seva-intake/api/internal/services"
)

// InternalHandlers exposes operations tooling endpoints. They sit behind the
// /internal group and its authentication middleware.
type InternalHandlers struct {
	svc services.AdmissionService
}

// NewInternalHandlers constructs the internal handler set.
func NewInternalHandlers(svc services.AdmissionService) *InternalHandlers {
	return &InternalHandlers{svc: svc}
}

// Routes registers the internal endpoints.
func (h *InternalHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/admissions:export", h.export)
	r.Delete("/admissions/{admissionId}", h.remove)
}

// export dumps the full register for backup tooling, ignoring list limits.
func (h *InternalHandlers) export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	admissions, err := h.svc.List(ctx, services.AdmissionListQuery{Limit: exportListLimit})
	if err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}

	payload := admissionListResponse{Admissions: make([]admissionPayload, 0, len(admissions))}
	for _, admission := range admissions {
		payload.Admissions = append(payload.Admissions, buildAdmissionPayload(admission))
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *InternalHandlers) remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	if err := h.svc.Remove(ctx, chi.URLParam(r, "admissionId")); err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const exportListLimit = 10000
