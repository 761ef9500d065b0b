package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seva-intake/api/internal/platform/httpx"
	"github.com/seva-intake/api/internal/services"
)

const maxAdmissionRequestBody = 32 * 1024

// AdmissionHandlers exposes endpoints for the bilingual admission register.
type AdmissionHandlers struct {
	svc services.AdmissionService
}

// NewAdmissionHandlers constructs an admission handler set.
func NewAdmissionHandlers(svc services.AdmissionService) *AdmissionHandlers {
	return &AdmissionHandlers{svc: svc}
}

// Routes registers the admission endpoints beneath /admissions.
func (h *AdmissionHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.register)
	r.Get("/", h.list)
	r.Get("/{admissionId}", h.get)
	r.Patch("/{admissionId}", h.update)
	r.Post("/{admissionId}:discharge", h.discharge)
	r.Get("/{admissionId}/form", h.renderForm)
}

func (h *AdmissionHandlers) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	body, err := readLimitedBody(r, maxAdmissionRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req registerAdmissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	cmd := services.RegisterAdmissionCommand{
		Latin:      req.Patient.Latin.toNameTriple(),
		Devanagari: req.Patient.Devanagari.toDevanagariNames(),
		Gender:     req.Gender,
		AgeYears:   req.AgeYears,
		Address:    req.Address,
		Ward:       req.Ward,
		Bed:        req.Bed,
		Diagnosis:  req.Diagnosis,
		Doctor:     req.Doctor,
	}
	if req.AdmittedAt != "" {
		admittedAt, err := time.Parse(time.RFC3339, req.AdmittedAt)
		if err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "admitted_at must be RFC 3339", http.StatusBadRequest))
			return
		}
		cmd.AdmittedAt = admittedAt
	}

	admission, err := h.svc.Register(ctx, cmd)
	if err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, admissionResponse{Admission: buildAdmissionPayload(admission)})
}

func (h *AdmissionHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	query := services.AdmissionListQuery{
		Status: services.AdmissionStatus(strings.TrimSpace(r.URL.Query().Get("status"))),
		Ward:   r.URL.Query().Get("ward"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "limit must be a non-negative integer", http.StatusBadRequest))
			return
		}
		query.Limit = limit
	}

	admissions, err := h.svc.List(ctx, query)
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

func (h *AdmissionHandlers) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	admission, err := h.svc.Get(ctx, chi.URLParam(r, "admissionId"))
	if err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, admissionResponse{Admission: buildAdmissionPayload(admission)})
}

func (h *AdmissionHandlers) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	body, err := readLimitedBody(r, maxAdmissionRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req updateAdmissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	cmd := services.UpdateAdmissionCommand{
		AdmissionID: chi.URLParam(r, "admissionId"),
		Gender:      req.Gender,
		AgeYears:    req.AgeYears,
		Address:     req.Address,
		Ward:        req.Ward,
		Bed:         req.Bed,
		Diagnosis:   req.Diagnosis,
		Doctor:      req.Doctor,
	}
	if req.Patient != nil {
		if req.Patient.Latin != nil {
			latin := req.Patient.Latin.toNameTriple()
			cmd.Latin = &latin
		}
		if req.Patient.Devanagari != nil {
			devanagari := req.Patient.Devanagari.toDevanagariNames()
			cmd.Devanagari = &devanagari
		}
	}

	admission, err := h.svc.Update(ctx, cmd)
	if err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, admissionResponse{Admission: buildAdmissionPayload(admission)})
}

func (h *AdmissionHandlers) discharge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	cmd := services.DischargeAdmissionCommand{AdmissionID: chi.URLParam(r, "admissionId")}

	body, err := readLimitedBody(r, maxAdmissionRequestBody)
	if err != nil && !errors.Is(err, errEmptyBody) {
		writeBodyError(ctx, w, err)
		return
	}
	if len(body) > 0 {
		var req dischargeAdmissionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
			return
		}
		if req.DischargedAt != "" {
			dischargedAt, err := time.Parse(time.RFC3339, req.DischargedAt)
			if err != nil {
				httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "discharged_at must be RFC 3339", http.StatusBadRequest))
				return
			}
			cmd.DischargedAt = dischargedAt
		}
	}

	admission, err := h.svc.Discharge(ctx, cmd)
	if err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, admissionResponse{Admission: buildAdmissionPayload(admission)})
}

func (h *AdmissionHandlers) renderForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		writeAdmissionServiceMissing(ctx, w)
		return
	}

	document, err := h.svc.RenderForm(ctx, chi.URLParam(r, "admissionId"))
	if err != nil {
		writeAdmissionError(ctx, w, err)
		return
	}

	contentType := document.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document.Data)
}

type patientPayload struct {
	Latin      namePayload `json:"latin"`
	Devanagari namePayload `json:"devanagari"`
}

type registerAdmissionRequest struct {
	Patient    patientPayload `json:"patient"`
	Gender     string         `json:"gender"`
	AgeYears   int            `json:"age_years"`
	Address    string         `json:"address"`
	Ward       string         `json:"ward"`
	Bed        string         `json:"bed"`
	Diagnosis  string         `json:"diagnosis"`
	Doctor     string         `json:"doctor"`
	AdmittedAt string         `json:"admitted_at"`
}

type updatePatientPayload struct {
	Latin      *namePayload `json:"latin"`
	Devanagari *namePayload `json:"devanagari"`
}

type updateAdmissionRequest struct {
	Patient   *updatePatientPayload `json:"patient"`
	Gender    *string               `json:"gender"`
	AgeYears  *int                  `json:"age_years"`
	Address   *string               `json:"address"`
	Ward      *string               `json:"ward"`
	Bed       *string               `json:"bed"`
	Diagnosis *string               `json:"diagnosis"`
	Doctor    *string               `json:"doctor"`
}

type dischargeAdmissionRequest struct {
	DischargedAt string `json:"discharged_at"`
}

type admissionResponse struct {
	Admission admissionPayload `json:"admission"`
}

type admissionListResponse struct {
	Admissions []admissionPayload `json:"admissions"`
}

type admissionPayload struct {
	ID           string         `json:"id"`
	RowIndex     int            `json:"row_index"`
	Patient      patientPayload `json:"patient"`
	Gender       string         `json:"gender,omitempty"`
	AgeYears     int            `json:"age_years"`
	Address      string         `json:"address,omitempty"`
	Ward         string         `json:"ward,omitempty"`
	Bed          string         `json:"bed,omitempty"`
	Diagnosis    string         `json:"diagnosis,omitempty"`
	Doctor       string         `json:"doctor,omitempty"`
	Status       string         `json:"status"`
	AdmittedAt   string         `json:"admitted_at"`
	DischargedAt string         `json:"discharged_at,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

func buildAdmissionPayload(admission services.Admission) admissionPayload {
	return admissionPayload{
		ID:       admission.ID,
		RowIndex: admission.RowIndex,
		Patient: patientPayload{
			Latin: namePayload{
				First:   admission.Patient.Latin.First,
				Middle:  admission.Patient.Latin.Middle,
				Surname: admission.Patient.Latin.Surname,
			},
			Devanagari: buildNamePayload(admission.Patient.Devanagari),
		},
		Gender:       admission.Gender,
		AgeYears:     admission.AgeYears,
		Address:      admission.Address,
		Ward:         admission.Ward,
		Bed:          admission.Bed,
		Diagnosis:    admission.Diagnosis,
		Doctor:       admission.Doctor,
		Status:       string(admission.Status),
		AdmittedAt:   formatTime(admission.AdmittedAt),
		DischargedAt: formatTime(pointerTime(admission.DischargedAt)),
		CreatedAt:    formatTime(admission.CreatedAt),
		UpdatedAt:    formatTime(admission.UpdatedAt),
	}
}

func writeAdmissionServiceMissing(ctx context.Context, w http.ResponseWriter) {
	httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "admission service not available", http.StatusServiceUnavailable))
}

func writeAdmissionError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrAdmissionInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrAdmissionNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrAdmissionAlreadyDischarged):
		httpx.WriteError(ctx, w, httpx.NewError("conflict", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrAdmissionConflict):
		httpx.WriteError(ctx, w, httpx.NewError("conflict", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrFormRendererUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "form rendering not available", http.StatusServiceUnavailable))
	case errors.Is(err, services.ErrAdmissionUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "admission register temporarily unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("admission_error", "failed to process admission", http.StatusInternalServerError))
	}
}
