package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seva-intake/api/internal/platform/httpx"
	"github.com/seva-intake/api/internal/services"
)

const maxTransliterationRequestBody = 16 * 1024

// TransliterationHandlers exposes endpoints for Devanagari conversion.
type TransliterationHandlers struct {
	svc services.TransliterationService
}

// NewTransliterationHandlers constructs a transliteration handler set.
func NewTransliterationHandlers(svc services.TransliterationService) *TransliterationHandlers {
	return &TransliterationHandlers{svc: svc}
}

// Routes registers the transliteration endpoints beneath /transliterations.
func (h *TransliterationHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/transliterations:convert", h.convert)
	r.Post("/transliterations/names:derive", h.deriveNames)
}

func (h *TransliterationHandlers) convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "transliteration service not available", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxTransliterationRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req convertRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	result, err := h.svc.Convert(ctx, services.ConvertCommand{Input: req.Input})
	if err != nil {
		writeTransliterationError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, convertResponse{
		Input:      result.Input,
		Devanagari: result.Devanagari,
		Source:     result.Source,
	})
}

func (h *TransliterationHandlers) deriveNames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "transliteration service not available", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxTransliterationRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req deriveNamesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	names, err := h.svc.DeriveNames(ctx, services.DeriveNamesCommand{
		Latin:    req.Latin.toNameTriple(),
		Existing: req.Existing.toDevanagariNames(),
	})
	if err != nil {
		writeTransliterationError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, deriveNamesResponse{
		Devanagari: buildNamePayload(names),
	})
}

type convertRequest struct {
	Input string `json:"input"`
}

type convertResponse struct {
	Input      string `json:"input"`
	Devanagari string `json:"devanagari"`
	Source     string `json:"source"`
}

type namePayload struct {
	First   string `json:"first,omitempty"`
	Middle  string `json:"middle,omitempty"`
	Surname string `json:"surname,omitempty"`
}

func (p namePayload) toNameTriple() services.NameTriple {
	return services.NameTriple{First: p.First, Middle: p.Middle, Surname: p.Surname}
}

func (p namePayload) toDevanagariNames() services.DevanagariNames {
	return services.DevanagariNames{First: p.First, Middle: p.Middle, Surname: p.Surname}
}

func buildNamePayload(names services.DevanagariNames) namePayload {
	return namePayload{First: names.First, Middle: names.Middle, Surname: names.Surname}
}

type deriveNamesRequest struct {
	Latin    namePayload `json:"latin"`
	Existing namePayload `json:"existing"`
}

type deriveNamesResponse struct {
	Devanagari namePayload `json:"devanagari"`
}

func writeBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	case errors.Is(err, errEmptyBody):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body is required", http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}

func writeTransliterationError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrTransliterationInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrTransliterationUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "transliteration temporarily unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("transliteration_error", "failed to transliterate input", http.StatusInternalServerError))
	}
}
