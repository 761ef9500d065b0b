package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seva-intake/api/internal/services"
)

type stubTransliterationService struct {
	convertFunc func(ctx context.Context, cmd services.ConvertCommand) (services.ConvertResult, error)
	deriveFunc  func(ctx context.Context, cmd services.DeriveNamesCommand) (services.DevanagariNames, error)
}

func (s *stubTransliterationService) Convert(ctx context.Context, cmd services.ConvertCommand) (services.ConvertResult, error) {
	if s.convertFunc != nil {
		return s.convertFunc(ctx, cmd)
	}
	return services.ConvertResult{}, nil
}

func (s *stubTransliterationService) DeriveNames(ctx context.Context, cmd services.DeriveNamesCommand) (services.DevanagariNames, error) {
	if s.deriveFunc != nil {
		return s.deriveFunc(ctx, cmd)
	}
	return services.DevanagariNames{}, nil
}

func TestTransliterationHandlersConvert_Success(t *testing.T) {
	var received services.ConvertCommand
	svc := &stubTransliterationService{
		convertFunc: func(ctx context.Context, cmd services.ConvertCommand) (services.ConvertResult, error) {
			received = cmd
			return services.ConvertResult{Input: "Suresh", Devanagari: "सुरेश", Source: "seva-local"}, nil
		},
	}

	handler := NewTransliterationHandlers(svc)
	req := httptest.NewRequest(http.MethodPost, "/transliterations:convert", bytes.NewBufferString(`{"input":"Suresh"}`))
	resp := httptest.NewRecorder()

	handler.convert(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if received.Input != "Suresh" {
		t.Fatalf("expected input Suresh, got %s", received.Input)
	}

	var payload convertResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if payload.Devanagari != "सुरेश" {
		t.Fatalf("expected devanagari output, got %s", payload.Devanagari)
	}
	if payload.Source != "seva-local" {
		t.Fatalf("expected source seva-local, got %s", payload.Source)
	}
}

func TestTransliterationHandlersConvert_InvalidInput(t *testing.T) {
	svc := &stubTransliterationService{
		convertFunc: func(ctx context.Context, cmd services.ConvertCommand) (services.ConvertResult, error) {
			return services.ConvertResult{}, services.ErrTransliterationInvalidInput
		},
	}

	handler := NewTransliterationHandlers(svc)
	req := httptest.NewRequest(http.MethodPost, "/transliterations:convert", bytes.NewBufferString(`{"input":""}`))
	resp := httptest.NewRecorder()

	handler.convert(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestTransliterationHandlersConvert_BadBody(t *testing.T) {
	handler := NewTransliterationHandlers(&stubTransliterationService{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "empty body", body: "", want: http.StatusBadRequest},
		{name: "malformed JSON", body: "{", want: http.StatusBadRequest},
		{name: "oversized body", body: `{"input":"` + strings.Repeat("a", maxTransliterationRequestBody) + `"}`, want: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/transliterations:convert", bytes.NewBufferString(tc.body))
			resp := httptest.NewRecorder()

			handler.convert(resp, req)

			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestTransliterationHandlersDeriveNames_Success(t *testing.T) {
	var received services.DeriveNamesCommand
	svc := &stubTransliterationService{
		deriveFunc: func(ctx context.Context, cmd services.DeriveNamesCommand) (services.DevanagariNames, error) {
			received = cmd
			return services.DevanagariNames{First: "सुरेश", Surname: "शर्मा"}, nil
		},
	}

	handler := NewTransliterationHandlers(svc)
	body := bytes.NewBufferString(`{"latin":{"first":"Suresh","surname":"Sharma"},"existing":{"surname":"शर्मा"}}`)
	req := httptest.NewRequest(http.MethodPost, "/transliterations/names:derive", body)
	resp := httptest.NewRecorder()

	handler.deriveNames(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if received.Latin.First != "Suresh" || received.Latin.Surname != "Sharma" {
		t.Fatalf("unexpected latin triple: %+v", received.Latin)
	}
	if received.Existing.Surname != "शर्मा" {
		t.Fatalf("expected existing surname forwarded, got %q", received.Existing.Surname)
	}

	var payload deriveNamesResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if payload.Devanagari.First != "सुरेश" {
		t.Fatalf("expected derived first name, got %s", payload.Devanagari.First)
	}
}

func TestTransliterationHandlersNilService(t *testing.T) {
	handler := NewTransliterationHandlers(nil)
	req := httptest.NewRequest(http.MethodPost, "/transliterations:convert", bytes.NewBufferString(`{"input":"Suresh"}`))
	resp := httptest.NewRecorder()

	handler.convert(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
