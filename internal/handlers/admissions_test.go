package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seva-intake/api/internal/services"
)

type stubAdmissionService struct {
	registerFunc  func(ctx context.Context, cmd services.RegisterAdmissionCommand) (services.Admission, error)
	updateFunc    func(ctx context.Context, cmd services.UpdateAdmissionCommand) (services.Admission, error)
	getFunc       func(ctx context.Context, admissionID string) (services.Admission, error)
	listFunc      func(ctx context.Context, query services.AdmissionListQuery) ([]services.Admission, error)
	dischargeFunc func(ctx context.Context, cmd services.DischargeAdmissionCommand) (services.Admission, error)
	renderFunc    func(ctx context.Context, admissionID string) (services.FormDocument, error)
	removeFunc    func(ctx context.Context, admissionID string) error
}

func (s *stubAdmissionService) Register(ctx context.Context, cmd services.RegisterAdmissionCommand) (services.Admission, error) {
	if s.registerFunc != nil {
		return s.registerFunc(ctx, cmd)
	}
	return services.Admission{}, nil
}

func (s *stubAdmissionService) Update(ctx context.Context, cmd services.UpdateAdmissionCommand) (services.Admission, error) {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, cmd)
	}
	return services.Admission{}, nil
}

func (s *stubAdmissionService) Get(ctx context.Context, admissionID string) (services.Admission, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, admissionID)
	}
	return services.Admission{}, nil
}

func (s *stubAdmissionService) List(ctx context.Context, query services.AdmissionListQuery) ([]services.Admission, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, query)
	}
	return nil, nil
}

func (s *stubAdmissionService) Discharge(ctx context.Context, cmd services.DischargeAdmissionCommand) (services.Admission, error) {
	if s.dischargeFunc != nil {
		return s.dischargeFunc(ctx, cmd)
	}
	return services.Admission{}, nil
}

func (s *stubAdmissionService) RenderForm(ctx context.Context, admissionID string) (services.FormDocument, error) {
	if s.renderFunc != nil {
		return s.renderFunc(ctx, admissionID)
	}
	return services.FormDocument{}, nil
}

func (s *stubAdmissionService) Remove(ctx context.Context, admissionID string) error {
	if s.removeFunc != nil {
		return s.removeFunc(ctx, admissionID)
	}
	return nil
}

func sampleAdmission() services.Admission {
	admitted := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	return services.Admission{
		ID:       "adm_01",
		RowIndex: 1,
		Patient: services.PatientName{
			Latin:      services.NameTriple{First: "Suresh", Surname: "Sharma"},
			Devanagari: services.DevanagariNames{First: "सुरेश", Surname: "शर्मा"},
		},
		Gender:     "male",
		AgeYears:   42,
		Ward:       "general",
		Status:     "admitted",
		AdmittedAt: admitted,
		CreatedAt:  admitted,
		UpdatedAt:  admitted,
	}
}

func newAdmissionTestRouter(svc services.AdmissionService) chi.Router {
	r := chi.NewRouter()
	NewAdmissionHandlers(svc).Routes(r)
	return r
}

func TestAdmissionHandlersRegister_Success(t *testing.T) {
	var received services.RegisterAdmissionCommand
	svc := &stubAdmissionService{
		registerFunc: func(ctx context.Context, cmd services.RegisterAdmissionCommand) (services.Admission, error) {
			received = cmd
			return sampleAdmission(), nil
		},
	}

	body := bytes.NewBufferString(`{
		"patient": {
			"latin": {"first": "Suresh", "surname": "Sharma"},
			"devanagari": {"surname": "शर्मा"}
		},
		"gender": "male",
		"age_years": 42,
		"ward": "general"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if received.Latin.First != "Suresh" {
		t.Fatalf("expected latin first Suresh, got %s", received.Latin.First)
	}
	if received.Devanagari.Surname != "शर्मा" {
		t.Fatalf("expected operator surname forwarded, got %q", received.Devanagari.Surname)
	}
	if received.AgeYears != 42 {
		t.Fatalf("expected age 42, got %d", received.AgeYears)
	}

	var payload admissionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if payload.Admission.ID != "adm_01" {
		t.Fatalf("expected admission id adm_01, got %s", payload.Admission.ID)
	}
	if payload.Admission.Patient.Devanagari.First != "सुरेश" {
		t.Fatalf("expected devanagari first name in payload, got %s", payload.Admission.Patient.Devanagari.First)
	}
}

func TestAdmissionHandlersRegister_InvalidTimestamp(t *testing.T) {
	svc := &stubAdmissionService{}
	body := bytes.NewBufferString(`{"patient":{"latin":{"first":"Suresh","surname":"Sharma"}},"admitted_at":"yesterday"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdmissionHandlersRegister_ServiceError(t *testing.T) {
	svc := &stubAdmissionService{
		registerFunc: func(ctx context.Context, cmd services.RegisterAdmissionCommand) (services.Admission, error) {
			return services.Admission{}, services.ErrAdmissionInvalidInput
		},
	}
	body := bytes.NewBufferString(`{"patient":{"latin":{"first":"","surname":""}}}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdmissionHandlersList_ForwardsQuery(t *testing.T) {
	var received services.AdmissionListQuery
	svc := &stubAdmissionService{
		listFunc: func(ctx context.Context, query services.AdmissionListQuery) ([]services.Admission, error) {
			received = query
			return []services.Admission{sampleAdmission()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/?status=admitted&ward=general&limit=25", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if received.Status != "admitted" || received.Ward != "general" || received.Limit != 25 {
		t.Fatalf("unexpected query: %+v", received)
	}

	var payload admissionListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON response: %v", err)
	}
	if len(payload.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(payload.Admissions))
	}
}

func TestAdmissionHandlersList_BadLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=lots", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(&stubAdmissionService{}).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdmissionHandlersGet_NotFound(t *testing.T) {
	svc := &stubAdmissionService{
		getFunc: func(ctx context.Context, admissionID string) (services.Admission, error) {
			return services.Admission{}, services.ErrAdmissionNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/adm_missing", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAdmissionHandlersUpdate_ForwardsPointers(t *testing.T) {
	var received services.UpdateAdmissionCommand
	svc := &stubAdmissionService{
		updateFunc: func(ctx context.Context, cmd services.UpdateAdmissionCommand) (services.Admission, error) {
			received = cmd
			return sampleAdmission(), nil
		},
	}

	body := bytes.NewBufferString(`{"ward":"icu","patient":{"latin":{"first":"Suresh","surname":"Patil"}}}`)
	req := httptest.NewRequest(http.MethodPatch, "/adm_01", body)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if received.AdmissionID != "adm_01" {
		t.Fatalf("expected admission id adm_01, got %s", received.AdmissionID)
	}
	if received.Ward == nil || *received.Ward != "icu" {
		t.Fatalf("expected ward pointer icu, got %v", received.Ward)
	}
	if received.Latin == nil || received.Latin.Surname != "Patil" {
		t.Fatalf("expected latin surname Patil, got %v", received.Latin)
	}
	if received.Gender != nil {
		t.Fatalf("expected absent gender to stay nil, got %v", received.Gender)
	}
}

func TestAdmissionHandlersDischarge(t *testing.T) {
	var received services.DischargeAdmissionCommand
	svc := &stubAdmissionService{
		dischargeFunc: func(ctx context.Context, cmd services.DischargeAdmissionCommand) (services.Admission, error) {
			received = cmd
			return sampleAdmission(), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/adm_01:discharge", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if received.AdmissionID != "adm_01" {
		t.Fatalf("expected admission id adm_01, got %s", received.AdmissionID)
	}
	if !received.DischargedAt.IsZero() {
		t.Fatalf("expected zero discharge time for empty body, got %v", received.DischargedAt)
	}
}

func TestAdmissionHandlersDischarge_AlreadyDischarged(t *testing.T) {
	svc := &stubAdmissionService{
		dischargeFunc: func(ctx context.Context, cmd services.DischargeAdmissionCommand) (services.Admission, error) {
			return services.Admission{}, services.ErrAdmissionAlreadyDischarged
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/adm_01:discharge", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestAdmissionHandlersRenderForm(t *testing.T) {
	svc := &stubAdmissionService{
		renderFunc: func(ctx context.Context, admissionID string) (services.FormDocument, error) {
			return services.FormDocument{
				AdmissionID: admissionID,
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.7"),
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/adm_01/form", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", got)
	}
	if resp.Body.String() != "%PDF-1.7" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestAdmissionHandlersRenderForm_Unavailable(t *testing.T) {
	svc := &stubAdmissionService{
		renderFunc: func(ctx context.Context, admissionID string) (services.FormDocument, error) {
			return services.FormDocument{}, services.ErrFormRendererUnavailable
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/adm_01/form", nil)
	resp := httptest.NewRecorder()

	newAdmissionTestRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
