package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/seva-intake/api/internal/domain"
	"github.com/seva-intake/api/internal/platform/textutil"
	"github.com/seva-intake/api/internal/repositories"
)

var (
	// ErrAdmissionInvalidInput indicates the caller provided invalid data.
	ErrAdmissionInvalidInput = errors.New("admission: invalid input")
	// ErrAdmissionNotFound indicates the requested admission does not exist.
	ErrAdmissionNotFound = errors.New("admission: not found")
	// ErrAdmissionConflict indicates the requested operation conflicts with existing state.
	ErrAdmissionConflict = errors.New("admission: conflict")
	// ErrAdmissionAlreadyDischarged indicates the admission was discharged earlier.
	ErrAdmissionAlreadyDischarged = errors.New("admission: already discharged")
	// ErrAdmissionUnavailable indicates the service cannot complete the request due to missing dependencies.
	ErrAdmissionUnavailable = errors.New("admission: service unavailable")
	// ErrFormRendererUnavailable indicates no form renderer is wired in.
	ErrFormRendererUnavailable = errors.New("admission: form renderer unavailable")

	errAdmissionRepositoryRequired     = errors.New("admission: repository is required")
	errAdmissionTransliteratorRequired = errors.New("admission: transliteration service is required")
	errAdmissionClockRequired          = errors.New("admission: clock is required")
)

const (
	admissionIDPrefix    = "adm_"
	maxAdmissionAgeYears = 150
	maxAdmissionText     = 500
)

var supportedGenders = map[string]struct{}{
	"male":   {},
	"female": {},
	"other":  {},
	"":       {},
}

// AdmissionServiceDeps wires the repository, transliteration, and rendering
// dependencies for admission operations.
type AdmissionServiceDeps struct {
	Repository      repositories.AdmissionRepository
	Transliterators TransliterationService
	Renderer        FormRenderer
	Clock           func() time.Time
	IDGenerator     func() string
	Logger          func(context.Context, string, map[string]any)
}

type admissionService struct {
	repo     repositories.AdmissionRepository
	translit TransliterationService
	renderer FormRenderer
	now      func() time.Time
	newID    func() string
	logger   func(context.Context, string, map[string]any)
}

// NewAdmissionService constructs an AdmissionService with the provided dependencies.
func NewAdmissionService(deps AdmissionServiceDeps) (AdmissionService, error) {
	if deps.Repository == nil {
		return nil, errAdmissionRepositoryRequired
	}
	if deps.Transliterators == nil {
		return nil, errAdmissionTransliteratorRequired
	}

	clock := deps.Clock
	if clock == nil {
		return nil, errAdmissionClockRequired
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &admissionService{
		repo:     deps.Repository,
		translit: deps.Transliterators,
		renderer: deps.Renderer,
		now:      func() time.Time { return clock().UTC() },
		newID:    func() string { return admissionIDPrefix + strings.ToLower(idGen()) },
		logger:   logger,
	}, nil
}

// Register creates a new admission row, deriving the Devanagari name fields
// from the Latin name.
func (s *admissionService) Register(ctx context.Context, cmd RegisterAdmissionCommand) (Admission, error) {
	latin := trimNameTriple(cmd.Latin)
	if latin.First == "" || latin.Surname == "" {
		return Admission{}, ErrAdmissionInvalidInput
	}

	gender := strings.ToLower(strings.TrimSpace(cmd.Gender))
	if _, ok := supportedGenders[gender]; !ok {
		return Admission{}, ErrAdmissionInvalidInput
	}
	if cmd.AgeYears < 0 || cmd.AgeYears > maxAdmissionAgeYears {
		return Admission{}, ErrAdmissionInvalidInput
	}

	address, err := cleanFreeText(cmd.Address)
	if err != nil {
		return Admission{}, err
	}
	diagnosis, err := cleanFreeText(cmd.Diagnosis)
	if err != nil {
		return Admission{}, err
	}

	devanagari, err := s.translit.DeriveNames(ctx, DeriveNamesCommand{
		Latin:    latin,
		Existing: trimDevanagariNames(cmd.Devanagari),
	})
	if err != nil {
		return Admission{}, translateTransliterationError(err)
	}

	now := s.now()
	admittedAt := cmd.AdmittedAt.UTC()
	if cmd.AdmittedAt.IsZero() {
		admittedAt = now
	}

	admission := domain.Admission{
		ID: s.newID(),
		Patient: domain.PatientName{
			Latin:      latin,
			Devanagari: devanagari,
		},
		Gender:     gender,
		AgeYears:   cmd.AgeYears,
		Address:    address,
		Ward:       strings.TrimSpace(cmd.Ward),
		Bed:        strings.TrimSpace(cmd.Bed),
		Diagnosis:  diagnosis,
		Doctor:     strings.TrimSpace(cmd.Doctor),
		AdmittedAt: admittedAt,
		Status:     domain.AdmissionStatusAdmitted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, admission); err != nil {
		return Admission{}, s.translateRepoError(err)
	}

	s.logger(ctx, "admission.registered", map[string]any{
		"admission_id":        admission.ID,
		"ward":                admission.Ward,
		"devanagari_supplied": !trimDevanagariNames(cmd.Devanagari).IsEmpty(),
	})
	return admission, nil
}

// Update edits an existing row. A changed Latin name re-derives the Devanagari
// fields; operator-typed Devanagari values always win over derived ones.
func (s *admissionService) Update(ctx context.Context, cmd UpdateAdmissionCommand) (Admission, error) {
	admission, err := s.findByID(ctx, cmd.AdmissionID)
	if err != nil {
		return Admission{}, err
	}

	nameChanged := false
	if cmd.Latin != nil {
		latin := trimNameTriple(*cmd.Latin)
		if latin.First == "" || latin.Surname == "" {
			return Admission{}, ErrAdmissionInvalidInput
		}
		if latin != admission.Patient.Latin {
			admission.Patient.Latin = latin
			nameChanged = true
		}
	}
	if cmd.Devanagari != nil {
		admission.Patient.Devanagari = trimDevanagariNames(*cmd.Devanagari)
		nameChanged = true
	}

	if cmd.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*cmd.Gender))
		if _, ok := supportedGenders[gender]; !ok {
			return Admission{}, ErrAdmissionInvalidInput
		}
		admission.Gender = gender
	}
	if cmd.AgeYears != nil {
		if *cmd.AgeYears < 0 || *cmd.AgeYears > maxAdmissionAgeYears {
			return Admission{}, ErrAdmissionInvalidInput
		}
		admission.AgeYears = *cmd.AgeYears
	}
	if cmd.Address != nil {
		address, err := cleanFreeText(*cmd.Address)
		if err != nil {
			return Admission{}, err
		}
		admission.Address = address
	}
	if cmd.Ward != nil {
		admission.Ward = strings.TrimSpace(*cmd.Ward)
	}
	if cmd.Bed != nil {
		admission.Bed = strings.TrimSpace(*cmd.Bed)
	}
	if cmd.Diagnosis != nil {
		diagnosis, err := cleanFreeText(*cmd.Diagnosis)
		if err != nil {
			return Admission{}, err
		}
		admission.Diagnosis = diagnosis
	}
	if cmd.Doctor != nil {
		admission.Doctor = strings.TrimSpace(*cmd.Doctor)
	}

	if nameChanged {
		devanagari, err := s.translit.DeriveNames(ctx, DeriveNamesCommand{
			Latin:    admission.Patient.Latin,
			Existing: admission.Patient.Devanagari,
		})
		if err != nil {
			return Admission{}, translateTransliterationError(err)
		}
		admission.Patient.Devanagari = devanagari
	}

	admission.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, admission); err != nil {
		return Admission{}, s.translateRepoError(err)
	}
	return admission, nil
}

// Get returns a single admission row.
func (s *admissionService) Get(ctx context.Context, admissionID string) (Admission, error) {
	return s.findByID(ctx, admissionID)
}

// List returns register rows matching the query in row order.
func (s *admissionService) List(ctx context.Context, query AdmissionListQuery) ([]Admission, error) {
	switch query.Status {
	case "", domain.AdmissionStatusAdmitted, domain.AdmissionStatusDischarged:
	default:
		return nil, ErrAdmissionInvalidInput
	}

	admissions, err := s.repo.List(ctx, repositories.AdmissionListFilter{
		Status: query.Status,
		Ward:   strings.TrimSpace(query.Ward),
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	return admissions, nil
}

// Discharge closes an admission. Discharging twice is a conflict.
func (s *admissionService) Discharge(ctx context.Context, cmd DischargeAdmissionCommand) (Admission, error) {
	admission, err := s.findByID(ctx, cmd.AdmissionID)
	if err != nil {
		return Admission{}, err
	}

	if admission.Status == domain.AdmissionStatusDischarged {
		return Admission{}, ErrAdmissionAlreadyDischarged
	}

	now := s.now()
	dischargedAt := cmd.DischargedAt.UTC()
	if cmd.DischargedAt.IsZero() {
		dischargedAt = now
	}
	if dischargedAt.Before(admission.AdmittedAt) {
		return Admission{}, ErrAdmissionInvalidInput
	}

	admission.Status = domain.AdmissionStatusDischarged
	admission.DischargedAt = &dischargedAt
	admission.UpdatedAt = now

	if err := s.repo.Update(ctx, admission); err != nil {
		return Admission{}, s.translateRepoError(err)
	}

	s.logger(ctx, "admission.discharged", map[string]any{
		"admission_id": admission.ID,
	})
	return admission, nil
}

// RenderForm produces the printable bilingual form for an admission.
func (s *admissionService) RenderForm(ctx context.Context, admissionID string) (FormDocument, error) {
	if s.renderer == nil {
		return FormDocument{}, ErrFormRendererUnavailable
	}

	admission, err := s.findByID(ctx, admissionID)
	if err != nil {
		return FormDocument{}, err
	}

	document, err := s.renderer.RenderAdmissionForm(ctx, admission)
	if err != nil {
		s.logger(ctx, "admission.form_render_failed", map[string]any{
			"admission_id": admission.ID,
			"error":        err.Error(),
		})
		return FormDocument{}, ErrFormRendererUnavailable
	}
	if document.AdmissionID == "" {
		document.AdmissionID = admission.ID
	}
	if document.GeneratedAt.IsZero() {
		document.GeneratedAt = s.now()
	}
	return document, nil
}

// Remove deletes a register row outright. Reserved for internal tooling;
// regular intake flows discharge instead.
func (s *admissionService) Remove(ctx context.Context, admissionID string) error {
	id := strings.TrimSpace(admissionID)
	if id == "" {
		return ErrAdmissionInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateRepoError(err)
	}
	s.logger(ctx, "admission.removed", map[string]any{
		"admission_id": id,
	})
	return nil
}

func (s *admissionService) findByID(ctx context.Context, admissionID string) (Admission, error) {
	id := strings.TrimSpace(admissionID)
	if id == "" {
		return Admission{}, ErrAdmissionInvalidInput
	}
	admission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Admission{}, s.translateRepoError(err)
	}
	return admission, nil
}

func (s *admissionService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		if repoErr.IsNotFound() {
			return ErrAdmissionNotFound
		}
		if repoErr.IsConflict() {
			return ErrAdmissionConflict
		}
	}
	return ErrAdmissionUnavailable
}

func translateTransliterationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTransliterationInvalidInput) {
		return ErrAdmissionInvalidInput
	}
	return ErrAdmissionUnavailable
}

func cleanFreeText(value string) (string, error) {
	cleaned := textutil.StripTags(value)
	if len([]rune(cleaned)) > maxAdmissionText {
		return "", ErrAdmissionInvalidInput
	}
	return cleaned, nil
}

func trimNameTriple(name NameTriple) NameTriple {
	return NameTriple{
		First:   strings.TrimSpace(name.First),
		Middle:  strings.TrimSpace(name.Middle),
		Surname: strings.TrimSpace(name.Surname),
	}
}

func trimDevanagariNames(names DevanagariNames) DevanagariNames {
	return DevanagariNames{
		First:   strings.TrimSpace(names.First),
		Middle:  strings.TrimSpace(names.Middle),
		Surname: strings.TrimSpace(names.Surname),
	}
}
