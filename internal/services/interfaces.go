package services

import (
	"context"
	"time"

	domain "github.com/seva-intake/api/internal/domain"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	NameTriple      = domain.NameTriple
	DevanagariNames = domain.DevanagariNames
	PatientName     = domain.PatientName
	Admission       = domain.Admission
	AdmissionStatus = domain.AdmissionStatus
	FormDocument    = domain.FormDocument
)

// TransliterationService converts Latin-script text and name fields into Devanagari.
type TransliterationService interface {
	Convert(ctx context.Context, cmd ConvertCommand) (ConvertResult, error)
	DeriveNames(ctx context.Context, cmd DeriveNamesCommand) (DevanagariNames, error)
}

// ConvertCommand carries a single Latin-script value to transliterate.
type ConvertCommand struct {
	Input string
}

// ConvertResult reports the Devanagari rendering and which provider produced it.
type ConvertResult struct {
	Input      string
	Devanagari string
	Source     string
}

// DeriveNamesCommand requests Devanagari companions for a Latin name triple.
// Existing holds values the operator already typed by hand; derived text only
// fills fields Existing leaves empty.
type DeriveNamesCommand struct {
	Latin    NameTriple
	Existing DevanagariNames
}

// AdmissionService orchestrates the bilingual admission register, deriving the
// Devanagari name fields whenever the Latin name changes.
type AdmissionService interface {
	Register(ctx context.Context, cmd RegisterAdmissionCommand) (Admission, error)
	Update(ctx context.Context, cmd UpdateAdmissionCommand) (Admission, error)
	Get(ctx context.Context, admissionID string) (Admission, error)
	List(ctx context.Context, query AdmissionListQuery) ([]Admission, error)
	Discharge(ctx context.Context, cmd DischargeAdmissionCommand) (Admission, error)
	RenderForm(ctx context.Context, admissionID string) (FormDocument, error)
	Remove(ctx context.Context, admissionID string) error
}

// RegisterAdmissionCommand creates a new row in the admission register.
// Devanagari carries any name fields the operator typed by hand.
type RegisterAdmissionCommand struct {
	Latin      NameTriple
	Devanagari DevanagariNames
	Gender     string
	AgeYears   int
	Address    string
	Ward       string
	Bed        string
	Diagnosis  string
	Doctor     string
	AdmittedAt time.Time
}

// UpdateAdmissionCommand edits an existing row. Nil fields are left untouched.
type UpdateAdmissionCommand struct {
	AdmissionID string
	Latin       *NameTriple
	Devanagari  *DevanagariNames
	Gender      *string
	AgeYears    *int
	Address     *string
	Ward        *string
	Bed         *string
	Diagnosis   *string
	Doctor      *string
}

// AdmissionListQuery filters the register listing.
type AdmissionListQuery struct {
	Status AdmissionStatus
	Ward   string
	Limit  int
}

// DischargeAdmissionCommand closes an admission. A zero DischargedAt means now.
type DischargeAdmissionCommand struct {
	AdmissionID  string
	DischargedAt time.Time
}

// FormRenderer produces the printable bilingual admission form. Concrete
// renderers live outside this module; deployments wire one in at startup.
type FormRenderer interface {
	RenderAdmissionForm(ctx context.Context, admission Admission) (FormDocument, error)
}
