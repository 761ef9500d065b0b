package domain

import "time"

// AdmissionStatus represents the lifecycle state of a hospital admission record.
type AdmissionStatus string

const (
	// AdmissionStatusAdmitted indicates the patient is currently admitted.
	AdmissionStatusAdmitted AdmissionStatus = "admitted"
	// AdmissionStatusDischarged indicates the patient has been discharged.
	AdmissionStatusDischarged AdmissionStatus = "discharged"
)

// PatientName bundles the Latin-script name with its Devanagari companion
// fields as they appear on the bilingual admission form.
type PatientName struct {
	Latin      NameTriple
	Devanagari DevanagariNames
}

// Admission stores one admission record as kept in the row-oriented register.
type Admission struct {
	ID           string
	RowIndex     int
	Patient      PatientName
	Gender       string
	AgeYears     int
	Address      string
	Ward         string
	Bed          string
	Diagnosis    string
	Doctor       string
	AdmittedAt   time.Time
	DischargedAt *time.Time
	Status       AdmissionStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FormDocument is a rendered bilingual admission/discharge form produced by
// the external document renderer.
type FormDocument struct {
	AdmissionID string
	ContentType string
	Data        []byte
	GeneratedAt time.Time
}
