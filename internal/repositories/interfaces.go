package repositories

import (
	"context"

	"github.com/seva-intake/api/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// AdmissionListFilter narrows admission listings. Zero values mean "no
// constraint"; Limit <= 0 falls back to the implementation default.
type AdmissionListFilter struct {
	Status domain.AdmissionStatus
	Ward   string
	Limit  int
}

// AdmissionRepository persists admission records against the row-oriented
// register. Updates are last-write-wins on the whole record; the store
// offers no finer-grained concurrency control.
type AdmissionRepository interface {
	Insert(ctx context.Context, admission domain.Admission) error
	Update(ctx context.Context, admission domain.Admission) error
	FindByID(ctx context.Context, admissionID string) (domain.Admission, error)
	List(ctx context.Context, filter AdmissionListFilter) ([]domain.Admission, error)
	Delete(ctx context.Context, admissionID string) error
}
