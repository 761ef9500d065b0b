package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/seva-intake/api/internal/domain"
)

const defaultListLimit = 100

// InMemoryAdmissionRepository keeps admission records in process memory.
// It backs tests and local runs; deployments swap in an implementation
// bound to the external row store.
type InMemoryAdmissionRepository struct {
	mu      sync.RWMutex
	rows    map[string]domain.Admission
	nextRow int
}

// NewInMemoryAdmissionRepository constructs an empty in-memory repository.
func NewInMemoryAdmissionRepository() *InMemoryAdmissionRepository {
	return &InMemoryAdmissionRepository{
		rows:    make(map[string]domain.Admission),
		nextRow: 1,
	}
}

// Insert appends the admission as a new row. Reusing an existing ID is a conflict.
func (r *InMemoryAdmissionRepository) Insert(_ context.Context, admission domain.Admission) error {
	id := strings.TrimSpace(admission.ID)
	if id == "" {
		return admissionRepoError{message: "admission id required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[id]; exists {
		return admissionRepoError{message: fmt.Sprintf("admission %s already exists", id), conflict: true}
	}
	admission.RowIndex = r.nextRow
	r.nextRow++
	r.rows[id] = admission
	return nil
}

// Update replaces the stored record wholesale, keeping its row index.
func (r *InMemoryAdmissionRepository) Update(_ context.Context, admission domain.Admission) error {
	id := strings.TrimSpace(admission.ID)
	if id == "" {
		return admissionRepoError{message: "admission id required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[id]
	if !ok {
		return admissionRepoError{message: fmt.Sprintf("admission %s not found", id), notFound: true}
	}
	admission.RowIndex = existing.RowIndex
	r.rows[id] = admission
	return nil
}

// FindByID returns the stored record or a not-found error.
func (r *InMemoryAdmissionRepository) FindByID(_ context.Context, admissionID string) (domain.Admission, error) {
	id := strings.TrimSpace(admissionID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	admission, ok := r.rows[id]
	if !ok {
		return domain.Admission{}, admissionRepoError{message: fmt.Sprintf("admission %s not found", id), notFound: true}
	}
	return admission, nil
}

// List returns admissions in row order, applying the filter.
func (r *InMemoryAdmissionRepository) List(_ context.Context, filter AdmissionListFilter) ([]domain.Admission, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.mu.RLock()
	out := make([]domain.Admission, 0, len(r.rows))
	for _, admission := range r.rows {
		if filter.Status != "" && admission.Status != filter.Status {
			continue
		}
		if filter.Ward != "" && !strings.EqualFold(admission.Ward, filter.Ward) {
			continue
		}
		out = append(out, admission)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].RowIndex < out[j].RowIndex })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes the row entirely.
func (r *InMemoryAdmissionRepository) Delete(_ context.Context, admissionID string) error {
	id := strings.TrimSpace(admissionID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return admissionRepoError{message: fmt.Sprintf("admission %s not found", id), notFound: true}
	}
	delete(r.rows, id)
	return nil
}

type admissionRepoError struct {
	message     string
	notFound    bool
	conflict    bool
	unavailable bool
}

func (e admissionRepoError) Error() string       { return e.message }
func (e admissionRepoError) IsNotFound() bool    { return e.notFound }
func (e admissionRepoError) IsConflict() bool    { return e.conflict }
func (e admissionRepoError) IsUnavailable() bool { return e.unavailable }
